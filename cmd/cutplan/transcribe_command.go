package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"cutplan/internal/services/transcriber"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var keepAudio bool

	cmd := &cobra.Command{
		Use:   "transcribe <video>",
		Short: "Extract audio from footage and produce a word-aligned transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			source := args[0]
			if outputDir == "" {
				outputDir = filepath.Dir(source)
			}

			service := transcriber.NewService(transcriber.Config{
				Model:       cfg.Transcriber.Model,
				CUDAEnabled: cfg.Transcriber.CUDAEnabled,
				Language:    cfg.Transcriber.Language,
			}, cfg.FFmpegBinary())

			baseName := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			audioPath := filepath.Join(outputDir, baseName+".wav")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Extracting audio from %s\n", source)
			if err := service.ExtractAudio(signalCtx, source, audioPath); err != nil {
				return err
			}

			fmt.Fprintf(out, "Transcribing with model %s\n", service.Model())
			result, err := service.TranscribeFile(signalCtx, audioPath, outputDir)
			if err != nil {
				return err
			}
			if !keepAudio {
				removeQuietly(audioPath)
			}

			fmt.Fprintf(out, "Transcript written to %s\n", result.JSONPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (defaults beside the video)")
	cmd.Flags().BoolVar(&keepAudio, "keep-audio", false, "Keep the extracted WAV file")
	return cmd
}
