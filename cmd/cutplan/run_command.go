package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"cutplan/internal/cutlist"
	"cutplan/internal/pipeline"
	"cutplan/internal/runs"
	"cutplan/internal/services/assist"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var scriptPath string
	var transcriptPath string
	var registryPath string
	var outputPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Align a script against a transcript and export the timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			store, err := runs.Open(cfg.Paths.DataDir)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			options := []pipeline.Option{pipeline.WithLogger(logger)}
			if cfg.Assist.Enabled {
				client := assist.NewClient(assist.Config{
					APIKey:         cfg.Assist.APIKey,
					BaseURL:        cfg.Assist.BaseURL,
					Model:          cfg.Assist.Model,
					Referer:        cfg.Assist.Referer,
					Title:          cfg.Assist.Title,
					TimeoutSeconds: cfg.Assist.TimeoutSeconds,
				})
				options = append(options, pipeline.WithAssister(client))
			}

			outcome, runErr := pipeline.New(cfg, store, options...).Run(signalCtx, pipeline.Request{
				ScriptPath:     scriptPath,
				TranscriptPath: transcriptPath,
				RegistryPath:   registryPath,
				OutputPath:     outputPath,
			})
			if runErr != nil && !errors.Is(runErr, cutlist.ErrEmptyCutList) {
				return runErr
			}

			if jsonOutput {
				if err := writeJSON(cmd, outcome); err != nil {
					return err
				}
				return runErr
			}

			out := cmd.OutOrStdout()
			summary := outcome.Summary
			fmt.Fprintln(out, renderTable(
				[]string{"Matched", "Partial", "Unmatched"},
				[][]string{{
					strconv.Itoa(summary.Matched),
					strconv.Itoa(summary.Partial),
					strconv.Itoa(summary.Unmatched),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Run %s %s\n", outcome.RunID, renderStatus(outcome.Status, isTerminal(out)))
			fmt.Fprintf(out, "Timeline written to %s\n", outcome.TimelinePath)
			if runErr != nil {
				fmt.Fprintln(out, "No dialogue cue matched; the timeline holds placeholders only.")
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Authored script file")
	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Word-aligned transcript JSON")
	cmd.Flags().StringVarP(&registryPath, "broll", "b", "", "B-roll asset registry JSON")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "timeline.json", "Timeline output path")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run outcome as JSON")
	_ = cmd.MarkFlagRequired("script")
	_ = cmd.MarkFlagRequired("transcript")
	return cmd
}
