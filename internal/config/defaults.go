package config

const (
	defaultDataDir              = "~/.local/share/cutplan"
	defaultLogDir               = "~/.local/share/cutplan/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultAcceptanceThreshold  = 0.75
	defaultFloorThreshold       = 0.40
	defaultTieBreakWindow       = 0.05
	defaultMaxWindowSlack       = 0.50
	defaultConfidenceFloor      = 0.20
	defaultTimestampTolerance   = 0.25
	defaultBRollMinOverlap      = 0.10
	defaultAssistBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultAssistModel          = "openai/gpt-oss-20b:free"
	defaultAssistTitle          = "Cutplan Alignment Assist"
	defaultAssistTimeoutSeconds = 30
	defaultTranscriberModel     = "small"
	defaultTranscriberLanguage  = "en"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Alignment: Alignment{
			AcceptanceThreshold: defaultAcceptanceThreshold,
			FloorThreshold:      defaultFloorThreshold,
			TieBreakWindow:      defaultTieBreakWindow,
			MaxWindowSlack:      defaultMaxWindowSlack,
			ConfidenceFloor:     defaultConfidenceFloor,
			TimestampTolerance:  defaultTimestampTolerance,
			PreferLaterTake:     true,
		},
		BRoll: BRoll{
			MinOverlap: defaultBRollMinOverlap,
		},
		Assist: Assist{
			BaseURL:        defaultAssistBaseURL,
			Model:          defaultAssistModel,
			Title:          defaultAssistTitle,
			TimeoutSeconds: defaultAssistTimeoutSeconds,
		},
		Transcriber: Transcriber{
			Model:    defaultTranscriberModel,
			Language: defaultTranscriberLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
