package config

const (
	defaultInboxDir             = "~/.local/share/subweave/inbox"
	defaultWorkDir              = "~/.local/share/subweave/work"
	defaultDeliverDir           = "~/deliver"
	defaultLogDir               = "~/.local/share/subweave/logs"
	defaultTranscriberCacheDir  = "~/.local/share/subweave/cache/whisperx"
	defaultSourceLanguage       = "en"
	defaultTargetLanguage       = "is"
	defaultTimingMode           = "balanced"
	defaultMaxExtensionSeconds  = 0.30
	defaultFragmentShiftSeconds = 0.35
	defaultStandardsProfile     = "broadcast"
	defaultTranscriberModel     = "large-v3-turbo"
	defaultTranscriberVADMethod = "silero"
	defaultTranscriberTimeout   = 3600
	defaultTranslatorBaseURL    = "https://openrouter.ai/api/v1/chat/completions"
	defaultTranslatorModel      = "google/gemini-3-flash-preview"
	defaultTranslatorReferer    = "https://github.com/subweave/subweave"
	defaultTranslatorTitle      = "Subweave Translator"
	defaultTranslatorTimeout    = 120
	defaultTranslatorBatchSize  = 40
	defaultRenderWidth          = 1920
	defaultRenderHeight         = 1080
	defaultRenderFramerate      = 25.0
	defaultRenderFontName       = "Helvetica"
	defaultRenderFontSize       = 44
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogRetentionDays     = 60
	defaultQueuePollInterval    = 5
	defaultErrorRetryInterval   = 10
	defaultHeartbeatInterval    = 15
	defaultHeartbeatTimeout     = 120
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InboxDir:   defaultInboxDir,
			WorkDir:    defaultWorkDir,
			DeliverDir: defaultDeliverDir,
			LogDir:     defaultLogDir,
		},
		Languages: Languages{
			Source:  defaultSourceLanguage,
			Targets: []string{defaultTargetLanguage},
		},
		Timing: Timing{
			Mode:                 defaultTimingMode,
			MaxExtensionSeconds:  defaultMaxExtensionSeconds,
			FragmentShiftSeconds: defaultFragmentShiftSeconds,
		},
		Standards: Standards{
			Profile: defaultStandardsProfile,
		},
		Transcriber: Transcriber{
			Model:          defaultTranscriberModel,
			VADMethod:      defaultTranscriberVADMethod,
			CacheDir:       defaultTranscriberCacheDir,
			TimeoutSeconds: defaultTranscriberTimeout,
		},
		Translator: Translator{
			Enabled:        true,
			BaseURL:        defaultTranslatorBaseURL,
			Model:          defaultTranslatorModel,
			Referer:        defaultTranslatorReferer,
			Title:          defaultTranslatorTitle,
			TimeoutSeconds: defaultTranslatorTimeout,
			BatchSize:      defaultTranslatorBatchSize,
			ChiefEditor:    true,
		},
		Render: Render{
			VideoWidth:  defaultRenderWidth,
			VideoHeight: defaultRenderHeight,
			Framerate:   defaultRenderFramerate,
			FontName:    defaultRenderFontName,
			FontSize:    defaultRenderFontSize,
		},
		Formats: Formats{
			SRT:     true,
			VTT:     true,
			TTML:    false,
			CueList: true,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			HeartbeatInterval:  defaultHeartbeatInterval,
			HeartbeatTimeout:   defaultHeartbeatTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
