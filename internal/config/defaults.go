package config

const (
	defaultStagingDir      = "~/.local/share/tublisher/staging"
	defaultLogDir          = "~/.local/share/tublisher/logs"
	defaultAPIBind         = "127.0.0.1:8327"
	defaultCaptionTimeout  = 30
	defaultAudioTimeout    = 300
	defaultDeepSeekBaseURL = "https://api.deepseek.com"
	defaultDeepSeekModel   = "deepseek-chat"
	defaultDeepSeekTimeout = 120
	defaultGeminiModel     = "gemini-1.5-flash-latest"
	defaultBookAuthor      = "Tublisher"
	defaultBookLanguage    = "ko"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

func defaultCaptionLanguages() []string {
	return []string{"ko", "en"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
			APIBind:    defaultAPIBind,
		},
		Captions: Captions{
			Languages:      defaultCaptionLanguages(),
			TimeoutSeconds: defaultCaptionTimeout,
		},
		Audio: Audio{
			TimeoutSeconds: defaultAudioTimeout,
		},
		DeepSeek: DeepSeek{
			BaseURL:        defaultDeepSeekBaseURL,
			Model:          defaultDeepSeekModel,
			TimeoutSeconds: defaultDeepSeekTimeout,
		},
		Gemini: Gemini{
			Model: defaultGeminiModel,
		},
		Book: Book{
			Author:   defaultBookAuthor,
			Language: defaultBookLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
