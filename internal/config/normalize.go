package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCaptions()
	c.normalizeAudio()
	c.normalizeDeepSeek()
	c.normalizeGemini()
	c.normalizeBook()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeCaptions() {
	languages := make([]string, 0, len(c.Captions.Languages))
	for _, lang := range c.Captions.Languages {
		lang = strings.TrimSpace(lang)
		if lang != "" {
			languages = append(languages, lang)
		}
	}
	if len(languages) == 0 {
		languages = defaultCaptionLanguages()
	}
	c.Captions.Languages = languages
	if c.Captions.TimeoutSeconds <= 0 {
		c.Captions.TimeoutSeconds = defaultCaptionTimeout
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.FFmpegLocation = strings.TrimSpace(c.Audio.FFmpegLocation)
	if value, ok := os.LookupEnv("TUBLISHER_FFMPEG_LOCATION"); ok {
		if value = strings.TrimSpace(value); value != "" {
			c.Audio.FFmpegLocation = value
		}
	}
	if c.Audio.TimeoutSeconds <= 0 {
		c.Audio.TimeoutSeconds = defaultAudioTimeout
	}
}

func (c *Config) normalizeDeepSeek() {
	c.DeepSeek.APIKey = strings.TrimSpace(c.DeepSeek.APIKey)
	if c.DeepSeek.APIKey == "" {
		if value, ok := os.LookupEnv("DEEPSEEK_API_KEY"); ok {
			c.DeepSeek.APIKey = strings.TrimSpace(value)
		}
	}
	c.DeepSeek.BaseURL = strings.TrimSpace(c.DeepSeek.BaseURL)
	if c.DeepSeek.BaseURL == "" {
		c.DeepSeek.BaseURL = defaultDeepSeekBaseURL
	}
	c.DeepSeek.Model = strings.TrimSpace(c.DeepSeek.Model)
	if c.DeepSeek.Model == "" {
		c.DeepSeek.Model = defaultDeepSeekModel
	}
	if c.DeepSeek.TimeoutSeconds <= 0 {
		c.DeepSeek.TimeoutSeconds = defaultDeepSeekTimeout
	}
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		}
	}
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}
}

func (c *Config) normalizeBook() {
	c.Book.Author = strings.TrimSpace(c.Book.Author)
	if c.Book.Author == "" {
		c.Book.Author = defaultBookAuthor
	}
	c.Book.Language = strings.TrimSpace(c.Book.Language)
	if c.Book.Language == "" {
		c.Book.Language = defaultBookLanguage
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
