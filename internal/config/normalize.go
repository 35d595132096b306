package config

import (
	"fmt"
	"os"
	"strings"

	"durazubs/internal/textutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeSync()
	c.normalizeStyle()
	if err := c.normalizeTranslation(); err != nil {
		return err
	}
	c.normalizeLLM()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeSync() {
	if c.Sync.ToleranceSeconds == 0 {
		c.Sync.ToleranceSeconds = defaultToleranceSeconds
	}
	c.Sync.HeaderSource = strings.ToLower(strings.TrimSpace(c.Sync.HeaderSource))
	if c.Sync.HeaderSource == "" {
		c.Sync.HeaderSource = defaultHeaderSource
	}
	c.Sync.TrailingBlocks = strings.ToLower(strings.TrimSpace(c.Sync.TrailingBlocks))
	if c.Sync.TrailingBlocks == "" {
		c.Sync.TrailingBlocks = defaultTrailingBlocks
	}
}

func (c *Config) normalizeStyle() {
	c.Style.Profile = NormalizeProfile(c.Style.Profile)
}

// NormalizeProfile maps the accepted spellings of a style profile onto
// "main", "second", or "" (styling disabled). Unknown names are returned
// lower-cased so validation can report them.
func NormalizeProfile(value string) string {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "", "none", "off":
		return ""
	case "1", "main":
		return "main"
	case "2", "second":
		return "second"
	default:
		return v
	}
}

func (c *Config) normalizeTranslation() error {
	c.Translation.Backend = strings.ToLower(strings.TrimSpace(c.Translation.Backend))
	if c.Translation.Backend == "" {
		c.Translation.Backend = defaultTranslation
	}
	if c.Translation.ChunkSize <= 0 {
		c.Translation.ChunkSize = defaultChunkSize
	}
	c.Translation.TargetLanguage = textutil.LanguageName(c.Translation.TargetLanguage)
	if c.Translation.TargetLanguage == "" {
		c.Translation.TargetLanguage = defaultTargetLanguage
	}
	var err error
	if c.Translation.RequestFile, err = expandPath(strings.TrimSpace(c.Translation.RequestFile)); err != nil {
		return fmt.Errorf("translation.request_file: %w", err)
	}
	if c.Translation.ResponseFile, err = expandPath(strings.TrimSpace(c.Translation.ResponseFile)); err != nil {
		return fmt.Errorf("translation.response_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	if c.LLM.BatchSize <= 0 {
		c.LLM.BatchSize = defaultLLMBatchSize
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("DURAZUBS_LLM_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
}
