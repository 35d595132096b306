package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateStyle(); err != nil {
		return err
	}
	if err := c.validateTranslation(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func (c *Config) validateSync() error {
	if c.Sync.ToleranceSeconds < 0 {
		return errors.New("sync.tolerance_seconds must be positive")
	}
	switch c.Sync.HeaderSource {
	case HeaderFromTiming, HeaderFromText:
	default:
		return fmt.Errorf("sync.header_source: unsupported value %q (want %q or %q)", c.Sync.HeaderSource, HeaderFromTiming, HeaderFromText)
	}
	switch c.Sync.TrailingBlocks {
	case TrailingAppend, TrailingDrop:
	default:
		return fmt.Errorf("sync.trailing_blocks: unsupported value %q (want %q or %q)", c.Sync.TrailingBlocks, TrailingAppend, TrailingDrop)
	}
	return nil
}

func (c *Config) validateStyle() error {
	switch c.Style.Profile {
	case "", "main", "second":
		return nil
	default:
		return fmt.Errorf("style.profile: unsupported value %q (want main or second)", c.Style.Profile)
	}
}

func (c *Config) validateTranslation() error {
	switch c.Translation.Backend {
	case BackendNone:
		return nil
	case BackendFile:
		if c.Translation.ResponseFile == "" {
			return errors.New("translation.response_file must be set when translation.backend is \"file\"")
		}
		return nil
	case BackendLLM:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = defaultConfigPath
			}
			return fmt.Errorf("llm.api_key is required when translation.backend is \"llm\". Set DURAZUBS_LLM_API_KEY or edit %s (create with 'durazubs config init')", defaultPath)
		}
		return nil
	default:
		return fmt.Errorf("translation.backend: unsupported value %q (want none, file, or llm)", c.Translation.Backend)
	}
}
