package config

import (
	"os"
	"strings"
)

// normalize expands paths, trims string settings, and applies environment
// fallbacks before validation.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Assist.APIKey = strings.TrimSpace(c.Assist.APIKey)
	c.Assist.BaseURL = strings.TrimSpace(c.Assist.BaseURL)
	c.Assist.Model = strings.TrimSpace(c.Assist.Model)
	c.Assist.Referer = strings.TrimSpace(c.Assist.Referer)
	c.Assist.Title = strings.TrimSpace(c.Assist.Title)
	if c.Assist.APIKey == "" {
		c.Assist.APIKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	}

	c.Transcriber.Model = strings.TrimSpace(c.Transcriber.Model)
	c.Transcriber.Language = strings.TrimSpace(c.Transcriber.Language)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
