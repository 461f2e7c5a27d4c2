package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateBRoll(); err != nil {
		return err
	}
	if err := c.validateAssist(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAlignment() error {
	a := c.Alignment
	for name, value := range map[string]float64{
		"alignment.acceptance_threshold": a.AcceptanceThreshold,
		"alignment.floor_threshold":      a.FloorThreshold,
		"alignment.tie_break_window":     a.TieBreakWindow,
		"alignment.max_window_slack":     a.MaxWindowSlack,
		"alignment.confidence_floor":     a.ConfidenceFloor,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if a.FloorThreshold > a.AcceptanceThreshold {
		return errors.New("alignment.floor_threshold must not exceed alignment.acceptance_threshold")
	}
	if a.TimestampTolerance < 0 {
		return errors.New("alignment.timestamp_tolerance must be >= 0")
	}
	return nil
}

func (c *Config) validateBRoll() error {
	if c.BRoll.MinOverlap < 0 || c.BRoll.MinOverlap > 1 {
		return errors.New("broll.min_overlap must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateAssist() error {
	if !c.Assist.Enabled {
		return nil
	}
	if c.Assist.APIKey == "" {
		return errors.New("assist.api_key must be set when assist.enabled is true (or set OPENROUTER_API_KEY)")
	}
	if c.Assist.BaseURL == "" {
		return errors.New("assist.base_url must be set when assist.enabled is true")
	}
	if c.Assist.Model == "" {
		return errors.New("assist.model must be set when assist.enabled is true")
	}
	if c.Assist.TimeoutSeconds <= 0 {
		return errors.New("assist.timeout_seconds must be positive")
	}
	return nil
}
