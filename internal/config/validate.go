package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePublishing(); err != nil {
		return err
	}
	if err := c.validateOverlay(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePublishing() error {
	if c.Publishing.MinHoursBetweenPosts < 0 {
		return errors.New("publishing.min_hours_between_posts must not be negative")
	}
	if c.Publishing.MaxHashtags < 0 {
		return errors.New("publishing.max_hashtags must not be negative")
	}
	return nil
}

func (c *Config) validateOverlay() error {
	if c.Overlay.Width <= 0 {
		return errors.New("overlay.width must be positive")
	}
	if c.Overlay.Height <= 0 {
		return errors.New("overlay.height must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
