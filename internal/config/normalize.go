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
	c.normalizePublishing()
	c.normalizeTikTok()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OverlayDir) == "" {
		c.Paths.OverlayDir = defaultOverlayDir
	}
	if c.Paths.OverlayDir, err = expandPath(c.Paths.OverlayDir); err != nil {
		return fmt.Errorf("paths.overlay_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePublishing() {
	c.Publishing.Platform = strings.ToLower(strings.TrimSpace(c.Publishing.Platform))
	if c.Publishing.Platform == "" {
		c.Publishing.Platform = defaultPlatform
	}
	if c.Publishing.MinHoursBetweenPosts == 0 {
		c.Publishing.MinHoursBetweenPosts = defaultMinHoursBetweenPosts
	}
	tags := make([]string, 0, len(c.Publishing.Hashtags))
	for _, tag := range c.Publishing.Hashtags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}
	c.Publishing.Hashtags = tags
}

func (c *Config) normalizeTikTok() {
	if c.TikTok.AccessToken == "" {
		if value, ok := os.LookupEnv("TIKTOK_ACCESS_TOKEN"); ok {
			c.TikTok.AccessToken = value
		}
	}
	c.TikTok.AccessToken = strings.TrimSpace(c.TikTok.AccessToken)
	c.TikTok.BaseURL = strings.TrimRight(strings.TrimSpace(c.TikTok.BaseURL), "/")
	if c.TikTok.BaseURL == "" {
		c.TikTok.BaseURL = defaultTikTokBaseURL
	}
	c.TikTok.PrivacyLevel = strings.TrimSpace(c.TikTok.PrivacyLevel)
	if c.TikTok.PrivacyLevel == "" {
		c.TikTok.PrivacyLevel = defaultPrivacyLevel
	}
	if c.TikTok.InitTimeoutSeconds <= 0 {
		c.TikTok.InitTimeoutSeconds = defaultInitTimeoutSeconds
	}
	if c.TikTok.UploadTimeoutSeconds <= 0 {
		c.TikTok.UploadTimeoutSeconds = defaultUploadTimeoutSeconds
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
