package config

const (
	defaultDataDir              = "~/.local/share/vesper"
	defaultOverlayDir           = "~/.local/share/vesper/overlays"
	defaultLogDir               = "~/.local/share/vesper/logs"
	defaultPlatform             = "tiktok"
	defaultMinHoursBetweenPosts = 4
	defaultMaxHashtags          = 5
	defaultTikTokBaseURL        = "https://open.tiktokapis.com/v2"
	defaultPrivacyLevel         = "SELF_ONLY"
	defaultInitTimeoutSeconds   = 30
	defaultUploadTimeoutSeconds = 300
	defaultOverlayWidth         = 1080
	defaultOverlayHeight        = 1920
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			OverlayDir: defaultOverlayDir,
			LogDir:     defaultLogDir,
		},
		Publishing: Publishing{
			Platform:             defaultPlatform,
			MinHoursBetweenPosts: defaultMinHoursBetweenPosts,
			Hashtags:             []string{"#faith", "#prayer", "#ChristianTikTok"},
			MaxHashtags:          defaultMaxHashtags,
		},
		TikTok: TikTok{
			BaseURL:              defaultTikTokBaseURL,
			PrivacyLevel:         defaultPrivacyLevel,
			InitTimeoutSeconds:   defaultInitTimeoutSeconds,
			UploadTimeoutSeconds: defaultUploadTimeoutSeconds,
		},
		Overlay: Overlay{
			Width:  defaultOverlayWidth,
			Height: defaultOverlayHeight,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
