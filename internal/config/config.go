package config

import (
	"fmt"
	"strings"
	"time"
)

// Settings holds how a run is executed. What to look for lives in Preferences.
type Settings struct {
	PreferencesPath string              `yaml:"preferences_path"`
	SelectorsFile   string              `yaml:"selectors_file"`
	Site            SiteConfig          `yaml:"site"`
	HTTP            HttpConfig          `yaml:"http"`
	Backoff         BackoffConfig       `yaml:"backoff"`
	Rod             RodConfig           `yaml:"rod"`
	Robots          RobotsConfig        `yaml:"robots"`
	Pacing          PacingConfig        `yaml:"pacing"`
	Storage         StorageConfig       `yaml:"storage"`
	Mail            MailConfig          `yaml:"mail"`
	Scheduler       SchedulerConfig     `yaml:"scheduler"`
	Observability   ObservabilityConfig `yaml:"observability"`
}

type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
}

type HttpConfig struct {
	UserAgent      string `yaml:"user_agent"`
	Accept         string `yaml:"accept"`
	AcceptLanguage string `yaml:"accept_language"`
	TimeoutS       int    `yaml:"timeout_s"`
	MaxRetries     int    `yaml:"max_retries"`
}

type BackoffConfig struct {
	MinMS     int `yaml:"min_ms"`
	MaxMS     int `yaml:"max_ms"`
	JitterPct int `yaml:"jitter_pct"`
}

type RodConfig struct {
	Enabled          bool   `yaml:"enabled"`
	ChromePath       string `yaml:"chrome_path"`
	PageTimeoutS     int    `yaml:"page_timeout_s"`
	WaitLoadTimeoutS int    `yaml:"wait_load_timeout_s"`
}

type RobotsConfig struct {
	Respect       bool `yaml:"respect"`
	CacheTTLHours int  `yaml:"cache_ttl_hours"`
}

type PacingConfig struct {
	CategoryDelayMS int `yaml:"category_delay_ms"`
}

type StorageConfig struct {
	DataDir    string `yaml:"data_dir"`
	SeenFile   string `yaml:"seen_file"`
	MaxEntries int    `yaml:"max_entries"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TimeoutS int    `yaml:"timeout_s"`
}

type SchedulerConfig struct {
	Mode     string `yaml:"mode"`
	CronExpr string `yaml:"cron_expr"`
}

type ObservabilityConfig struct {
	LogPath      string `yaml:"log_path"`
	LogLevel     string `yaml:"log_level"`
	LogMaxSizeMB int    `yaml:"log_max_size_mb"`
	LogMaxFiles  int    `yaml:"log_max_files"`
}

// DefaultSettings mirrors the behaviour of the monitor when no settings file exists.
func DefaultSettings() *Settings {
	return &Settings{
		PreferencesPath: "config.json",
		Site: SiteConfig{
			BaseURL: "https://internshala.com",
		},
		HTTP: HttpConfig{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			AcceptLanguage: "en-US,en;q=0.5",
			TimeoutS:       30,
			MaxRetries:     0,
		},
		Backoff: BackoffConfig{
			MinMS:     500,
			MaxMS:     4000,
			JitterPct: 20,
		},
		Rod: RodConfig{
			PageTimeoutS:     60,
			WaitLoadTimeoutS: 30,
		},
		Robots: RobotsConfig{
			CacheTTLHours: 12,
		},
		Pacing: PacingConfig{
			CategoryDelayMS: 2000,
		},
		Storage: StorageConfig{
			DataDir:  "data",
			SeenFile: "seen_internships.json",
		},
		Mail: MailConfig{
			Host:     "smtp.gmail.com",
			Port:     465,
			TimeoutS: 30,
		},
		Scheduler: SchedulerConfig{
			Mode: "oneshot",
		},
		Observability: ObservabilityConfig{
			LogLevel:     "info",
			LogMaxSizeMB: 10,
			LogMaxFiles:  3,
		},
	}
}

// Validation
func (c *Settings) Validate() error {
	if c.PreferencesPath == "" {
		return fmt.Errorf("preferences_path is required")
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.TimeoutS <= 0 {
		return fmt.Errorf("http.timeout_s must be > 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0")
	}
	if c.HTTP.MaxRetries > 0 {
		if c.Backoff.MinMS <= 0 {
			return fmt.Errorf("backoff.min_ms must be > 0")
		}
		if c.Backoff.MinMS > c.Backoff.MaxMS {
			return fmt.Errorf("backoff.min_ms must be <= backoff.max_ms")
		}
		if c.Backoff.JitterPct < 0 || c.Backoff.JitterPct > 100 {
			return fmt.Errorf("backoff.jitter_pct must be between 0 and 100")
		}
	}
	if c.Rod.Enabled {
		if c.Rod.PageTimeoutS <= 0 {
			return fmt.Errorf("rod.page_timeout_s must be > 0")
		}
		if c.Rod.WaitLoadTimeoutS <= 0 {
			return fmt.Errorf("rod.wait_load_timeout_s must be > 0")
		}
	}
	if c.Robots.Respect && c.Robots.CacheTTLHours <= 0 {
		return fmt.Errorf("robots.cache_ttl_hours must be > 0")
	}
	if c.Pacing.CategoryDelayMS < 0 {
		return fmt.Errorf("pacing.category_delay_ms must be >= 0")
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required")
	}
	if c.Storage.SeenFile == "" {
		return fmt.Errorf("storage.seen_file is required")
	}
	if c.Storage.MaxEntries < 0 {
		return fmt.Errorf("storage.max_entries must be >= 0")
	}
	if c.Mail.Host == "" {
		return fmt.Errorf("mail.host is required")
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail.port must be between 1 and 65535")
	}
	if c.Mail.TimeoutS <= 0 {
		return fmt.Errorf("mail.timeout_s must be > 0")
	}
	if c.Scheduler.Mode != "oneshot" && c.Scheduler.Mode != "cron" {
		return fmt.Errorf("scheduler.mode must be 'oneshot' or 'cron'")
	}
	if c.Scheduler.Mode == "cron" && c.Scheduler.CronExpr == "" {
		return fmt.Errorf("scheduler.cron_expr must be set when mode is 'cron'")
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("observability.log_level must be one of debug, info, warn, error")
	}
	return nil
}

// Getters
func (c *Settings) GetHTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutS) * time.Second
}

func (c *Settings) GetBackoffMin() time.Duration {
	return time.Duration(c.Backoff.MinMS) * time.Millisecond
}

func (c *Settings) GetBackoffMax() time.Duration {
	return time.Duration(c.Backoff.MaxMS) * time.Millisecond
}

func (c *Settings) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}

func (c *Settings) GetRodWaitLoadTimeout() time.Duration {
	return time.Duration(c.Rod.WaitLoadTimeoutS) * time.Second
}

func (c *Settings) GetRobotsCacheTTL() time.Duration {
	return time.Duration(c.Robots.CacheTTLHours) * time.Hour
}

func (c *Settings) GetCategoryDelay() time.Duration {
	return time.Duration(c.Pacing.CategoryDelayMS) * time.Millisecond
}

func (c *Settings) GetMailTimeout() time.Duration {
	return time.Duration(c.Mail.TimeoutS) * time.Second
}

// CategoryURL builds the listing page address for a search category.
func (c *Settings) CategoryURL(category string) string {
	return fmt.Sprintf("%s/internships/%s-internship/", strings.TrimRight(c.Site.BaseURL, "/"), category)
}
