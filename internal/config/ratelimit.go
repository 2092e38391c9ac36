package config

import "time"

// RateLimitConfig controls the fixed-window request limiter applied to the
// auth and booking endpoints. Limit requests are counted per client key
// within each Window; a full window answers 429 until it rolls over.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads limiter settings from the environment with
// defaults tuned for interactive use (30 requests per 10 seconds).
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   envInt("RATE_LIMIT_MAX", 30),
		Window:  envDur("RATE_LIMIT_WINDOW", 10*time.Second),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	return cfg
}
