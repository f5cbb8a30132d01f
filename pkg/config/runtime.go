package config

import "sync"

// Runtime holds the hot-reloadable subset of the configuration. Watch feeds
// it fresh values; request handlers read a consistent copy per call. Settings
// bound at boot time (connections, locale, log output) are not part of it and
// require a restart.
type Runtime struct {
	mu        sync.RWMutex
	rateLimit RateLimitConfig
}

// NewRuntime seeds the runtime view from the boot configuration.
func NewRuntime(cfg *Config) *Runtime {
	return &Runtime{rateLimit: cfg.RateLimit}
}

// Update replaces the tunable settings with those of a reloaded Config.
func (r *Runtime) Update(cfg *Config) {
	r.mu.Lock()
	r.rateLimit = cfg.RateLimit
	r.mu.Unlock()
}

// RateLimit returns the current submission rate-limit settings.
func (r *Runtime) RateLimit() RateLimitConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rateLimit
}
