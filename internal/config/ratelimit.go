package config

import (
    "strconv"
    "time"
)

// RateLimitConfig controls the Redis token-bucket limiter applied to the
// vitals routes. Capacity is the burst size; RefillTokens are added every
// RefillInterval. TTL bounds how long idle buckets survive in Redis.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    Prefix         string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults allow a burst of 60 requests refilled at one
// per second, which is generous for a single health-tracker client.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       atoiDefault(getenv("RATE_LIMIT_CAPACITY", ""), 60),
        RefillTokens:   atoiDefault(getenv("RATE_LIMIT_REFILL_TOKENS", ""), 1),
        RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s")),
        TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillTokens < 1 {
        cfg.RefillTokens = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    // Keep idle buckets around long enough to refill fully.
    if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
        cfg.TTL = minTTL
    }
    return cfg
}

// atoiDefault falls back to def only when the variable is unset or
// unparsable; an explicit "0" is a real value (the clamps above decide
// what to do with it).
func atoiDefault(s string, def int) int {
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        return def
    }
    return n
}
