package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SessionTTL bounds how long a session key lives in Redis.
	// Expiry is still checked by the auth service; the TTL only reclaims keys.
	SessionTTL time.Duration

	// ScanBatch is how many player IDs are fetched per round trip while searching
	ScanBatch int64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		SessionTTL:   24 * time.Hour,
		ScanBatch:    100,
	}
}
