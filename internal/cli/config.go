package cli

import (
	"os"
	"time"

	"github.com/mcoot/clubroster/internal/client"
	"github.com/mcoot/clubroster/internal/session"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Timeout   time.Duration
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("CLUBROSTER_API_URL", "http://localhost:5000"),
		Token:     os.Getenv("CLUBROSTER_TOKEN"),
		TokenFile: getEnvOrDefault("CLUBROSTER_TOKEN_FILE", session.DefaultTokenFile()),
		Output:    "text",
		Timeout:   getDurationOrDefault("CLUBROSTER_TIMEOUT", client.DefaultTimeout),
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultVal
}
