package leadgen

import (
	"strings"

	"github.com/propnest/PropNest/internal/pkg/env"
)

const (
	defaultGraphBaseURL = "https://graph.facebook.com/v23.0"

	defaultWorkers   = 4
	defaultQueueSize = 64
)

// Config holds the pipeline secrets and tuning knobs. It is built once at
// startup and handed to the components that need it; nothing in the pipeline
// reads ambient configuration after that.
type Config struct {
	// AppSecret signs webhook deliveries (HMAC-SHA256).
	AppSecret string
	// VerifyToken answers the one-time subscription handshake.
	VerifyToken string
	// AccessToken authenticates outbound Graph API reads.
	AccessToken string

	GraphBaseURL string
	Workers      int
	QueueSize    int
}

// ConfigFromEnv reads the pipeline configuration from the process
// environment.
func ConfigFromEnv() Config {
	return Config{
		AppSecret:    strings.TrimSpace(env.GetEnv("META_APP_SECRET", "")),
		VerifyToken:  strings.TrimSpace(env.GetEnv("META_VERIFY_TOKEN", "")),
		AccessToken:  strings.TrimSpace(env.GetEnv("META_ACCESS_TOKEN", "")),
		GraphBaseURL: strings.TrimSpace(env.GetEnv("META_GRAPH_BASE_URL", defaultGraphBaseURL)),
		Workers:      positiveEnvInt("LEADGEN_WORKERS", defaultWorkers),
		QueueSize:    positiveEnvInt("LEADGEN_QUEUE_SIZE", defaultQueueSize),
	}
}

// Complete reports whether all three provider secrets are set. The pipeline
// fails closed without them, so false means every delivery will be rejected.
func (c Config) Complete() bool {
	return c.AppSecret != "" && c.VerifyToken != "" && c.AccessToken != ""
}

// positiveEnvInt guards the tuning knobs; zero or negative values would stall
// the dispatcher.
func positiveEnvInt(key string, def int) int {
	n := env.GetEnvInt(key, def)
	if n <= 0 {
		return def
	}
	return n
}
