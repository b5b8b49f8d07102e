package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr string

	// APIKeys are the accepted X-API-Key values for the v1 routes.
	APIKeys []string

	// ModelPath is where the trained classifier artifact is persisted.
	ModelPath string

	// VerificationTimeout bounds each simulated external verification call;
	// on expiry the pipeline falls back to self-reported data.
	VerificationTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("UNDERWRITER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	keys := os.Getenv("API_KEYS")
	if keys == "" {
		// Development defaults - must be overridden in production.
		keys = "test-key-12345,demo-key-67890"
	}

	modelPath := os.Getenv("UNDERWRITER_MODEL_PATH")
	if modelPath == "" {
		modelPath = "underwriting_model.json"
	}

	timeout := 2 * time.Second
	if raw := os.Getenv("VERIFICATION_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	return Server{
		Addr:                addr,
		APIKeys:             splitKeys(keys),
		ModelPath:           modelPath,
		VerificationTimeout: timeout,
	}
}

func splitKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
