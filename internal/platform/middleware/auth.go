package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

const apiKeyHeader = "X-API-Key"

// RequireAPIKey guards routes with a static API key check against the
// configured key set. Missing keys yield 401, unknown keys 403.
func RequireAPIKey(keys []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			presented := r.Header.Get(apiKeyHeader)
			if presented == "" {
				logger.WarnContext(ctx, "unauthorized access - missing api key",
					"request_id", GetRequestID(ctx),
					"path", r.URL.Path,
				)
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "API key required")
				return
			}

			for _, key := range keys {
				if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.WarnContext(ctx, "forbidden access - invalid api key",
				"request_id", GetRequestID(ctx),
				"path", r.URL.Path,
			)
			writeAuthError(w, http.StatusForbidden, "forbidden", "Invalid API key")
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, code, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + code + `","error_description":"` + description + `"}`))
}
