package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/lawoh/bixi-stats/utils/logger"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Get().Error().
					Interface("panic", err).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": "Internal server error", "code": 500}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
