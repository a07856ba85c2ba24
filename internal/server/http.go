package server

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/amityadav/searchclone/internal/config"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

// CreateCORSHandler wraps handler with the CORS policy from configuration.
// Without configured origins all origins are allowed.
func CreateCORSHandler(handler http.Handler, cfg config.Config) http.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(handler)
}

// CreateRequestLogHandler tags every request with an ID and logs it
func CreateRequestLogHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		log.Printf("[HTTP] %s %s %s (request_id=%s)", r.RemoteAddr, r.Method, r.URL.Path, requestID)
		handler.ServeHTTP(w, r)
	})
}

// CreateRecoveryHandler wraps handler with panic recovery
func CreateRecoveryHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[PANIC RECOVERED] %v\n%s", err, debug.Stack())
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		handler.ServeHTTP(w, r)
	})
}
