package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Anshumanformal/apirelay/internal/logger"
)

// requestIDHeader carries the correlation ID through the relay.
const requestIDHeader = "X-Request-Id"

// requestIDMiddleware assigns a request ID unless the caller sent one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Log the request
		logger.Get().Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Str("remote_addr", r.RemoteAddr).
			Str("request_id", r.Header.Get(requestIDHeader)).
			Msg("Incoming request")

		// Call the next handler
		next.ServeHTTP(w, r)

		// Log the response
		logger.Get().Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Str("request_id", r.Header.Get(requestIDHeader)).
			Dur("duration", time.Since(start)).
			Msg("Finished request")
	})
}

// recoverMiddleware converts handler panics into a 500 response
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Get().Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Msg("Recovered from handler panic")
				writeJSON(w, http.StatusInternalServerError, errorBody)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
