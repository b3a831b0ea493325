package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/hedgie/internal/logging"
)

// requestLogger stores a request-scoped logger in the context and logs
// each completed request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(logging.NewContext(r.Context(), entry)))

		entry.WithFields(logrus.Fields{
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"bytes":       ww.BytesWritten(),
			"remote_addr": r.RemoteAddr,
		}).Debug("request completed")
	})
}
