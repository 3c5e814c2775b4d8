package middleware

import (
	"net/http"
	"time"

	"vet-clinic-analytics/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-Id"

type LoggingMiddleware struct {
	log *logrus.Logger
}

func NewLoggingMiddleware(log *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{log: log}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Handle tags every request with an id, logs the outcome and turns
// handler panics into clean 500 responses.
func (m *LoggingMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				m.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"method":     req.Method,
					"path":       req.URL.Path,
					"panic":      rec,
				}).Error("Request handler panicked")
				response.InternalServerError(recorder, "")
				return
			}

			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     recorder.status,
				"duration":   time.Since(started).String(),
			}).Info("Request handled")
		}()

		next.ServeHTTP(recorder, req)
	})
}
