package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Logging пишет строку access-лога на каждый запрос
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			requestID, _ := GetRequestID(r.Context())
			elapsed := time.Since(start).Milliseconds()

			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s -> %d (%dms) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s -> %d (%dms) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			default:
				logger.Info("%s %s -> %d (%dms) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			}
		})
	}
}
