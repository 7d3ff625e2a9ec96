package api

import (
	"net/http"
	"time"

	"fjacquet/misi/internal/logging"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one entry per request through logger.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []logging.Field{
				{Key: logging.FieldMethod, Value: r.Method},
				{Key: logging.FieldRoute, Value: r.URL.Path},
				{Key: logging.FieldStatus, Value: status},
				{Key: logging.FieldDuration, Value: time.Since(start).String()},
				{Key: logging.FieldRequestID, Value: middleware.GetReqID(r.Context())},
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("HTTP request failed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("HTTP request rejected", fields...)
			default:
				logger.Info("HTTP request", fields...)
			}
		})
	}
}
