package middleware

import (
	"net/http"
	"time"

	"motofibra/catalog/internal/common"
	reqctx "motofibra/catalog/internal/context"
	"motofibra/catalog/internal/logging"
)

type respLogger struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (l *respLogger) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *respLogger) Write(b []byte) (int, error) {
	n, err := l.ResponseWriter.Write(b)
	l.bytes += n
	return n, err
}

// Logging writes one structured line per completed request. It expects
// RequestIDMiddleware to run first.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lw := &respLogger{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(lw, r)

		log := logging.WithRequest(reqctx.GetRequestID(r.Context()), r.Method, routePatternOf(r))
		fields := []interface{}{
			"status_code", lw.status,
			"bytes", lw.bytes,
			"response_time", common.GetResponseTime(start),
			"remote_ip", clientIP(r),
		}
		switch {
		case lw.status >= http.StatusInternalServerError:
			log.Errorw("HTTP request completed", fields...)
		case lw.status >= http.StatusBadRequest:
			log.Warnw("HTTP request completed", fields...)
		default:
			log.Infow("HTTP request completed", fields...)
		}
	})
}
