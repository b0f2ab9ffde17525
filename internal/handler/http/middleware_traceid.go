package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader carries the request trace ID in both directions. Data
// loggers in the field set it on their own requests so a failed login can be
// matched against the device's local log; browser clients leave it empty and
// get a generated one back.
const traceIDHeader = "X-Trace-ID"

// withTraceID stamps every request with a trace ID and binds a child logger
// carrying it to the request context, so each log line downstream (auth
// failures included) can be tied back to one request. The ID is echoed in
// the response for the caller to quote when reporting a problem.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// A caller-supplied ID is trusted as-is; devices reuse theirs
		// across retries so retried registrations group together.
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
