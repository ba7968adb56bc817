package middleware

import (
	"context"
	"net/http"

	"github.com/rs/xid"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestID assigns each request a unique id and echoes it back in the
// X-Request-ID response header, so a client error report can be matched to
// the exact server log lines.
//
// WHY xid AND NOT A COUNTER?
// A per-process counter restarts at 1 on every deploy, so "request 42"
// stops being unique the moment the server restarts. xid ids embed a
// timestamp plus machine/process entropy — unique across restarts and
// across replicas, and still sortable by time.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Honour an id set by an upstream proxy — but the header arrives
		// from ANY client, so it is validated first. An unchecked value
		// would let a caller inject arbitrary bytes into every log line
		// and into the echoed response header.
		id := r.Header.Get("X-Request-ID")
		if !validRequestID(id) {
			id = xid.New().String()
		}

		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// maxRequestIDLen caps an inbound id. xid ids are 20 chars; 64 leaves room
// for uuid-style ids from upstream proxies without letting a client stuff
// kilobytes into every log line.
const maxRequestIDLen = 64

// validRequestID accepts ids made of the characters real tracing systems
// emit: letters, digits, '-', '_' and '.'. Anything else — control bytes,
// newlines, spaces — gets a freshly minted id instead.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}

// RequestIDFromContext returns the request id, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
