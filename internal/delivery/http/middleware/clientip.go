package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const clientIDKey contextKey = "clientID"

// UnknownClientID is the shared identifier for requests carrying neither a
// forwarded-for nor a real-IP header. All such clients land in one
// rate-limit bucket; failing shared beats failing open per client.
const UnknownClientID = "unknown"

// SetClientID returns a context with the client identifier set.
func SetClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// ClientIDFromContext returns the client identifier from the context, if present.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey).(string)
	return id, ok
}

// ClientID derives a rate-limit identifier for every request and stores it
// in the request context. Precedence: first entry of X-Forwarded-For, then
// X-Real-IP, then UnknownClientID.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(SetClientID(r.Context(), DeriveClientID(r)))
		next.ServeHTTP(w, r)
	})
}

// DeriveClientID extracts the client identifier from the request headers.
func DeriveClientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return UnknownClientID
}
