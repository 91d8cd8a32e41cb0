package http

import (
	"net"
	"net/http"
	"strings"
)

// ownerKey derives the cart key from the caller's network address: the
// first comma-separated value of X-Forwarded-For when a proxy set it,
// otherwise the direct connection address with its port stripped.
func ownerKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if addr := strings.TrimSpace(first); addr != "" {
			return addr
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
