package clientip

import (
	"net"
	"net/http"
	"strings"
	"sync/atomic"
)

var trustProxy atomic.Bool

// TrustProxyHeaders makes RealClientIP honor X-Forwarded-For and X-Real-IP.
// Enable only behind a proxy that overwrites those headers.
func TrustProxyHeaders(on bool) {
	trustProxy.Store(on)
}

// RealClientIP returns the client IP from the request. By default only
// r.RemoteAddr is used; forwarded headers are ignored unless trusted.
func RealClientIP(r *http.Request) string {
	if trustProxy.Load() {
		if ip := forwarded(r); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}

// forwarded returns the left-most valid address of X-Forwarded-For, then
// X-Real-IP.
func forwarded(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	return ""
}
