package middleware

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// Editor writes are limited per user rather than per IP.
const (
	editorWriteRPS   = 10
	editorWriteBurst = 40
)

var editorLimiters = newLimiterSet(rate.Limit(editorWriteRPS), editorWriteBurst)

// EditorWriteRateLimit limits mutating editor requests. Reads pass through.
// Must run after RequireAuth.
func EditorWriteRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		userID := UserID(r.Context())
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(editorWriteBurst))
		if !editorLimiters.allow(userID) {
			w.Header().Set("X-RateLimit-Remaining", "0")
			tooManyRequests(w, "Too many edits. Please slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
