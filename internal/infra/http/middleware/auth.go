package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminAuth gates back-office routes behind the shared admin secret,
// passed in the X-Admin-Secret header.
func AdminAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || !secureEquals(r.Header.Get("X-Admin-Secret"), secret) {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CronAuth gates the scheduled drip trigger behind a bearer token.
func CronAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if secret == "" || !secureEquals(token, secret) {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func secureEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized"}`))
}
