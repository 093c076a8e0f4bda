package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Auth rejects requests lacking the configured bearer token. With an empty
// token every request passes; who may command whom is not this layer's job.
type Auth struct {
	Token string
}

func (a *Auth) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(a.Token)) != 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
