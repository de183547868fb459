// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

// APIKeyHeader is the primary header carrying the shared secret.
const APIKeyHeader = "X-Api-Key"

// RequireAPIKey rejects requests that do not present secret in the
// x-api-key header or as an Authorization bearer token. An empty secret is
// a server misconfiguration and yields 500, not 401.
func RequireAPIKey(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				slog.Error("blog api key not configured", "method", r.Method, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			if !validKey(presentedKey(r), secret) {
				slog.Warn("unauthorized api request",
					"method", r.Method,
					"path", r.URL.Path,
					"remote", remoteHost(r),
				)
				writeError(w, http.StatusUnauthorized, "Unauthorized. Valid API key required.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// presentedKey returns the x-api-key header, falling back to a bearer token.
func presentedKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > len("Bearer ") && strings.EqualFold(auth[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	return ""
}

func validKey(got, want string) bool {
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
