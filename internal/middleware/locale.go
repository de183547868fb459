// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"path"
	"strings"
)

// LocaleConfig controls the locale redirect.
type LocaleConfig struct {
	Locales []string // recognized locale segments, e.g. "en", "ru"
	Default string   // used when the cookie is absent or unrecognized
	Cookie  string   // name of the preferred-locale cookie
}

// localeExcludedPrefixes pass through without a redirect.
var localeExcludedPrefixes = []string{
	"/api/",
	"/_next/static/",
	"/_next/image/",
	"/images/",
	"/locales/",
	"/static/",
	"/blog/",
	"/.well-known/",
}

// localeExcludedPaths are exact paths that pass through without a redirect.
var localeExcludedPaths = map[string]bool{
	"/blog":                 true,
	"/health":               true,
	"/favicon.ico":          true,
	"/apple-touch-icon.png": true,
	"/icon.png":             true,
	"/icon-192.png":         true,
	"/icon-512.png":         true,
}

// Locale redirects paths without a locale segment to the same path under
// the preferred locale, read from cfg.Cookie or cfg.Default. The query
// string is preserved. Excluded paths and already-localized paths pass
// through, so a redirected request is never redirected again.
func Locale(cfg LocaleConfig) func(http.Handler) http.Handler {
	known := make(map[string]bool, len(cfg.Locales))
	for _, l := range cfg.Locales {
		known[l] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			if localeExcluded(p) || hasLocale(p, known) {
				next.ServeHTTP(w, r)
				return
			}

			locale := cfg.Default
			if c, err := r.Cookie(cfg.Cookie); err == nil && known[c.Value] {
				locale = c.Value
			}

			// The target keeps the path's original escaping.
			target := "/" + locale
			if ep := r.URL.EscapedPath(); ep != "/" && ep != "" {
				target += ep
			}
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
}

func localeExcluded(p string) bool {
	if localeExcludedPaths[p] {
		return true
	}
	for _, prefix := range localeExcludedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	// Anything that looks like a file.
	return strings.Contains(path.Base(p), ".")
}

// hasLocale reports whether the first path segment is a known locale.
func hasLocale(p string, known map[string]bool) bool {
	seg := strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(seg, '/'); i != -1 {
		seg = seg[:i]
	}
	return known[seg]
}
