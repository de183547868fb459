// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the Chi router with all application routes and
// middleware chains.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"campaignsite/internal/handlers"
	"campaignsite/internal/middleware"
	"campaignsite/web"
)

// Options carries the settings the route tree depends on.
type Options struct {
	APIKey       string                  // shared secret for mutating /api/blog routes
	WriteLimiter middleware.Limiter      // nil disables write rate limiting
	TrustProxy   bool                    // key the limiter on forwarding headers
	CORSOrigins  []string                // empty disables CORS handling
	Locale       middleware.LocaleConfig // locale redirect settings
}

// New creates and configures the Chi router with all routes and middleware.
func New(api *handlers.BlogAPI, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Locale(opts.Locale))

	r.Get("/health", healthHandler)

	static, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Route("/api/blog", func(r chi.Router) {
		if len(opts.CORSOrigins) > 0 {
			r.Use(cors.New(cors.Options{
				AllowedOrigins: opts.CORSOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
				AllowedHeaders: []string{"Content-Type", "Authorization", middleware.APIKeyHeader},
				MaxAge:         300,
			}).Handler)
		}

		r.Get("/", api.List)
		r.Get("/slug", api.Slug)
		r.Get("/{id}", api.Get)

		// Mutations: rate limited, then authenticated.
		r.Group(func(r chi.Router) {
			if opts.WriteLimiter != nil {
				r.Use(middleware.RateLimit(opts.WriteLimiter, opts.TrustProxy))
			}
			r.Use(middleware.RequireAPIKey(opts.APIKey))

			r.Post("/", api.Create)
			r.Put("/{id}", api.Update)
			r.Delete("/{id}", api.Delete)
		})
	})

	// Public blog pages.
	r.Get("/blog", public.BlogList)
	r.Get("/blog/{slug}", public.BlogPost)
	r.Get("/{locale}", public.LocaleBlogList)
	r.Get("/{locale}/blog", public.LocaleBlogList)
	r.Get("/{locale}/blog/{slug}", public.LocaleBlogPost)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
