// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"campaignsite/internal/models"
)

//go:embed templates/public/*.html
var publicFS embed.FS

// PageData holds all data passed to public templates.
type PageData struct {
	Title    string          // Page title for <title> tag
	Language models.Language // Drives the <html lang> attribute and link prefixes
	Posts    []models.BlogPost
	Post     *models.BlogPost
	Body     template.HTML // Rendered Markdown of Post
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
}

// funcMap holds helpers shared by every public template.
var funcMap = template.FuncMap{
	// date formats a post timestamp the way posts are listed.
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	// isoDate is the machine-readable form used in <time datetime>.
	"isoDate": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
	// blogPath returns the locale-prefixed path of a blog page. An empty
	// slug gives the listing path.
	"blogPath": func(lang models.Language, slug string) string {
		if slug == "" {
			return "/" + string(lang) + "/blog"
		}
		return "/" + string(lang) + "/blog/" + slug
	},
}

// New creates a Renderer by parsing all public templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	entries, err := publicFS.ReadDir("templates/public")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			publicFS, "templates/public/base.html", "templates/public/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[name[:len(name)-len(".html")]] = tmpl
	}

	return r, nil
}

// Page renders the named page inside the base layout with the given status.
// The output is buffered so a template error still yields a clean 500.
func (rn *Renderer) Page(w http.ResponseWriter, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		slog.Error("template not found", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data.Language == "" {
		data.Language = models.LanguageEnglish
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
