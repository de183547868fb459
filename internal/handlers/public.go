// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campaignsite/internal/blog"
	"campaignsite/internal/markdown"
	"campaignsite/internal/models"
	"campaignsite/internal/render"
)

// Public groups handlers for the server-rendered blog pages. Only
// published posts are ever shown.
type Public struct {
	svc      *blog.Service
	renderer *render.Renderer
}

// NewPublic creates a new Public handler group.
func NewPublic(svc *blog.Service, renderer *render.Renderer) *Public {
	return &Public{svc: svc, renderer: renderer}
}

// BlogList handles GET /blog, listing published posts in every language
// or in the one named by ?language=.
func (p *Public) BlogList(w http.ResponseWriter, r *http.Request) {
	f := models.PostFilter{Published: ptrTo(true)}
	lang := models.LanguageEnglish
	if v := r.URL.Query().Get("language"); v != "" {
		l := models.Language(v)
		f.Language = &l
		if l.Valid() {
			lang = l
		}
	}
	p.list(w, r, lang, f)
}

// BlogPost handles GET /blog/{slug}, showing the newest published post with
// that slug in any language.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := p.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	lang := models.LanguageEnglish
	if post != nil {
		lang = post.Language
	}
	p.post(w, lang, post, err)
}

// LocaleBlogList handles GET /{locale} and GET /{locale}/blog.
func (p *Public) LocaleBlogList(w http.ResponseWriter, r *http.Request) {
	lang, ok := p.locale(w, r)
	if !ok {
		return
	}
	p.list(w, r, lang, models.PostFilter{Language: &lang, Published: ptrTo(true)})
}

// LocaleBlogPost handles GET /{locale}/blog/{slug}.
func (p *Public) LocaleBlogPost(w http.ResponseWriter, r *http.Request) {
	lang, ok := p.locale(w, r)
	if !ok {
		return
	}
	post, err := p.svc.GetBySlugInLanguage(r.Context(), chi.URLParam(r, "slug"), lang)
	p.post(w, lang, post, err)
}

func (p *Public) list(w http.ResponseWriter, r *http.Request, lang models.Language, f models.PostFilter) {
	posts, err := p.svc.ListPosts(r.Context(), f)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.renderer.Page(w, http.StatusOK, "blog_list", &render.PageData{
		Title:    "Blog",
		Language: lang,
		Posts:    posts,
	})
}

func (p *Public) post(w http.ResponseWriter, lang models.Language, post *models.BlogPost, err error) {
	if errors.Is(err, blog.ErrNotFound) {
		p.notFound(w, lang)
		return
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	body, err := markdown.Render(post.Content)
	if err != nil {
		slog.Error("render post markdown failed", "error", err, "id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderer.Page(w, http.StatusOK, "blog_post", &render.PageData{
		Title:    post.Title,
		Language: lang,
		Post:     post,
		Body:     body,
	})
}

// locale reads the {locale} URL segment, rendering a 404 for unknown ones.
func (p *Public) locale(w http.ResponseWriter, r *http.Request) (models.Language, bool) {
	lang := models.Language(chi.URLParam(r, "locale"))
	if !lang.Valid() {
		p.notFound(w, models.LanguageEnglish)
		return "", false
	}
	return lang, true
}

func (p *Public) notFound(w http.ResponseWriter, lang models.Language) {
	p.renderer.Page(w, http.StatusNotFound, "not_found", &render.PageData{
		Title:    "Not found",
		Language: lang,
	})
}

func ptrTo[T any](v T) *T {
	return &v
}
