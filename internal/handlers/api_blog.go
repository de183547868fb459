// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers: the JSON blog API and the
// server-rendered public blog pages.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"campaignsite/internal/blog"
	"campaignsite/internal/models"
)

// BlogAPI groups the /api/blog JSON handlers.
type BlogAPI struct {
	svc *blog.Service
}

// NewBlogAPI creates the blog API handler group.
func NewBlogAPI(svc *blog.Service) *BlogAPI {
	return &BlogAPI{svc: svc}
}

// createPostRequest is the POST /api/blog body.
type createPostRequest struct {
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	Content          string          `json:"content"`
	ShortDescription string          `json:"short_description"`
	Source           string          `json:"source"`
	Language         models.Language `json:"language"`
	Published        *bool           `json:"published"`
}

// updatePostRequest is the PUT /api/blog/{id} body. Absent fields are left
// unchanged.
type updatePostRequest struct {
	Title            *string          `json:"title"`
	Slug             *string          `json:"slug"`
	Content          *string          `json:"content"`
	ShortDescription *string          `json:"short_description"`
	Source           *string          `json:"source"`
	Language         *models.Language `json:"language"`
	Published        *bool            `json:"published"`
}

// slugResponse is the GET /api/blog/slug result.
type slugResponse struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}

// List handles GET /api/blog with optional language and published filters.
func (a *BlogAPI) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f models.PostFilter
	if v := q.Get("language"); v != "" {
		lang := models.Language(v)
		f.Language = &lang
	}
	// Only the literal "true" selects published posts. Any other value,
	// including an empty one, selects drafts.
	if q.Has("published") {
		published := q.Get("published") == "true"
		f.Published = &published
	}

	posts, err := a.svc.ListPosts(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: posts})
}

// Get handles GET /api/blog/{id}. Unpublished posts are returned.
func (a *BlogAPI) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := a.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: post})
}

// Create handles POST /api/blog.
func (a *BlogAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := a.svc.CreatePost(r.Context(), models.PostInput{
		Title:            req.Title,
		Slug:             req.Slug,
		Content:          req.Content,
		ShortDescription: req.ShortDescription,
		Source:           req.Source,
		Language:         req.Language,
		Published:        req.Published,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dataResponse{Message: msgCreated, Data: post})
}

// Update handles PUT /api/blog/{id}.
func (a *BlogAPI) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	var req updatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := a.svc.UpdatePost(r.Context(), id, models.PostUpdate{
		Title:            req.Title,
		Slug:             req.Slug,
		Content:          req.Content,
		ShortDescription: req.ShortDescription,
		Source:           req.Source,
		Language:         req.Language,
		Published:        req.Published,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Message: msgUpdated, Data: post})
}

// Delete handles DELETE /api/blog/{id}.
func (a *BlogAPI) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	if err := a.svc.DeletePost(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Message: msgDeleted})
}

// Slug handles GET /api/blog/slug. It derives a slug from title unless one
// is given, and reports whether it is free in language. exclude_id skips
// the post being edited.
func (a *BlogAPI) Slug(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ve := &blog.ValidationError{}

	s := q.Get("slug")
	if s == "" {
		s = blog.GenerateSlug(q.Get("title"))
	}
	if s == "" {
		ve.Add("title", "Title or slug is required")
	}

	lang := models.Language(q.Get("language"))
	if !lang.Valid() {
		ve.Add("language", "Language must be one of: en, ru")
	}

	var exclude *uuid.UUID
	if v := q.Get("exclude_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			ve.Add("exclude_id", "Must be a valid id")
		} else {
			exclude = &id
		}
	}

	if err := ve.OrNil(); err != nil {
		writeServiceError(w, err)
		return
	}

	available, err := a.svc.IsSlugAvailable(r.Context(), s, lang, exclude)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: slugResponse{Slug: s, Available: available}})
}

// postID parses the {id} URL parameter. A malformed id cannot name a post,
// so it is reported as not found.
func postID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNotFound})
		return uuid.Nil, false
	}
	return id, true
}
