// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog is the content service for blog posts. It validates input,
// derives slugs, and translates store failures into the domain errors
// ErrNotFound, ErrConflict, ErrInternal and *ValidationError.
package blog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"campaignsite/internal/models"
	"campaignsite/internal/slug"
	"campaignsite/internal/store"
)

// Repository is the persistence the service needs. *store.PostStore and
// *store.MemoryPostStore both satisfy it. Lookups return (nil, nil) when
// nothing matches; writes return store.ErrSlugTaken on a (slug, language)
// collision.
type Repository interface {
	List(ctx context.Context, f models.PostFilter) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	FindPublishedBySlug(ctx context.Context, slug string, lang *models.Language) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug string, lang models.Language, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, u models.PostUpdate) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service mediates all reads and writes of blog posts.
type Service struct {
	repo Repository
}

// NewService creates a content service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GenerateSlug derives a URL-safe slug from a title. Collisions are not
// resolved here; they surface as ErrConflict on write.
func GenerateSlug(title string) string {
	return slug.Generate(title)
}

// ListPosts returns posts matching the filter, newest first. An empty
// result is an empty slice, never an error.
func (s *Service) ListPosts(ctx context.Context, f models.PostFilter) ([]models.BlogPost, error) {
	posts, err := s.repo.List(ctx, f)
	if err != nil {
		slog.Error("list blog posts failed", "error", err)
		return nil, ErrInternal
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	return posts, nil
}

// GetBySlug returns the newest published post with the given slug in any
// language. Unpublished posts are reported as ErrNotFound.
func (s *Service) GetBySlug(ctx context.Context, postSlug string) (*models.BlogPost, error) {
	return s.findPublished(ctx, postSlug, nil)
}

// GetBySlugInLanguage is GetBySlug restricted to one language.
func (s *Service) GetBySlugInLanguage(ctx context.Context, postSlug string, lang models.Language) (*models.BlogPost, error) {
	return s.findPublished(ctx, postSlug, &lang)
}

func (s *Service) findPublished(ctx context.Context, postSlug string, lang *models.Language) (*models.BlogPost, error) {
	p, err := s.repo.FindPublishedBySlug(ctx, postSlug, lang)
	if err != nil {
		slog.Error("find blog post by slug failed", "error", err, "slug", postSlug)
		return nil, ErrInternal
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetByID returns a post regardless of its published state.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		slog.Error("find blog post by id failed", "error", err, "id", id)
		return nil, ErrInternal
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// CreatePost validates and stores a new post. An empty slug is generated
// from the title and a nil Published defaults to true. The store's unique
// (slug, language) constraint is the source of ErrConflict.
func (s *Service) CreatePost(ctx context.Context, in models.PostInput) (*models.BlogPost, error) {
	if in.Slug == "" {
		in.Slug = GenerateSlug(in.Title)
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	created, err := s.repo.Create(ctx, &models.BlogPost{
		Title:            in.Title,
		Slug:             in.Slug,
		Content:          in.Content,
		ShortDescription: in.ShortDescription,
		Source:           in.Source,
		Language:         in.Language,
		Published:        published,
	})
	if errors.Is(err, store.ErrSlugTaken) {
		return nil, ErrConflict
	}
	if err != nil {
		slog.Error("create blog post failed", "error", err, "slug", in.Slug)
		return nil, ErrInternal
	}

	slog.Info("blog post created", "id", created.ID, "slug", created.Slug, "language", created.Language)
	return created, nil
}

// UpdatePost applies a partial update. Only supplied fields change and
// updated_at always advances. A slug or language change that collides with
// another post returns ErrConflict.
func (s *Service) UpdatePost(ctx context.Context, id uuid.UUID, u models.PostUpdate) (*models.BlogPost, error) {
	if err := validateUpdate(u); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, u)
	if errors.Is(err, store.ErrSlugTaken) {
		return nil, ErrConflict
	}
	if err != nil {
		slog.Error("update blog post failed", "error", err, "id", id)
		return nil, ErrInternal
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	slog.Info("blog post updated", "id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

// DeletePost permanently removes a post.
func (s *Service) DeletePost(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		slog.Error("delete blog post failed", "error", err, "id", id)
		return ErrInternal
	}
	if !deleted {
		return ErrNotFound
	}

	slog.Info("blog post deleted", "id", id)
	return nil
}

// IsSlugAvailable reports whether no post other than excludeID occupies
// the (slug, language) pair. The answer is advisory; a concurrent write
// can still take the slug before the caller does.
func (s *Service) IsSlugAvailable(ctx context.Context, postSlug string, lang models.Language, excludeID *uuid.UUID) (bool, error) {
	exists, err := s.repo.SlugExists(ctx, postSlug, lang, excludeID)
	if err != nil {
		slog.Error("check blog post slug failed", "error", err, "slug", postSlug, "language", lang)
		return false, ErrInternal
	}
	return !exists, nil
}
