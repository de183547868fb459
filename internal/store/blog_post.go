// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"campaignsite/internal/models"
)

// ErrSlugTaken is returned when a write would give two posts the same
// (slug, language) pair.
var ErrSlugTaken = errors.New("slug already taken in this language")

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// postColumns is the column list every blog_posts query selects, in the
// order scanPost expects.
const postColumns = `id, created_at, updated_at, title, slug, content,
	short_description, source, language, published`

// PostStore handles all blog_posts database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := row.Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Title, &p.Slug, &p.Content,
		&p.ShortDescription, &p.Source, &p.Language, &p.Published,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns posts matching the filter, newest first. Unset filter
// fields are passed as NULL and match every row.
func (s *PostStore) List(ctx context.Context, f models.PostFilter) ([]models.BlogPost, error) {
	var lang, published any
	if f.Language != nil {
		lang = string(*f.Language)
	}
	if f.Published != nil {
		published = *f.Published
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE ($1::text IS NULL OR language = $1::text)
		  AND ($2::boolean IS NULL OR published = $2::boolean)
		ORDER BY created_at DESC
	`, lang, published)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by its UUID regardless of its published state.
// Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+` FROM blog_posts WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published post by slug. When lang is nil
// the newest published post with that slug in any language wins.
// Returns nil if not found.
func (s *PostStore) FindPublishedBySlug(ctx context.Context, slug string, lang *models.Language) (*models.BlogPost, error) {
	var langArg any
	if lang != nil {
		langArg = string(*lang)
	}

	p, err := scanPost(s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE slug = $1 AND published = TRUE
		  AND ($2::text IS NULL OR language = $2::text)
		ORDER BY created_at DESC
		LIMIT 1
	`, slug, langArg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether a post other than excludeID already uses the
// (slug, language) pair.
func (s *PostStore) SlugExists(ctx context.Context, slug string, lang models.Language, excludeID *uuid.UUID) (bool, error) {
	var exclude any
	if excludeID != nil {
		exclude = *excludeID
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM blog_posts
			WHERE slug = $1 AND language = $2
			  AND ($3::uuid IS NULL OR id <> $3::uuid)
		)
	`, slug, string(lang), exclude).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blog post slug: %w", err)
	}
	return exists, nil
}

// Create inserts a new post and returns it with the generated ID and
// timestamps. Returns ErrSlugTaken on a (slug, language) collision.
func (s *PostStore) Create(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error) {
	created, err := scanPost(s.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (title, slug, content, short_description, source, language, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Content, p.ShortDescription, p.Source, string(p.Language), p.Published,
	))
	if isUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of u to the post and refreshes
// updated_at. Returns nil if the post does not exist and ErrSlugTaken if
// the new (slug, language) pair is already used.
func (s *PostStore) Update(ctx context.Context, id uuid.UUID, u models.PostUpdate) (*models.BlogPost, error) {
	var lang *string
	if u.Language != nil {
		l := string(*u.Language)
		lang = &l
	}

	updated, err := scanPost(s.db.QueryRowContext(ctx, `
		UPDATE blog_posts SET
			title             = COALESCE($1, title),
			slug              = COALESCE($2, slug),
			content           = COALESCE($3, content),
			short_description = COALESCE($4, short_description),
			source            = COALESCE($5, source),
			language          = COALESCE($6, language),
			published         = COALESCE($7, published),
			updated_at        = NOW()
		WHERE id = $8
		RETURNING `+postColumns,
		u.Title, u.Slug, u.Content, u.ShortDescription, u.Source, lang, u.Published, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	return updated, nil
}

// Delete permanently removes a post. Returns false if no row matched.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete blog post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete blog post rows: %w", err)
	}
	return n > 0, nil
}

// Count returns the total number of posts.
func (s *PostStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count blog posts: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
