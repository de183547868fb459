// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Language is the locale a blog post is written in.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// Languages lists every supported post language in display order.
var Languages = []Language{LanguageEnglish, LanguageRussian}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// BlogPost is a single article in the blog_posts table. Content holds the
// raw Markdown source; it is rendered to HTML only when displayed.
type BlogPost struct {
	ID               uuid.UUID `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Content          string    `json:"content"`
	ShortDescription string    `json:"short_description"`
	Source           string    `json:"source"`
	Language         Language  `json:"language"`
	Published        bool      `json:"published"`
}

// PostFilter narrows a post listing. Nil fields impose no constraint;
// set fields are combined with AND.
type PostFilter struct {
	Language  *Language
	Published *bool
}

// PostInput carries the fields of a post to be created. An empty Slug is
// derived from the Title; a nil Published defaults to true.
type PostInput struct {
	Title            string
	Slug             string
	Content          string
	ShortDescription string
	Source           string
	Language         Language
	Published        *bool
}

// PostUpdate is a partial update. Only non-nil fields are written; the
// update always refreshes updated_at.
type PostUpdate struct {
	Title            *string
	Slug             *string
	Content          *string
	ShortDescription *string
	Source           *string
	Language         *Language
	Published        *bool
}

// IsEmpty returns true if the update changes no fields.
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Slug == nil && u.Content == nil &&
		u.ShortDescription == nil && u.Source == nil &&
		u.Language == nil && u.Published == nil
}

// Apply copies the set fields of u onto p. Timestamps are left alone.
func (u PostUpdate) Apply(p *BlogPost) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Slug != nil {
		p.Slug = *u.Slug
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.ShortDescription != nil {
		p.ShortDescription = *u.ShortDescription
	}
	if u.Source != nil {
		p.Source = *u.Source
	}
	if u.Language != nil {
		p.Language = *u.Language
	}
	if u.Published != nil {
		p.Published = *u.Published
	}
}
