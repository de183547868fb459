package blog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"campaignsite/internal/models"
	"campaignsite/internal/slug"
)

// Validation limits for blog post fields.
const (
	maxTitleLen            = 300
	maxSlugLen             = 300
	maxContentLen          = 200_000
	maxShortDescriptionLen = 1_000
	maxSourceLen           = 300
)

// textField pairs a required text field with its wire name and limit.
type textField struct {
	name  string
	label string
	value string
	max   int
}

func checkText(v *ValidationError, f textField) {
	if strings.TrimSpace(f.value) == "" {
		v.Add(f.name, f.label+" is required")
		return
	}
	if utf8.RuneCountInString(f.value) > f.max {
		v.Add(f.name, fmt.Sprintf("%s is too long (max %d characters)", f.label, f.max))
	}
}

func checkSlug(v *ValidationError, s string) {
	if s == "" {
		v.Add("slug", "Slug is required")
		return
	}
	if utf8.RuneCountInString(s) > maxSlugLen {
		v.Add("slug", fmt.Sprintf("Slug is too long (max %d characters)", maxSlugLen))
		return
	}
	if !slug.Valid(s) {
		v.Add("slug", "Slug may only contain lowercase letters, digits and single hyphens")
	}
}

func checkLanguage(v *ValidationError, l models.Language) {
	if !l.Valid() {
		v.Add("language", "Language must be one of: en, ru")
	}
}

// validateInput checks a create request. in.Slug must already be resolved.
func validateInput(in models.PostInput) error {
	v := &ValidationError{}
	checkText(v, textField{"title", "Title", in.Title, maxTitleLen})
	checkSlug(v, in.Slug)
	checkText(v, textField{"content", "Content", in.Content, maxContentLen})
	checkText(v, textField{"short_description", "Short description", in.ShortDescription, maxShortDescriptionLen})
	checkText(v, textField{"source", "Source", in.Source, maxSourceLen})
	checkLanguage(v, in.Language)
	return v.OrNil()
}

// validateUpdate checks only the fields present in a partial update, with
// the same constraints as creation.
func validateUpdate(u models.PostUpdate) error {
	v := &ValidationError{}
	if u.Title != nil {
		checkText(v, textField{"title", "Title", *u.Title, maxTitleLen})
	}
	if u.Slug != nil {
		checkSlug(v, *u.Slug)
	}
	if u.Content != nil {
		checkText(v, textField{"content", "Content", *u.Content, maxContentLen})
	}
	if u.ShortDescription != nil {
		checkText(v, textField{"short_description", "Short description", *u.ShortDescription, maxShortDescriptionLen})
	}
	if u.Source != nil {
		checkText(v, textField{"source", "Source", *u.Source, maxSourceLen})
	}
	if u.Language != nil {
		checkLanguage(v, *u.Language)
	}
	return v.OrNil()
}
