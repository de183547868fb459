package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// seedPost is a sample article inserted into an empty development database.
type seedPost struct {
	title, slug, content, shortDescription, source, language string
}

var seedPosts = []seedPost{
	{
		title:            "First News Article",
		slug:             "first-news-article",
		content:          "This is the full content of the first news article.\n\nYou can add more details here.",
		shortDescription: "This is a short description of the first news article.",
		source:           "Example News",
		language:         "en",
	},
	{
		title:            "Second News Article",
		slug:             "second-news-article",
		content:          "Full content for the second article goes here.\n\nAdd as much detail as needed.",
		shortDescription: "A brief summary of the second article.",
		source:           "Another Source",
		language:         "en",
	},
}

// Seed populates the database with sample blog posts for development.
// It is a no-op when any post already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blog_posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, p := range seedPosts {
		_, err := db.Exec(`
			INSERT INTO blog_posts (title, slug, content, short_description, source, language)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (slug, language) DO NOTHING
		`, p.title, p.slug, p.content, p.shortDescription, p.source, p.language)
		if err != nil {
			return fmt.Errorf("seed insert post %s: %w", p.slug, err)
		}
	}

	slog.Info("database seeded with sample blog posts", "count", len(seedPosts))
	return nil
}
