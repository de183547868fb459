package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"campaignsite/internal/models"
)

func TestMemoryPostStoreUniqueness(t *testing.T) {
	s := NewMemoryPostStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, testPost("hello-world", models.LanguageEnglish, true)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, testPost("hello-world", models.LanguageEnglish, true)); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("duplicate Create: got %v, want ErrSlugTaken", err)
	}
	if _, err := s.Create(ctx, testPost("hello-world", models.LanguageRussian, true)); err != nil {
		t.Errorf("Create in other language: %v", err)
	}
}

func TestMemoryPostStoreUpdateLanguageCollision(t *testing.T) {
	s := NewMemoryPostStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, testPost("shared", models.LanguageEnglish, true)); err != nil {
		t.Fatalf("Create en: %v", err)
	}
	ru, err := s.Create(ctx, testPost("shared", models.LanguageRussian, true))
	if err != nil {
		t.Fatalf("Create ru: %v", err)
	}

	// Switching the Russian post to English collides on the same slug.
	en := models.LanguageEnglish
	if _, err := s.Update(ctx, ru.ID, models.PostUpdate{Language: &en}); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("Update: got %v, want ErrSlugTaken", err)
	}

	// A rejected update leaves the stored post untouched.
	found, _ := s.FindByID(ctx, ru.ID)
	if found.Language != models.LanguageRussian {
		t.Errorf("language changed to %q after rejected update", found.Language)
	}
}

func TestMemoryPostStoreListOrder(t *testing.T) {
	s := NewMemoryPostStore()
	ctx := context.Background()

	for _, slug := range []string{"first", "second", "third"} {
		if _, err := s.Create(ctx, testPost(slug, models.LanguageEnglish, true)); err != nil {
			t.Fatalf("Create %s: %v", slug, err)
		}
	}

	posts, err := s.List(ctx, models.PostFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"third", "second", "first"}
	if len(posts) != len(want) {
		t.Fatalf("got %d posts, want %d", len(posts), len(want))
	}
	for i, slug := range want {
		if posts[i].Slug != slug {
			t.Errorf("posts[%d] = %q, want %q", i, posts[i].Slug, slug)
		}
	}
}

func TestMemoryPostStoreFailWith(t *testing.T) {
	s := NewMemoryPostStore()
	s.FailWith = errors.New("connection refused")
	ctx := context.Background()

	if _, err := s.List(ctx, models.PostFilter{}); err == nil {
		t.Error("List should fail")
	}
	if _, err := s.FindByID(ctx, uuid.New()); err == nil {
		t.Error("FindByID should fail")
	}
	if _, err := s.Delete(ctx, uuid.New()); err == nil {
		t.Error("Delete should fail")
	}
}
