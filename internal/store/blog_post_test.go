package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"campaignsite/internal/models"
)

func testPost(slug string, lang models.Language, published bool) *models.BlogPost {
	return &models.BlogPost{
		Title:            "Test Post",
		Slug:             slug,
		Content:          "# Heading\n\nBody text.",
		ShortDescription: "A short summary.",
		Source:           "Test Source",
		Language:         lang,
		Published:        published,
	}
}

func TestPostStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	slug := "test-create-post-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	created, err := s.Create(ctx, testPost(slug, models.LanguageEnglish, true))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected store-assigned timestamps")
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected post, got nil")
	}
	if found.Slug != slug || found.Language != models.LanguageEnglish || !found.Published {
		t.Errorf("found = %+v, want slug %q in en, published", found, slug)
	}

	missing, err := s.FindByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("FindByID (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestPostStoreSlugUniquePerLanguage(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	slug := "test-unique-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	if _, err := s.Create(ctx, testPost(slug, models.LanguageEnglish, true)); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := s.Create(ctx, testPost(slug, models.LanguageEnglish, true))
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("duplicate Create: got %v, want ErrSlugTaken", err)
	}

	if _, err := s.Create(ctx, testPost(slug, models.LanguageRussian, true)); err != nil {
		t.Errorf("same slug in another language should succeed: %v", err)
	}
}

func TestPostStoreFindPublishedBySlug(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	slug := "test-slug-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	// Unpublished posts are invisible to slug lookups.
	draft, err := s.Create(ctx, testPost(slug, models.LanguageEnglish, false))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindPublishedBySlug(ctx, slug, nil)
	if err != nil {
		t.Fatalf("FindPublishedBySlug (draft): %v", err)
	}
	if found != nil {
		t.Error("expected nil for unpublished post")
	}

	published := true
	if _, err := s.Update(ctx, draft.ID, models.PostUpdate{Published: &published}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err = s.FindPublishedBySlug(ctx, slug, nil)
	if err != nil {
		t.Fatalf("FindPublishedBySlug (published): %v", err)
	}
	if found == nil || found.ID != draft.ID {
		t.Fatalf("expected post %s after publishing, got %+v", draft.ID, found)
	}

	ru := models.LanguageRussian
	found, err = s.FindPublishedBySlug(ctx, slug, &ru)
	if err != nil {
		t.Fatalf("FindPublishedBySlug (ru): %v", err)
	}
	if found != nil {
		t.Error("expected nil when filtering by another language")
	}
}

func TestPostStoreList(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	slugEN := "test-list-en-" + suffix
	slugRU := "test-list-ru-" + suffix
	slugDraft := "test-list-draft-" + suffix
	t.Cleanup(func() { cleanPosts(t, db, slugEN, slugRU, slugDraft) })

	for _, p := range []*models.BlogPost{
		testPost(slugEN, models.LanguageEnglish, true),
		testPost(slugRU, models.LanguageRussian, true),
		testPost(slugDraft, models.LanguageEnglish, false),
	} {
		if _, err := s.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", p.Slug, err)
		}
	}

	en := models.LanguageEnglish
	published := true
	posts, err := s.List(ctx, models.PostFilter{Language: &en, Published: &published})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	seen := map[string]bool{}
	for _, p := range posts {
		if p.Language != models.LanguageEnglish || !p.Published {
			t.Errorf("filter leaked post %q (%s, published=%v)", p.Slug, p.Language, p.Published)
		}
		seen[p.Slug] = true
	}
	if !seen[slugEN] {
		t.Errorf("expected %s in filtered listing", slugEN)
	}
	if seen[slugRU] || seen[slugDraft] {
		t.Error("filtered listing contains excluded posts")
	}

	all, err := s.List(ctx, models.PostFilter{})
	if err != nil {
		t.Fatalf("List (unfiltered): %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatalf("listing not ordered newest first at index %d", i)
		}
	}
}

func TestPostStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	slugA := "test-update-a-" + suffix
	slugB := "test-update-b-" + suffix
	t.Cleanup(func() { cleanPosts(t, db, slugA, slugB) })

	a, err := s.Create(ctx, testPost(slugA, models.LanguageEnglish, true))
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if _, err := s.Create(ctx, testPost(slugB, models.LanguageEnglish, true)); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	title := "Renamed"
	updated, err := s.Update(ctx, a.ID, models.PostUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title: got %q, want %q", updated.Title, "Renamed")
	}
	if updated.Slug != slugA || updated.Content != a.Content {
		t.Error("unsupplied fields changed")
	}
	if !updated.UpdatedAt.After(a.UpdatedAt) {
		t.Errorf("updated_at did not advance: %v -> %v", a.UpdatedAt, updated.UpdatedAt)
	}

	// Moving onto another post's slug collides.
	_, err = s.Update(ctx, a.ID, models.PostUpdate{Slug: &slugB})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("colliding Update: got %v, want ErrSlugTaken", err)
	}

	missing, err := s.Update(ctx, uuid.New(), models.PostUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestPostStoreSlugExistsAndDelete(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	slug := "test-delete-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	p, err := s.Create(ctx, testPost(slug, models.LanguageEnglish, true))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err := s.SlugExists(ctx, slug, models.LanguageEnglish, nil)
	if err != nil || !exists {
		t.Errorf("SlugExists: got (%v, %v), want (true, nil)", exists, err)
	}
	exists, err = s.SlugExists(ctx, slug, models.LanguageEnglish, &p.ID)
	if err != nil || exists {
		t.Errorf("SlugExists excluding self: got (%v, %v), want (false, nil)", exists, err)
	}

	deleted, err := s.Delete(ctx, p.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: got (%v, %v), want (true, nil)", deleted, err)
	}

	deleted, err = s.Delete(ctx, p.ID)
	if err != nil || deleted {
		t.Errorf("second Delete: got (%v, %v), want (false, nil)", deleted, err)
	}

	found, _ := s.FindByID(ctx, p.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}
