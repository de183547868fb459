// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"campaignsite/internal/models"
)

// MemoryPostStore is an in-process PostStore replacement used by tests and
// database-less previews. It enforces the same (slug, language) uniqueness
// as the blog_posts schema.
type MemoryPostStore struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]models.BlogPost
	last  time.Time

	// FailWith, when set, is returned by every method to simulate an
	// unreachable database.
	FailWith error
}

// NewMemoryPostStore creates an empty in-memory post store.
func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: make(map[uuid.UUID]models.BlogPost)}
}

// now returns a timestamp strictly after the previous one so that
// updated_at always advances. Callers must hold mu.
func (m *MemoryPostStore) now() time.Time {
	t := time.Now().UTC()
	if !t.After(m.last) {
		t = m.last.Add(time.Microsecond)
	}
	m.last = t
	return t
}

func (m *MemoryPostStore) List(_ context.Context, f models.PostFilter) ([]models.BlogPost, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := []models.BlogPost{}
	for _, p := range m.posts {
		if f.Language != nil && p.Language != *f.Language {
			continue
		}
		if f.Published != nil && p.Published != *f.Published {
			continue
		}
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *MemoryPostStore) FindByID(_ context.Context, id uuid.UUID) (*models.BlogPost, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryPostStore) FindPublishedBySlug(_ context.Context, slug string, lang *models.Language) (*models.BlogPost, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found *models.BlogPost
	for _, p := range m.posts {
		if p.Slug != slug || !p.Published {
			continue
		}
		if lang != nil && p.Language != *lang {
			continue
		}
		if found == nil || p.CreatedAt.After(found.CreatedAt) {
			p := p
			found = &p
		}
	}
	return found, nil
}

func (m *MemoryPostStore) SlugExists(_ context.Context, slug string, lang models.Language, excludeID *uuid.UUID) (bool, error) {
	if m.FailWith != nil {
		return false, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slugTaken(slug, lang, excludeID), nil
}

// slugTaken must be called with mu held.
func (m *MemoryPostStore) slugTaken(slug string, lang models.Language, excludeID *uuid.UUID) bool {
	for id, p := range m.posts {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if p.Slug == slug && p.Language == lang {
			return true
		}
	}
	return false
}

func (m *MemoryPostStore) Create(_ context.Context, p *models.BlogPost) (*models.BlogPost, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.slugTaken(p.Slug, p.Language, nil) {
		return nil, ErrSlugTaken
	}

	created := *p
	created.ID = uuid.New()
	created.CreatedAt = m.now()
	created.UpdatedAt = created.CreatedAt
	m.posts[created.ID] = created
	return &created, nil
}

func (m *MemoryPostStore) Update(_ context.Context, id uuid.UUID, u models.PostUpdate) (*models.BlogPost, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	u.Apply(&p)
	if m.slugTaken(p.Slug, p.Language, &id) {
		return nil, ErrSlugTaken
	}
	p.UpdatedAt = m.now()
	m.posts[id] = p
	return &p, nil
}

func (m *MemoryPostStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if m.FailWith != nil {
		return false, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return false, nil
	}
	delete(m.posts, id)
	return true, nil
}

func (m *MemoryPostStore) Count(_ context.Context) (int, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.posts), nil
}
