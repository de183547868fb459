// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Most tests run on the in-memory store; the PostgreSQL-backed ones are
// skipped when the database is unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"campaignsite/internal/blog"
	"campaignsite/internal/database"
	"campaignsite/internal/render"
	"campaignsite/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL, runs migrations and
// empties blog_posts before and after the test.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := envOr("POSTGRES_HOST", "localhost")
		port := envOr("POSTGRES_PORT", "5432")
		user := envOr("POSTGRES_USER", "campaignsite")
		pass := envOr("POSTGRES_PASSWORD", "changeme")
		name := envOr("POSTGRES_DB", "campaignsite")
		dsn = "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	clean := func() { db.Exec("DELETE FROM blog_posts") }
	clean()
	t.Cleanup(func() {
		clean()
		db.Close()
	})
	return db
}

// testEnv holds the handler groups and the store behind them.
type testEnv struct {
	Memory *store.MemoryPostStore // nil when backed by PostgreSQL
	API    *BlogAPI
	Public *Public
	Router chi.Router
}

// newTestEnv builds handlers over a fresh in-memory store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemoryPostStore()
	env := newTestEnvWith(t, mem)
	env.Memory = mem
	return env
}

// newTestEnvWith builds handlers over repo and mounts them on a chi router
// with the production route shapes.
func newTestEnvWith(t *testing.T, repo blog.Repository) *testEnv {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	svc := blog.NewService(repo)
	env := &testEnv{
		API:    NewBlogAPI(svc),
		Public: NewPublic(svc, renderer),
	}

	r := chi.NewRouter()
	r.Route("/api/blog", func(r chi.Router) {
		r.Get("/", env.API.List)
		r.Post("/", env.API.Create)
		r.Get("/slug", env.API.Slug)
		r.Get("/{id}", env.API.Get)
		r.Put("/{id}", env.API.Update)
		r.Delete("/{id}", env.API.Delete)
	})
	r.Get("/blog", env.Public.BlogList)
	r.Get("/blog/{slug}", env.Public.BlogPost)
	r.Get("/{locale}", env.Public.LocaleBlogList)
	r.Get("/{locale}/blog", env.Public.LocaleBlogList)
	r.Get("/{locale}/blog/{slug}", env.Public.LocaleBlogPost)
	env.Router = r

	return env
}

// do sends a request through the test router. A non-nil body is encoded
// as JSON unless it is already a string.
func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.Router.ServeHTTP(rr, req)
	return rr
}

// apiResponse is the union of the API envelopes, decoded loosely.
type apiResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Details []blog.FieldError `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return resp
}

// decodeData unmarshals the data field of an envelope into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) apiResponse {
	t.Helper()
	resp := decodeResponse(t, rr)
	if err := json.Unmarshal(resp.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", resp.Data, err)
	}
	return resp
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// validPost returns a complete create request body.
func validPost(title, language string) map[string]any {
	return map[string]any{
		"title":             title,
		"content":           "## Intro\n\nBody of " + title,
		"short_description": "About " + title,
		"source":            "Campaign HQ",
		"language":          language,
	}
}
