package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crabcms/internal/cache"
	"crabcms/internal/handlers"
	"crabcms/internal/render"
	"crabcms/internal/session"
	"crabcms/internal/storage/memory"
)

// newTestRouter wires the full route tree over a seeded in-memory adapter.
// The session store has no Valkey client behind it; requests without a
// session cookie never touch the client, which is exactly the
// unauthenticated case these tests exercise.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := memory.New()
	if err := db.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	pageCache := cache.NewPageCache(nil, 0)
	sessions := session.NewStore(nil)

	admin := handlers.NewAdmin(db, renderer, pageCache, "memory")
	auth := handlers.NewAuth(renderer, sessions)
	public := handlers.NewPublic(db, renderer, pageCache)

	return New(sessions, admin, auth, public, false)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestPublicRoutes(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		path string
		want int
	}{
		{path: "/", want: http.StatusOK},
		{path: "/blog", want: http.StatusOK},
		{path: "/blog/why-we-built-crab-cms", want: http.StatusOK},
		{path: "/contact", want: http.StatusOK},
		{path: "/no-such-slug", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := get(t, h, tt.path)
			if rr.Code != tt.want {
				t.Errorf("GET %s = %d, want %d", tt.path, rr.Code, tt.want)
			}
		})
	}
}

// TestAdminRequiresAuth verifies unauthenticated admin requests are sent
// to the login page.
func TestAdminRequiresAuth(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/admin", "/admin/posts", "/admin/settings", "/admin/theme", "/admin/export"} {
		t.Run(path, func(t *testing.T) {
			rr := get(t, h, path)
			if rr.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rr.Code)
			}
			if loc := rr.Header().Get("Location"); loc != "/admin/login" {
				t.Errorf("redirect = %q, want /admin/login", loc)
			}
		})
	}
}

// TestLoginPageIsOpen verifies the login form is reachable without a
// session and carries a CSRF cookie.
func TestLoginPageIsOpen(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/admin/login")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var hasCSRF bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == "crab_csrf" {
			hasCSRF = true
		}
	}
	if !hasCSRF {
		t.Error("login page did not set a CSRF cookie")
	}
}

// TestAdminMutationsNeedCSRF verifies state-changing admin requests are
// rejected without a CSRF token.
func TestAdminMutationsNeedCSRF(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
}

// TestSecurityHeadersApplied verifies the global header middleware runs on
// every surface.
func TestSecurityHeadersApplied(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

// TestStaticAssetsServed verifies the embedded static tree is mounted.
func TestStaticAssetsServed(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/static/input.css")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "tailwind") {
		t.Errorf("unexpected asset body: %q", rr.Body.String())
	}
}
