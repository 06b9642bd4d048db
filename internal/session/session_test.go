// session_test.go holds integration tests for the Valkey-backed session
// store. Tests are skipped when Valkey is not reachable, mirroring how the
// rest of the project treats external services in tests.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testStore connects to Valkey, skipping the test when unreachable.
func testStore(t *testing.T) *Store {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: valkey not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewStore(client)
}

// sessionCookie extracts the session cookie from a recorded response.
func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// TestCreateAndGet verifies the full round trip: Create sets a cookie and
// stores the payload; Get reads it back from the request cookie.
func TestCreateAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rr := httptest.NewRecorder()
	id, err := s.Create(ctx, rr, &Data{DisplayName: "Ada"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty session ID")
	}

	cookie := sessionCookie(t, rr)
	if !cookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
	if cookie.Value != id {
		t.Errorf("cookie value %q != session ID %q", cookie.Value, id)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)

	data, err := s.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data == nil {
		t.Fatal("Get returned nil for a live session")
	}
	if data.DisplayName != "Ada" {
		t.Errorf("DisplayName = %q, want Ada", data.DisplayName)
	}
	if data.CreatedAt.IsZero() {
		t.Error("CreatedAt not set on create")
	}
}

// TestGetWithoutCookie verifies no cookie means no session, not an error.
func TestGetWithoutCookie(t *testing.T) {
	s := testStore(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	data, err := s.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil session, got %+v", data)
	}
}

// TestGetUnknownSession verifies an unknown session ID behaves like an
// expired session.
func TestGetUnknownSession(t *testing.T) {
	s := testStore(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "does-not-exist"})

	data, err := s.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil session, got %+v", data)
	}
}

// TestDestroy verifies the session is removed and the cookie expired.
func TestDestroy(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	createRR := httptest.NewRecorder()
	if _, err := s.Create(ctx, createRR, &Data{DisplayName: "Ada"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cookie := sessionCookie(t, createRR)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	destroyRR := httptest.NewRecorder()

	if err := s.Destroy(ctx, destroyRR, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	cleared := sessionCookie(t, destroyRR)
	if cleared.MaxAge != -1 {
		t.Errorf("cookie MaxAge = %d, want -1", cleared.MaxAge)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/admin", nil)
	getReq.AddCookie(cookie)
	data, err := s.Get(ctx, getReq)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("session still readable after Destroy")
	}
}
