package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kwarden/host-redirector/pkg/resolver"
	"github.com/kwarden/host-redirector/pkg/server"
	"github.com/kwarden/host-redirector/pkg/store"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

// fakeClock lets the suite expire cache entries without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func setupService(t *testing.T, st store.Store, ttl time.Duration) (*server.Handler, *fakeClock) {
	t.Helper()

	clock := &fakeClock{t: time.Now()}
	res, err := resolver.New(resolver.Config{
		Store: st,
		Cache: resolver.NewCache(clock.Now),
		TTL:   ttl,
		Now:   clock.Now,
	})
	if err != nil {
		t.Fatalf("resolver.New failed: %v", err)
	}
	return server.NewHandler(res, 5*time.Second), clock
}

// TestRedirectFlow tests the complete flow: HTTP request → cache → Redis →
// redirect response.
func TestRedirectFlow(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	st := store.NewRedisStore(redisClient, "redirects")
	handler, clock := setupService(t, st, 5*time.Minute)
	ctx := context.Background()

	url := "example.org"
	if err := st.Put(ctx, "old.example.com", &store.Record{RedirectURL: &url}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	t.Run("redirect_with_path_and_query", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "https://old.example.com/foo/bar?x=1", nil))

		resp := w.Result()
		if resp.StatusCode != http.StatusTemporaryRedirect {
			t.Fatalf("status = %d, want 307", resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "https://example.org/foo/bar?x=1" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("served_from_cache_while_fresh", func(t *testing.T) {
		// Change the value in Redis; the cached one must win until stale.
		moved := "https://moved.example.org"
		if err := st.Put(ctx, "old.example.com", &store.Record{RedirectURL: &moved}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "https://old.example.com/", nil))
		if loc := w.Result().Header.Get("Location"); loc != "https://example.org" {
			t.Errorf("Location = %q, want the cached destination", loc)
		}

		// After the TTL the new destination is picked up.
		clock.Advance(6 * time.Minute)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "https://old.example.com/", nil))
		if loc := w.Result().Header.Get("Location"); loc != "https://moved.example.org" {
			t.Errorf("Location = %q, want the re-fetched destination", loc)
		}
	})

	t.Run("unconfigured_host", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "https://unknown.example.com/", nil))

		resp := w.Result()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
		if !strings.Contains(string(body), "redirect url not found") {
			t.Errorf("body = %q", body)
		}
	})
}

// TestRedirectFlow_StoreOutage verifies transient failures are not cached:
// the service recovers as soon as Redis does, and a fresh cache entry keeps
// serving through the outage.
func TestRedirectFlow_StoreOutage(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	st := store.NewRedisStore(redisClient, "redirects")
	handler, clock := setupService(t, st, 5*time.Minute)
	ctx := context.Background()

	url := "https://example.org"
	if err := st.Put(ctx, "old.example.com", &store.Record{RedirectURL: &url}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Warm the cache, then cut the connection.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "https://old.example.com/", nil))
	if w.Result().StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("warmup status = %d, want 307", w.Result().StatusCode)
	}

	redisClient.Close()

	// Fresh entry still serves with the store gone.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "https://old.example.com/", nil))
	if w.Result().StatusCode != http.StatusTemporaryRedirect {
		t.Errorf("status during outage = %d, want 307 from cache", w.Result().StatusCode)
	}

	// Stale entry with the store gone surfaces the generic 500.
	clock.Advance(6 * time.Minute)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "https://old.example.com/", nil))
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if !strings.Contains(string(body), "redirect url not found") {
		t.Errorf("body = %q, want the generic message for transient failures", body)
	}
}
