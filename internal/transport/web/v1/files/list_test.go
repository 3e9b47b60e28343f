package files_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/infra/database/memory"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/mw"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/files"
	"github.com/EgorLis/ipfs-drive/internal/vault"
)

type fixedCache struct {
	m map[string][]byte
}

func (c *fixedCache) Get(_ context.Context, key string) ([]byte, error) { return c.m[key], nil }
func (c *fixedCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.m[key] = val
	return nil
}
func (c *fixedCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}
func (c *fixedCache) SetNX(_ context.Context, key string, val []byte, _ int) (bool, error) {
	if _, ok := c.m[key]; ok {
		return false, nil
	}
	c.m[key] = val
	return true, nil
}
func (c *fixedCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.m[key]
	return ok, nil
}
func (c *fixedCache) Ping(context.Context) error { return nil }
func (c *fixedCache) Close()                     {}

// Кэш-хит обязан нести те же заголовки, что и обычный ответ:
// Content-Type и X-Request-ID из контекста.
func TestListCacheHitKeepsHeaders(t *testing.T) {
	discard := log.New(io.Discard, "", 0)
	user := domain.User{ID: uuid.New(), Login: "alice"}
	cached := []byte(`{"files":[{"cid":"QmCACHED"}]}`)

	cache := &fixedCache{m: map[string][]byte{
		domain.CacheKeyUploadsList(user.ID): cached,
	}}
	h := &files.Handler{
		Log:     discard,
		Vault:   vault.New(discard, memory.New(), nil, nil, 1<<20),
		Cache:   cache,
		ListTTL: 30,
	}

	// стираем заголовок, проставленный middleware: проверяем, что
	// хендлер восстанавливает его сам из контекста
	wrapped := mw.WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Del("X-Request-ID")
		h.List(w, r.WithContext(domain.WithUser(r.Context(), user)))
	}))

	req := httptest.NewRequest("GET", "/my_uploads", nil)
	req.Header.Set("X-Request-ID", "req-cached-1")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, string(cached), rec.Body.String())
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "req-cached-1", rec.Header().Get("X-Request-ID"))
}
