package ipfs_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/infra/gateway/ipfs"
)

func newGateway(base string, maxBytes int64) *ipfs.Gateway {
	return ipfs.New(ipfs.Config{Base: base, MaxBytes: maxBytes}, log.New(io.Discard, "", 0))
}

func TestURL(t *testing.T) {
	g := newGateway("https://gw.example/ipfs/", 1<<20)
	require.Equal(t, "https://gw.example/ipfs/QmAAA", g.URL("QmAAA"))

	g = newGateway("https://gw.example/ipfs", 1<<20)
	require.Equal(t, "https://gw.example/ipfs/QmAAA", g.URL("QmAAA"))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/QmAAA", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("file body"))
	}))
	defer srv.Close()

	g := newGateway(srv.URL, 1<<20)
	rc, err := g.Fetch(context.Background(), "QmAAA")
	require.NoError(t, err)
	require.Equal(t, []byte("file body"), rc.Body)
	require.Equal(t, "text/plain; charset=utf-8", rc.ContentType)
}

func TestFetchOverLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	g := newGateway(srv.URL, 4)
	_, err := g.Fetch(context.Background(), "QmAAA")
	require.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFetchUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := newGateway(srv.URL, 1<<20)
	_, err := g.Fetch(context.Background(), "QmAAA")

	var ue *domain.UpstreamStatusError
	require.True(t, errors.As(err, &ue))
	require.Equal(t, http.StatusBadGateway, ue.Status)
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", "4")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	g := newGateway(srv.URL, 1<<20)
	st, err := g.Stream(context.Background(), "QmAAA")
	require.NoError(t, err)
	defer st.Body.Close()

	require.Equal(t, "image/png", st.ContentType)
	require.Equal(t, int64(4), st.ContentLength)

	got, err := io.ReadAll(st.Body)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got)
}

func TestStreamDefaultsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// без Content-Type; стандартный сервер бы его угадал,
		// поэтому отключаем сниффинг заголовком-пустышкой
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("raw"))
	}))
	defer srv.Close()

	g := newGateway(srv.URL, 1<<20)
	st, err := g.Stream(context.Background(), "QmAAA")
	require.NoError(t, err)
	defer st.Body.Close()
	require.Equal(t, "application/octet-stream", st.ContentType)
}

func TestStreamTransportError(t *testing.T) {
	g := newGateway("http://127.0.0.1:1", 1<<20)
	_, err := g.Stream(context.Background(), "QmAAA")
	require.ErrorIs(t, err, domain.ErrUpstream)
}
