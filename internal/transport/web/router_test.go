package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/ipfs-drive/internal/auth/blacklist"
	"github.com/EgorLis/ipfs-drive/internal/auth/password"
	"github.com/EgorLis/ipfs-drive/internal/auth/token"
	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/infra/database/memory"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/auth"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/files"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/health"
	"github.com/EgorLis/ipfs-drive/internal/vault"
)

// memCache — domain.Cache на map, без TTL (тестам истечение не нужно).
type memCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemCache() *memCache { return &memCache{m: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[key], nil
}

func (c *memCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = val
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}

func (c *memCache) SetNX(_ context.Context, key string, val []byte, _ int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[key]; ok {
		return false, nil
	}
	c.m[key] = val
	return true, nil
}

func (c *memCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.m[key]
	return ok, nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close()                     {}

type stubPinner struct {
	mu    sync.Mutex
	calls int
	next  string // CID следующего пина
	err   error
}

func (p *stubPinner) Pin(_ context.Context, file io.ReadSeeker, _, _ string) (domain.PinResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return domain.PinResult{}, p.err
	}
	_, _ = io.Copy(io.Discard, file)
	return domain.PinResult{CID: p.next, Raw: []byte(`{"IpfsHash":"` + p.next + `"}`)}, nil
}

type stubGateway struct {
	mu      sync.Mutex
	content map[string][]byte
	ctypes  map[string]string
}

func newStubGateway() *stubGateway {
	return &stubGateway{content: make(map[string][]byte), ctypes: make(map[string]string)}
}

func (g *stubGateway) put(cid string, body []byte, ctype string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.content[cid] = body
	g.ctypes[cid] = ctype
}

func (g *stubGateway) Fetch(_ context.Context, cid string) (domain.RemoteContent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.content[cid]
	if !ok {
		return domain.RemoteContent{}, &domain.UpstreamStatusError{Status: 404}
	}
	return domain.RemoteContent{Body: b, ContentType: g.ctypes[cid]}, nil
}

func (g *stubGateway) Stream(_ context.Context, cid string) (domain.RemoteStream, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.content[cid]
	if !ok {
		return domain.RemoteStream{}, &domain.UpstreamStatusError{Status: 404}
	}
	return domain.RemoteStream{
		Body:          io.NopCloser(bytes.NewReader(b)),
		ContentType:   g.ctypes[cid],
		ContentLength: int64(len(b)),
	}, nil
}

func (g *stubGateway) URL(cid string) string { return "https://gw.test/ipfs/" + cid }

type testEnv struct {
	handler http.Handler
	repo    *memory.Repo
	pinner  *stubPinner
	gateway *stubGateway
	cache   *memCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	discard := log.New(io.Discard, "", 0)

	repo := memory.New()
	cache := newMemCache()
	pinner := &stubPinner{next: "QmDEFAULT"}
	gw := newStubGateway()

	vs := vault.New(discard, repo, pinner, gw, 1<<20)

	hasher := password.NewDefault()
	tm := token.New("test-secret", "ipfs-drive-test", time.Hour)
	bl := blacklist.NewStore(cache)
	ad := AuthDeps{Hasher: hasher, Tokens: tm, Blacklist: bl}

	d := routerDeps{
		health:   &health.Handler{Log: discard, DB: repo, Cache: cache},
		register: &auth.HandlerRegister{Log: discard, Users: repo, Hasher: hasher, Tokens: tm},
		login:    &auth.HandlerLogin{Log: discard, Users: repo, Hasher: hasher, Tokens: tm},
		logout:   &auth.HandlerLogout{Log: discard, Tokens: tm, Blacklist: bl},
		files:    &files.Handler{Log: discard, Vault: vs, Cache: cache, ListTTL: 30},
		auth:     ad,
		maxBody:  1 << 20,
	}

	return &testEnv{
		handler: newRouter(d, discard),
		repo:    repo,
		pinner:  pinner,
		gateway: gw,
		cache:   cache,
	}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, login string) string {
	t.Helper()
	body := `{"login":"` + login + `","pswd":"Passw0rd1"}`
	req := httptest.NewRequest("POST", "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := e.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Login string `json:"login"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, login, resp.Login)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// upload через multipart; CID задаётся стабом пиннера
func (e *testEnv) upload(t *testing.T, tok, filename, contents, ctype, cid string) string {
	t.Helper()
	e.pinner.mu.Lock()
	e.pinner.next = cid
	e.pinner.mu.Unlock()
	e.gateway.put(cid, []byte(contents), ctype)

	body, formCT := multipartFile(t, filename, contents, ctype)
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", formCT)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := e.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		CID        string `json:"cid"`
		GatewayURL string `json:"gatewayUrl"`
		ID         string `json:"id"`
		Filename   string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, cid, resp.CID)
	require.Equal(t, "https://gw.test/ipfs/"+cid, resp.GatewayURL)
	require.Equal(t, filename, resp.Filename)
	return resp.ID
}

func multipartFile(t *testing.T, filename, contents, ctype string) (io.Reader, string) {
	t.Helper()
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if ctype != "" {
		h.Set("Content-Type", ctype)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &b, mw.FormDataContentType()
}

func authedGet(tok, path string) *http.Request {
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func TestHealthProbes(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, httptest.NewRequest("GET", "/v1/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, httptest.NewRequest("GET", "/v1/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	e := newTestEnv(t)

	for _, row := range []struct {
		description string
		body        string
		status      int
	}{
		{
			description: "valid credentials",
			body:        `{"login":"alice","pswd":"Passw0rd1"}`,
			status:      http.StatusOK,
		},
		{
			description: "duplicate login",
			body:        `{"login":"alice","pswd":"Passw0rd1"}`,
			status:      http.StatusBadRequest,
		},
		{
			description: "short login",
			body:        `{"login":"ab","pswd":"Passw0rd1"}`,
			status:      http.StatusBadRequest,
		},
		{
			description: "weak password",
			body:        `{"login":"bob42","pswd":"password"}`,
			status:      http.StatusBadRequest,
		},
	} {
		t.Run(row.description, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/register", strings.NewReader(row.body))
			req.Header.Set("Content-Type", "application/json")
			rec := e.do(t, req)
			require.Equal(t, row.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLoginAndLogout(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice")

	// неверный пароль
	req := httptest.NewRequest("POST", "/api/auth", strings.NewReader(`{"login":"alice","pswd":"Wrong0pswd"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := e.do(t, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// верный пароль
	req = httptest.NewRequest("POST", "/api/auth", strings.NewReader(`{"login":"alice","pswd":"Passw0rd1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = e.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// токен работает
	rec = e.do(t, authedGet(resp.Token, "/my_uploads"))
	require.Equal(t, http.StatusOK, rec.Code)

	// logout отзывает его
	rec = e.do(t, httptest.NewRequest("DELETE", "/api/auth/"+resp.Token, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, authedGet(resp.Token, "/my_uploads"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadRequiresAuth(t *testing.T) {
	e := newTestEnv(t)

	body, ct := multipartFile(t, "a.txt", "data", "text/plain")
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := e.do(t, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, e.pinner.calls)
}

func TestUploadNoFile(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register(t, "alice")

	var b bytes.Buffer
	mw := multipart.NewWriter(&b)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/upload", &b)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := e.do(t, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "no file provided", body.Error)
}

func TestUploadPinFailure(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register(t, "alice")
	e.pinner.err = &domain.UpstreamStatusError{Status: 500}

	body, ct := multipartFile(t, "a.txt", "data", "text/plain")
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := e.do(t, req)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	// записи нет
	rec = e.do(t, authedGet(tok, "/my_uploads"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"files":[]`)
}

func TestListNewestFirst(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register(t, "alice")

	e.upload(t, tok, "first.txt", "1", "text/plain", "Qm1")
	e.upload(t, tok, "second.txt", "2", "text/plain", "Qm2")

	rec := e.do(t, authedGet(tok, "/my_uploads"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Files []struct {
			CID      string `json:"cid"`
			Filename string `json:"filename"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 2)
	require.Equal(t, "Qm2", resp.Files[0].CID)
	require.Equal(t, "Qm1", resp.Files[1].CID)
}

func TestDownloadOwnership(t *testing.T) {
	e := newTestEnv(t)
	aliceTok := e.register(t, "alice")
	bobTok := e.register(t, "bobby")

	id := e.upload(t, aliceTok, "secret.txt", "top secret", "text/plain", "QmSEC")

	// владелец получает байты с attachment-диспозицией
	rec := e.do(t, authedGet(aliceTok, "/download/"+id))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "top secret", rec.Body.String())
	require.Equal(t, `attachment; filename="secret.txt"`, rec.Header().Get("Content-Disposition"))

	// чужой id — forbidden, несуществующий — not found
	rec = e.do(t, authedGet(bobTok, "/download/"+id))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, authedGet(bobTok, "/download/"+uuid.NewString()))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// по CID чужое и несуществующее неотличимы
	rec = e.do(t, authedGet(bobTok, "/download_by_cid/QmSEC"))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, authedGet(bobTok, "/download_by_cid/QmNOPE"))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, authedGet(aliceTok, "/download_by_cid/QmSEC"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "top secret", rec.Body.String())
}

func TestPreviewContent(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register(t, "alice")

	textID := e.upload(t, tok, "notes.txt", "hello world", "text/plain", "QmTXT")
	binID := e.upload(t, tok, "pic.png", "\x89PNG", "image/png", "QmPNG")

	rec := e.do(t, authedGet(tok, "/preview_content/"+textID))
	require.Equal(t, http.StatusOK, rec.Code)

	var text struct {
		Type        string `json:"type"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		CID         string `json:"cid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &text))
	require.Equal(t, "text", text.Type)
	require.Equal(t, "hello world", text.Content)
	require.Empty(t, text.URL)
	require.Equal(t, "notes.txt", text.Filename)
	require.Equal(t, "QmTXT", text.CID)

	rec = e.do(t, authedGet(tok, "/preview_content/"+binID))
	require.Equal(t, http.StatusOK, rec.Code)

	var bin struct {
		Type    string `json:"type"`
		Content string `json:"content"`
		URL     string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bin))
	require.Equal(t, "binary", bin.Type)
	require.Empty(t, bin.Content)
	require.Equal(t, "/preview_file/"+binID, bin.URL)
}

func TestPreviewFileInline(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register(t, "alice")
	id := e.upload(t, tok, "pic.png", "\x89PNG", "image/png", "QmPNG")

	rec := e.do(t, authedGet(tok, "/preview_file/"+id))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "inline", rec.Header().Get("Content-Disposition"))
	require.Equal(t, "\x89PNG", rec.Body.String())
}

func TestDeleteRemovesOnlyMetadata(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register(t, "alice")
	id := e.upload(t, tok, "a.txt", "data", "text/plain", "QmDEL")
	pins := e.pinner.calls

	req := httptest.NewRequest("DELETE", "/delete/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := e.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true}`, rec.Body.String())

	// запись исчезла, повторное удаление — 404
	rec = e.do(t, authedGet(tok, "/download/"+id))
	require.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest("DELETE", "/delete/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = e.do(t, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// провайдера при удалении не трогали
	require.Equal(t, pins, e.pinner.calls)
}

func TestListCacheInvalidation(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register(t, "alice")

	e.upload(t, tok, "a.txt", "1", "text/plain", "QmA")

	// прогреваем кэш
	rec := e.do(t, authedGet(tok, "/my_uploads"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "QmA")

	// новая загрузка сбрасывает кэш, список её видит
	e.upload(t, tok, "b.txt", "2", "text/plain", "QmB")
	rec = e.do(t, authedGet(tok, "/my_uploads"))
	require.Contains(t, rec.Body.String(), "QmB")
}

func TestTokenViaQueryParam(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register(t, "alice")
	id := e.upload(t, tok, "a.txt", "data", "text/plain", "QmQ")

	// скачивание по ссылке без заголовка
	rec := e.do(t, httptest.NewRequest("GET", "/download/"+id+"?token="+tok, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "data", rec.Body.String())
}
