package ipfs

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/EgorLis/ipfs-drive/internal/domain"
)

const (
	// Весь обмен целиком — только для буферизованного Fetch.
	fetchTimeout = 30 * time.Second
	// Для Stream ограничиваем коннект и ожидание заголовков; само тело
	// не ограничиваем — большой файл легитимно льётся дольше любого
	// разумного дедлайна.
	headerTimeout = 30 * time.Second
)

type Config struct {
	// База шлюза, например https://gateway.pinata.cloud/ipfs
	Base string

	// Потолок для буферизованного Fetch: размер апстрима контролирует
	// провайдер, без ограничения это вектор исчерпания памяти.
	MaxBytes int64
}

type Gateway struct {
	cfg    Config
	fetch  *http.Client // дедлайн на весь обмен
	stream *http.Client // дедлайн только до заголовков
	logger *log.Logger
}

var _ domain.ContentGateway = (*Gateway)(nil)

func New(cfg Config, logger *log.Logger) *Gateway {
	return &Gateway{
		cfg:    cfg,
		fetch:  &http.Client{Timeout: fetchTimeout},
		stream: streamClient(headerTimeout),
		logger: logger,
	}
}

// streamClient: Client.Timeout обрывал бы и чтение тела, поэтому стримовый
// клиент живёт без него — таймауты стоят на dial/TLS/заголовках транспорта.
func streamClient(d time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: d}).DialContext,
			TLSHandshakeTimeout:   d,
			ResponseHeaderTimeout: d,
		},
	}
}

func (g *Gateway) URL(cid string) string {
	return strings.TrimRight(g.cfg.Base, "/") + "/" + cid
}

// Fetch буферизует ответ целиком. Используется только для preview,
// где контент надо классифицировать как текст или бинарь.
func (g *Gateway) Fetch(ctx context.Context, cid string) (domain.RemoteContent, error) {
	resp, err := g.get(ctx, g.fetch, cid)
	if err != nil {
		return domain.RemoteContent{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.cfg.MaxBytes+1))
	if err != nil {
		return domain.RemoteContent{}, fmt.Errorf("gateway read: %w: %w", domain.ErrUpstream, err)
	}
	if int64(len(body)) > g.cfg.MaxBytes {
		g.logger.Printf("fetch %s: body over limit %d", cid, g.cfg.MaxBytes)
		return domain.RemoteContent{}, domain.ErrFileTooLarge
	}

	return domain.RemoteContent{
		Body:        body,
		ContentType: contentType(resp),
	}, nil
}

// Stream отдаёт тело чанками. Закрытие Body — обязанность вызывающего,
// на любом пути выхода (включая отвал клиента).
func (g *Gateway) Stream(ctx context.Context, cid string) (domain.RemoteStream, error) {
	resp, err := g.get(ctx, g.stream, cid)
	if err != nil {
		return domain.RemoteStream{}, err
	}

	return domain.RemoteStream{
		Body:          resp.Body,
		ContentType:   contentType(resp),
		ContentLength: resp.ContentLength,
	}, nil
}

func (g *Gateway) get(ctx context.Context, c *http.Client, cid string) (*http.Response, error) {
	url := g.URL(cid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.Do(req)
	if err != nil {
		g.logger.Printf("GET %s transport error after %s: %v", url, time.Since(start), err)
		return nil, fmt.Errorf("gateway request: %w: %w", domain.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		g.logger.Printf("GET %s: status=%d in %s", url, resp.StatusCode, time.Since(start))
		return nil, &domain.UpstreamStatusError{Status: resp.StatusCode}
	}
	g.logger.Printf("GET %s: ok in %s", url, time.Since(start))
	return resp, nil
}

func contentType(resp *http.Response) string {
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
