package pinata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/EgorLis/ipfs-drive/internal/domain"
)

// Таймаут с запасом под большие файлы.
const pinTimeout = 180 * time.Second

type Config struct {
	PinURL string

	// Режимы авторизации: JWT (bearer) либо пара key/secret.
	// Пусто и там и там — шлём без авторизации (деградированный режим).
	JWT       string
	APIKey    string
	APISecret string

	// Потолок размера файла в байтах; проверяется до сетевого вызова.
	MaxBytes int64
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger
}

var _ domain.Pinner = (*Client)(nil)

func New(cfg Config, logger *log.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: pinTimeout},
		logger: logger,
	}
}

// Pin загружает файл на pinning-сервис одним multipart-запросом.
// Ретраев нет: двойная отправка меняла бы наблюдаемое поведение.
func (c *Client) Pin(ctx context.Context, file io.ReadSeeker, filename, mime string) (domain.PinResult, error) {
	size, err := measure(file)
	if err != nil {
		return domain.PinResult{}, fmt.Errorf("measure stream: %w", err)
	}
	if size > c.cfg.MaxBytes {
		c.logger.Printf("reject %q: %d bytes over limit %d", filename, size, c.cfg.MaxBytes)
		return domain.PinResult{}, domain.ErrFileTooLarge
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	// пишем multipart в пайп, чтобы не буферизовать файл целиком
	go func() {
		part, err := mw.CreatePart(fileHeader(filename, mime))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PinURL, pr)
	if err != nil {
		return domain.PinResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	c.logger.Printf("pinning %q (%d bytes) to %s", filename, size, c.cfg.PinURL)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("pin transport error after %s: %v", time.Since(start), err)
		return domain.PinResult{}, fmt.Errorf("pin request: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.PinResult{}, fmt.Errorf("pin read response: %w: %w", domain.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Printf("pin failed after %s: status=%d body=%q", time.Since(start), resp.StatusCode, truncate(raw))
		return domain.PinResult{}, &domain.UpstreamStatusError{Status: resp.StatusCode}
	}

	cid, err := extractCID(raw)
	if err != nil {
		c.logger.Printf("pin response without CID after %s: %q", time.Since(start), truncate(raw))
		return domain.PinResult{}, err
	}

	c.logger.Printf("pin ok in %s cid=%s", time.Since(start), cid)
	return domain.PinResult{CID: cid, Raw: raw}, nil
}

func (c *Client) authorize(req *http.Request) {
	switch {
	case c.cfg.JWT != "":
		req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)
	case c.cfg.APIKey != "" && c.cfg.APISecret != "":
		req.Header.Set("pinata_api_key", c.cfg.APIKey)
		req.Header.Set("pinata_secret_api_key", c.cfg.APISecret)
	default:
		c.logger.Println("no pinning credentials configured, sending unauthenticated")
	}
}

// measure возвращает длину потока и ставит позицию обратно на 0.
func measure(rs io.ReadSeeker) (int64, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}

// Провайдеры расходятся в регистре поля с CID; принимаем явный список
// вариантов вместо динамического поиска по ключам.
var cidFields = []string{"IpfsHash", "ipfsHash"}

func extractCID(raw []byte) (string, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("pin response parse: %w: %w", domain.ErrMissingCID, err)
	}
	for _, f := range cidFields {
		v, ok := body[f]
		if !ok {
			continue
		}
		var cid string
		if err := json.Unmarshal(v, &cid); err == nil && cid != "" {
			return cid, nil
		}
	}
	return "", domain.ErrMissingCID
}

func fileHeader(filename, mime string) textproto.MIMEHeader {
	if mime == "" {
		mime = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", mime)
	return h
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func truncate(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
