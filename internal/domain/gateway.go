package domain

import (
	"context"
	"io"
	"strings"
)

// Буферизованный ответ шлюза (только для preview-классификации).
type RemoteContent struct {
	Body        []byte
	ContentType string
}

// Потоковый ответ шлюза. Body обязан закрываться на любом пути выхода.
type RemoteStream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64 // -1, если апстрим не прислал Content-Length
}

// ContentGateway достаёт контент по CID с публичного шлюза.
type ContentGateway interface {
	// Fetch буферизует тело целиком (ограничено потолком размера).
	Fetch(ctx context.Context, cid string) (RemoteContent, error)
	// Stream отдаёт тело чанками, не буферизуя его в памяти.
	Stream(ctx context.Context, cid string) (RemoteStream, error)
	// URL строит публичную ссылку на контент.
	URL(cid string) string
}

// IsTextMIME — правило классификации preview: текстом считаем text/*
// либо json/javascript/xml в любом виде; остальное — бинарь.
func IsTextMIME(ct string) bool {
	if strings.HasPrefix(ct, "text/") {
		return true
	}
	for _, sub := range []string{"json", "javascript", "xml"} {
		if strings.Contains(ct, sub) {
			return true
		}
	}
	return false
}
