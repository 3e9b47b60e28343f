package domain

import (
	"context"
	"io"
)

// Результат успешного пина: CID + сырой ответ провайдера (для аудита).
type PinResult struct {
	CID string
	Raw []byte
}

// Pinner отправляет байты pinning-сервису.
// Поток обязан быть seekable: размер меряем Seek-ом до конца и
// возвращаемся на начало перед передачей. Частично вычитанный поток —
// ошибка вызывающего.
type Pinner interface {
	Pin(ctx context.Context, file io.ReadSeeker, filename, mime string) (PinResult, error)
}
