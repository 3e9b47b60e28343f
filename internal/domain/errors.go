package domain

import (
	"errors"
	"fmt"
)

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrFileTooLarge     = errors.New("file_too_large")     // 400 (до любого сетевого вызова)
	ErrUnauth           = errors.New("unauthorized")       // 401
	ErrForbidden        = errors.New("forbidden")          // 403 (только download по id)
	ErrNotFound         = errors.New("not_found")          // 404 (чужой id неотличим от несуществующего)
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUpstream         = errors.New("upstream_failure")   // 502 (pinning/gateway)
	ErrMissingCID       = errors.New("missing_cid")        // 502: 2xx от провайдера, но без CID
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Пин прошёл, а вставка метаданных — нет: контент «осиротел» у провайдера.
// Не чиним автоматически, только отдаём оператору (лог + отдельная ошибка).
var ErrOrphanedPin = errors.New("orphaned_pin")

// UpstreamStatusError несёт код ответа шлюза/провайдера для диагностики.
type UpstreamStatusError struct {
	Status int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

func (e *UpstreamStatusError) Unwrap() error { return ErrUpstream }
