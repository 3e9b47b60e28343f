package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID
type UploadID = uuid.UUID

// Пользователь
type User struct {
	ID        UserID    `json:"id"`
	Login     string    `json:"login"`
	PassHash  []byte    `json:"-"` // никогда не отдаём наружу
	CreatedAt time.Time `json:"created_at"`
}

// Запись о загрузке (метаданные; сами байты живут у pinning-провайдера)
type Upload struct {
	ID          UploadID  `json:"id"`
	OwnerID     UserID    `json:"-"`
	CID         string    `json:"cid"` // контентный идентификатор от провайдера
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`

	// Сырой ответ pinning-сервиса; храним для аудита, после записи не парсим.
	ProviderResponse []byte `json:"-"`
}
