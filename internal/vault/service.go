// Package vault — оркестратор загрузок: валидация входа, пин у провайдера,
// атомарная запись метаданных и владельческий доступ на чтение/удаление.
// Владелец всегда передаётся явным параметром, никакого амбиентного состояния.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/EgorLis/ipfs-drive/internal/domain"
)

type Service struct {
	logger  *log.Logger
	uploads domain.UploadsRepo
	pinner  domain.Pinner
	gateway domain.ContentGateway

	// Потолок размера: проверяем до обращения к pinning-клиенту.
	maxBytes int64
}

func New(logger *log.Logger, uploads domain.UploadsRepo, pinner domain.Pinner, gateway domain.ContentGateway, maxBytes int64) *Service {
	return &Service{
		logger:   logger,
		uploads:  uploads,
		pinner:   pinner,
		gateway:  gateway,
		maxBytes: maxBytes,
	}
}

// Upload: Received → Validated → Pinned → Persisted.
// Запись метаданных появляется только после подтверждённого CID;
// упавшая вставка после успешного пина — отдельная ошибка ErrOrphanedPin.
func (s *Service) Upload(ctx context.Context, owner domain.UserID, file io.ReadSeeker, filename, mime string) (domain.Upload, error) {
	if filename == "" {
		return domain.Upload{}, fmt.Errorf("%w: empty filename", domain.ErrBadParams)
	}
	size, err := streamSize(file)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("%w: unreadable stream", domain.ErrBadParams)
	}
	if size == 0 {
		return domain.Upload{}, fmt.Errorf("%w: empty file", domain.ErrBadParams)
	}
	if size > s.maxBytes {
		return domain.Upload{}, domain.ErrFileTooLarge
	}
	if mime == "" {
		mime = "application/octet-stream"
	}

	res, err := s.pinner.Pin(ctx, file, filename, mime)
	if err != nil {
		s.logger.Printf("upload pin failed owner=%s file=%q: %v", owner, filename, err)
		return domain.Upload{}, err
	}

	up, err := s.uploads.CreateUpload(ctx, domain.Upload{
		OwnerID:          owner,
		CID:              res.CID,
		Filename:         filename,
		ContentType:      mime,
		ProviderResponse: res.Raw,
	})
	if err != nil {
		// Контент уже запинен, локальной записи нет. Не откатываем и не
		// ретраим — оставляем оператору CID для ручной сверки.
		s.logger.Printf("ORPHANED PIN cid=%s owner=%s file=%q: %v", res.CID, owner, filename, err)
		return domain.Upload{}, fmt.Errorf("%w: cid=%s: %w", domain.ErrOrphanedPin, res.CID, err)
	}

	s.logger.Printf("upload ok id=%s cid=%s owner=%s file=%q size=%d", up.ID, up.CID, owner, filename, size)
	return up, nil
}

// List возвращает загрузки владельца, новые сверху; пустой список — не ошибка.
func (s *Service) List(ctx context.Context, owner domain.UserID) ([]domain.Upload, error) {
	return s.uploads.UploadsList(ctx, owner)
}

// GetOwned: чужая запись неотличима от несуществующей.
func (s *Service) GetOwned(ctx context.Context, owner domain.UserID, id domain.UploadID) (domain.Upload, error) {
	return s.uploads.UploadOwned(ctx, id, owner)
}

type PreviewKind string

const (
	PreviewText   PreviewKind = "text"
	PreviewBinary PreviewKind = "binary"
)

type Preview struct {
	Upload  domain.Upload
	Kind    PreviewKind
	Content string // только для Kind == PreviewText
	MIME    string
}

// Preview буферизует контент через шлюз и классифицирует его.
// Для бинарного контента тело не отдаётся: второй запрос заберёт его стримом.
func (s *Service) Preview(ctx context.Context, owner domain.UserID, id domain.UploadID) (Preview, error) {
	up, err := s.uploads.UploadOwned(ctx, id, owner)
	if err != nil {
		return Preview{}, err
	}

	rc, err := s.gateway.Fetch(ctx, up.CID)
	if err != nil {
		return Preview{}, err
	}

	// MIME из метаданных приоритетнее ответа шлюза
	mime := up.ContentType
	if mime == "" {
		mime = rc.ContentType
	}

	if domain.IsTextMIME(mime) {
		return Preview{Upload: up, Kind: PreviewText, Content: string(rc.Body), MIME: mime}, nil
	}
	return Preview{Upload: up, Kind: PreviewBinary, MIME: mime}, nil
}

// PreviewStream — владельческий стрим для inline-отдачи (/preview_file).
func (s *Service) PreviewStream(ctx context.Context, owner domain.UserID, id domain.UploadID) (domain.Upload, domain.RemoteStream, error) {
	up, err := s.uploads.UploadOwned(ctx, id, owner)
	if err != nil {
		return domain.Upload{}, domain.RemoteStream{}, err
	}
	st, err := s.gateway.Stream(ctx, up.CID)
	if err != nil {
		return domain.Upload{}, domain.RemoteStream{}, err
	}
	return up, st, nil
}

// Download по id. Исторически этот путь различает «нет записи» (not found)
// и «чужая запись» (forbidden); сохраняем асимметрию.
func (s *Service) Download(ctx context.Context, owner domain.UserID, id domain.UploadID) (domain.Upload, domain.RemoteStream, error) {
	up, err := s.uploads.UploadByID(ctx, id)
	if err != nil {
		return domain.Upload{}, domain.RemoteStream{}, err
	}
	if up.OwnerID != owner {
		return domain.Upload{}, domain.RemoteStream{}, domain.ErrForbidden
	}
	st, err := s.gateway.Stream(ctx, up.CID)
	if err != nil {
		return domain.Upload{}, domain.RemoteStream{}, err
	}
	return up, st, nil
}

// DownloadByCID: несовпадение владельца неотличимо от отсутствия записи.
func (s *Service) DownloadByCID(ctx context.Context, owner domain.UserID, cid string) (domain.Upload, domain.RemoteStream, error) {
	up, err := s.uploads.UploadByCID(ctx, cid, owner)
	if err != nil {
		return domain.Upload{}, domain.RemoteStream{}, err
	}
	st, err := s.gateway.Stream(ctx, up.CID)
	if err != nil {
		return domain.Upload{}, domain.RemoteStream{}, err
	}
	return up, st, nil
}

// Delete удаляет только метаданные. Unpin у провайдера сознательно не
// вызывается; CID пишем в лог, чтобы оператор мог вычистить вручную.
func (s *Service) Delete(ctx context.Context, owner domain.UserID, id domain.UploadID) error {
	up, err := s.uploads.UploadOwned(ctx, id, owner)
	if err != nil {
		return err
	}
	if err := s.uploads.UploadDelete(ctx, id, owner); err != nil {
		return err
	}
	s.logger.Printf("deleted upload id=%s cid=%s owner=%s (content stays pinned)", up.ID, up.CID, owner)
	return nil
}

// GatewayURL строит публичную ссылку на контент (для ответа upload и списка).
func (s *Service) GatewayURL(cid string) string {
	return s.gateway.URL(cid)
}

func streamSize(rs io.ReadSeeker) (int64, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}

// IsNotFound — шорткат для обработчиков.
func IsNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
