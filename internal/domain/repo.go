package domain

import (
	"context"
)

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	CreateUser(ctx context.Context, login string, passHash []byte) (User, error)
	UserByLogin(ctx context.Context, login string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
}

type UploadsRepo interface {
	// Вставка строго после успешного пина (CID уже известен).
	CreateUpload(ctx context.Context, u Upload) (Upload, error)

	// Без фильтра по владельцу — нужен download-пути, который различает
	// «нет записи» (404) и «чужая запись» (403).
	UploadByID(ctx context.Context, id UploadID) (Upload, error)

	// Владельческие выборки: чужая запись неотличима от несуществующей.
	UploadOwned(ctx context.Context, id UploadID, owner UserID) (Upload, error)
	UploadByCID(ctx context.Context, cid string, owner UserID) (Upload, error)

	// Сортировка: uploaded_at DESC; пустой список — не ошибка.
	UploadsList(ctx context.Context, owner UserID) ([]Upload, error)

	// Удаляет только метаданные; unpin у провайдера не выполняется.
	UploadDelete(ctx context.Context, id UploadID, owner UserID) error
}
