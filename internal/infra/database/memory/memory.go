// Package memory — эфемерная реализация репозиториев для тестов.
// Повторяет контракт postgres-реализации: ErrNotFound на пустых выборках,
// сортировка списка по времени загрузки (новые сверху).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EgorLis/ipfs-drive/internal/domain"
)

type Repo struct {
	mu      sync.RWMutex
	users   map[domain.UserID]domain.User
	logins  map[string]domain.UserID
	uploads map[domain.UploadID]domain.Upload
}

func New() *Repo {
	return &Repo{
		users:   make(map[domain.UserID]domain.User),
		logins:  make(map[string]domain.UserID),
		uploads: make(map[domain.UploadID]domain.Upload),
	}
}

var (
	_ domain.UsersRepo   = (*Repo)(nil)
	_ domain.UploadsRepo = (*Repo)(nil)
)

func (r *Repo) Close() {}

func (r *Repo) Ping(context.Context) error { return nil }

func (r *Repo) CreateUser(_ context.Context, login string, passHash []byte) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.logins[login]; taken {
		return domain.User{}, domain.ErrBadParams
	}
	u := domain.User{
		ID:        uuid.New(),
		Login:     login,
		PassHash:  append([]byte(nil), passHash...),
		CreatedAt: time.Now().UTC(),
	}
	r.users[u.ID] = u
	r.logins[login] = u.ID
	return u, nil
}

func (r *Repo) UserByLogin(_ context.Context, login string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.logins[login]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return r.users[id], nil
}

func (r *Repo) UserByID(_ context.Context, id domain.UserID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *Repo) CreateUpload(_ context.Context, u domain.Upload) (domain.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = uuid.New()
	if u.UploadedAt.IsZero() {
		u.UploadedAt = time.Now().UTC()
	}
	r.uploads[u.ID] = u
	return u, nil
}

func (r *Repo) UploadByID(_ context.Context, id domain.UploadID) (domain.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.uploads[id]
	if !ok {
		return domain.Upload{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *Repo) UploadOwned(_ context.Context, id domain.UploadID, owner domain.UserID) (domain.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.uploads[id]
	if !ok || u.OwnerID != owner {
		return domain.Upload{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *Repo) UploadByCID(_ context.Context, cid string, owner domain.UserID) (domain.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// при дубликатах CID берём самую свежую запись владельца, как и SQL-выборка
	var found domain.Upload
	ok := false
	for _, u := range r.uploads {
		if u.CID != cid || u.OwnerID != owner {
			continue
		}
		if !ok || u.UploadedAt.After(found.UploadedAt) {
			found, ok = u, true
		}
	}
	if !ok {
		return domain.Upload{}, domain.ErrNotFound
	}
	return found, nil
}

func (r *Repo) UploadsList(_ context.Context, owner domain.UserID) ([]domain.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Upload, 0)
	for _, u := range r.uploads {
		if u.OwnerID == owner {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (r *Repo) UploadDelete(_ context.Context, id domain.UploadID, owner domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[id]
	if !ok || u.OwnerID != owner {
		return domain.ErrNotFound
	}
	delete(r.uploads, id)
	return nil
}
