package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/ipfs-drive/internal/domain"
)

const uploadCols = "id, owner_id, cid, filename, content_type, uploaded_at, provider_response"

func (r *PGRepo) CreateUpload(ctx context.Context, u domain.Upload) (domain.Upload, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.uploads", r.schema)).
		Columns("owner_id", "cid", "filename", "content_type", "provider_response").
		Values(u.OwnerID, u.CID, u.Filename, u.ContentType, u.ProviderResponse).
		Suffix("RETURNING " + uploadCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateUpload", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Upload
	if err := row.Scan(
		&out.ID, &out.OwnerID, &out.CID, &out.Filename,
		&out.ContentType, &out.UploadedAt, &out.ProviderResponse,
	); err != nil {
		r.logger.Printf("CreateUpload scan error after %s: %v", time.Since(start), err)
		return domain.Upload{}, err
	}
	r.logger.Printf("CreateUpload ok in %s id=%s cid=%s", time.Since(start), out.ID, out.CID)
	return out, nil
}

func (r *PGRepo) UploadByID(ctx context.Context, id domain.UploadID) (domain.Upload, error) {
	return r.uploadOne(ctx, "UploadByID", sq.Eq{"id": id})
}

func (r *PGRepo) UploadOwned(ctx context.Context, id domain.UploadID, owner domain.UserID) (domain.Upload, error) {
	return r.uploadOne(ctx, "UploadOwned", sq.Eq{"id": id, "owner_id": owner})
}

func (r *PGRepo) UploadByCID(ctx context.Context, cid string, owner domain.UserID) (domain.Upload, error) {
	return r.uploadOne(ctx, "UploadByCID", sq.Eq{"cid": cid, "owner_id": owner})
}

func (r *PGRepo) uploadOne(ctx context.Context, op string, where sq.Eq) (domain.Upload, error) {
	// тот же CID может встречаться в нескольких записях — берём свежую
	q := r.qb().Select(uploadCols).
		From(fmt.Sprintf("%s.uploads", r.schema)).
		Where(where).
		OrderBy("uploaded_at DESC", "id DESC").
		Limit(1)

	sqlStr, args, _ := q.ToSql()
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var u domain.Upload
	if err := row.Scan(
		&u.ID, &u.OwnerID, &u.CID, &u.Filename,
		&u.ContentType, &u.UploadedAt, &u.ProviderResponse,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("%s not found in %s", op, time.Since(start))
			return domain.Upload{}, domain.ErrNotFound
		}
		r.logger.Printf("%s scan error after %s: %v", op, time.Since(start), err)
		return domain.Upload{}, err
	}
	r.logger.Printf("%s ok in %s id=%s", op, time.Since(start), u.ID)
	return u, nil
}

// Выдаёт загрузки пользователя, новые сверху.
func (r *PGRepo) UploadsList(ctx context.Context, owner domain.UserID) ([]domain.Upload, error) {
	q := r.qb().Select(uploadCols).
		From(fmt.Sprintf("%s.uploads", r.schema)).
		Where(sq.Eq{"owner_id": owner}).
		OrderBy("uploaded_at DESC", "id DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UploadsList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("UploadsList query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	res := make([]domain.Upload, 0)
	for rows.Next() {
		var u domain.Upload
		if err := rows.Scan(
			&u.ID, &u.OwnerID, &u.CID, &u.Filename,
			&u.ContentType, &u.UploadedAt, &u.ProviderResponse,
		); err != nil {
			r.logger.Printf("UploadsList scan error: %v", err)
			return nil, err
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("UploadsList rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("UploadsList ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

func (r *PGRepo) UploadDelete(ctx context.Context, id domain.UploadID, owner domain.UserID) error {
	q := r.qb().Delete(fmt.Sprintf("%s.uploads", r.schema)).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"owner_id": owner}})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("UploadDelete", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("UploadDelete exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("UploadDelete no rows affected in %s (upload not found or not owner)", time.Since(start))
		return domain.ErrNotFound
	}
	r.logger.Printf("UploadDelete ok in %s rows=%d", time.Since(start), tag.RowsAffected())
	return nil
}
