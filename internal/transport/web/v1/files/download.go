package files

import (
	"net/http"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/logx"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/ipfs-drive/internal/transport/web/v1"
)

// Download godoc
// @Summary     Download by upload id
// @Description Исторический контракт: чужая запись — 403, несуществующая — 404.
// @Tags        files
// @Produce     octet-stream
// @Param       id path string true "upload id"
// @Success     200 {file} []byte
// @Failure     401 {object} v1.ErrorBody
// @Failure     403 {object} v1.ErrorBody
// @Failure     404 {object} v1.ErrorBody
// @Failure     502 {object} v1.ErrorBody
// @Router      /download/{id} [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "files.download"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	id, err := idFromPath(r, "/download/")
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	up, st, err := h.Vault.Download(r.Context(), me.ID, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "download failed", err, "upload_id", id, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "upload_id", up.ID, "cid", up.CID)
	writeStream(w, st, attachment(up.Filename))
}

// DownloadByCID godoc
// @Summary     Download by CID
// @Description Чужой либо неизвестный CID неотличимы: всегда 404.
// @Tags        files
// @Produce     octet-stream
// @Param       cid path string true "content id"
// @Success     200 {file} []byte
// @Failure     401 {object} v1.ErrorBody
// @Failure     404 {object} v1.ErrorBody
// @Failure     502 {object} v1.ErrorBody
// @Router      /download_by_cid/{cid} [get]
func (h *Handler) DownloadByCID(w http.ResponseWriter, r *http.Request) {
	const op = "files.download_by_cid"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	cid := cidFromPath(r, "/download_by_cid/")
	if cid == "" {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	up, st, err := h.Vault.DownloadByCID(r.Context(), me.ID, cid)
	if err != nil {
		logx.Error(h.Log, reqID, op, "download failed", err, "cid", cid, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "upload_id", up.ID, "cid", up.CID)
	writeStream(w, st, attachment(up.Filename))
}
