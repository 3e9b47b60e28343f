package files

import (
	"net/http"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/logx"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/ipfs-drive/internal/transport/web/v1"
)

type deleteResponse struct {
	Success bool `json:"success"`
}

// Delete godoc
// @Summary     Delete upload record
// @Description Удаляет только метаданные; контент остаётся запиненным у провайдера.
// @Tags        files
// @Produce     json
// @Param       id path string true "upload id"
// @Success     200 {object} deleteResponse
// @Failure     401 {object} v1.ErrorBody
// @Failure     404 {object} v1.ErrorBody
// @Router      /delete/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "files.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	id, err := idFromPath(r, "/delete/")
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	if err := h.Vault.Delete(r.Context(), me.ID, id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "upload_id", id, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	// инвалидация кэша списка владельца
	_ = h.Cache.Del(r.Context(), domain.CacheKeyUploadsList(me.ID))

	logx.Info(h.Log, reqID, op, "ok", "upload_id", id, "user_id", me.ID)
	v1.WriteJSON(w, r, http.StatusOK, deleteResponse{Success: true})
}
