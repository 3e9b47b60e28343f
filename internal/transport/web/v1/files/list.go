package files

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/logx"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/ipfs-drive/internal/transport/web/v1"
)

type listResponse struct {
	Files []fileOut `json:"files"`
}

// List godoc
// @Summary     List own uploads
// @Description Загрузки владельца, новые сверху.
// @Tags        files
// @Produce     json
// @Success     200 {object} listResponse
// @Failure     401 {object} v1.ErrorBody
// @Router      /my_uploads [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "files.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	// кэш готового ответа
	ckey := domain.CacheKeyUploadsList(me.ID)
	if b, err := h.Cache.Get(r.Context(), ckey); err == nil && len(b) > 0 {
		logx.Info(h.Log, reqID, op, "cache hit", "user_id", me.ID)
		v1.WriteRawJSON(w, r, http.StatusOK, b)
		return
	}

	ups, err := h.Vault.List(r.Context(), me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	out := listResponse{Files: make([]fileOut, 0, len(ups))}
	for _, u := range ups {
		out.Files = append(out.Files, fileOut{
			ID:          u.ID.String(),
			CID:         u.CID,
			Filename:    u.Filename,
			ContentType: u.ContentType,
			UploadedAt:  isoTime(u.UploadedAt),
			GatewayURL:  h.Vault.GatewayURL(u.CID),
		})
	}

	if buf, err := json.Marshal(out); err == nil {
		_ = h.Cache.Set(r.Context(), ckey, buf, h.ListTTL)
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "count", len(out.Files))
	v1.WriteJSON(w, r, http.StatusOK, out)
}
