package files

import (
	"net/http"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/logx"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/ipfs-drive/internal/transport/web/v1"
	"github.com/EgorLis/ipfs-drive/internal/vault"
)

// PreviewFile godoc
// @Summary     Stream file content inline
// @Description Отдаёт байты файла напрямую (для вкладки предпросмотра).
// @Tags        files
// @Produce     octet-stream
// @Param       id path string true "upload id"
// @Success     200 {file} []byte
// @Failure     401 {object} v1.ErrorBody
// @Failure     404 {object} v1.ErrorBody
// @Failure     502 {object} v1.ErrorBody
// @Router      /preview_file/{id} [get]
func (h *Handler) PreviewFile(w http.ResponseWriter, r *http.Request) {
	const op = "files.preview_file"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	id, err := idFromPath(r, "/preview_file/")
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	up, st, err := h.Vault.PreviewStream(r.Context(), me.ID, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "preview stream failed", err, "upload_id", id, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "upload_id", up.ID, "cid", up.CID)
	writeStream(w, st, "inline")
}

type previewContentResponse struct {
	Type        string `json:"type"`
	Content     string `json:"content,omitempty"`
	URL         string `json:"url,omitempty"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	CID         string `json:"cid"`
}

// PreviewContent godoc
// @Summary     Classified preview
// @Description Текстовый контент отдаётся телом; для бинарного — ссылка на /preview_file.
// @Tags        files
// @Produce     json
// @Param       id path string true "upload id"
// @Success     200 {object} previewContentResponse
// @Failure     401 {object} v1.ErrorBody
// @Failure     404 {object} v1.ErrorBody
// @Failure     502 {object} v1.ErrorBody
// @Router      /preview_content/{id} [get]
func (h *Handler) PreviewContent(w http.ResponseWriter, r *http.Request) {
	const op = "files.preview_content"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	id, err := idFromPath(r, "/preview_content/")
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	pv, err := h.Vault.Preview(r.Context(), me.ID, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "preview failed", err, "upload_id", id, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	resp := previewContentResponse{
		Type:        string(pv.Kind),
		Filename:    pv.Upload.Filename,
		ContentType: pv.MIME,
		CID:         pv.Upload.CID,
	}
	if pv.Kind == vault.PreviewText {
		resp.Content = pv.Content
	} else {
		// байты заберёт второй запрос, стримом
		resp.URL = "/preview_file/" + pv.Upload.ID.String()
	}

	logx.Info(h.Log, reqID, op, "ok", "upload_id", pv.Upload.ID, "type", resp.Type)
	v1.WriteJSON(w, r, http.StatusOK, resp)
}
