package files

import (
	"net/http"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/logx"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/ipfs-drive/internal/transport/web/v1"
)

type uploadResponse struct {
	CID        string `json:"cid"`
	GatewayURL string `json:"gatewayUrl"`
	ID         string `json:"id"`
	Filename   string `json:"filename"`
}

// Upload godoc
// @Summary     Upload file to the pinning service
// @Description Принимает multipart-файл, пинит у провайдера и пишет метаданные.
// @Tags        files
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "файл"
// @Success     200 {object} uploadResponse
// @Failure     400 {object} v1.ErrorBody
// @Failure     401 {object} v1.ErrorBody
// @Failure     502 {object} v1.ErrorBody
// @Router      /upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "files.upload"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "unauthorized", domain.ErrUnauth)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		v1.WriteError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "form file", err)
		v1.WriteError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if hdr.Filename == "" {
		logx.Error(h.Log, reqID, op, "no filename", domain.ErrBadParams)
		v1.WriteError(w, r, http.StatusBadRequest, "no filename")
		return
	}
	mime := hdr.Header.Get("Content-Type")

	up, err := h.Vault.Upload(r.Context(), me.ID, file, hdr.Filename, mime)
	if err != nil {
		logx.Error(h.Log, reqID, op, "upload failed", err, "user_id", me.ID, "filename", hdr.Filename)
		v1.WriteDomainError(w, r, err)
		return
	}

	// инвалидация кэша списка владельца
	_ = h.Cache.Del(r.Context(), domain.CacheKeyUploadsList(me.ID))

	logx.Info(h.Log, reqID, op, "ok", "upload_id", up.ID, "cid", up.CID, "user_id", me.ID)
	v1.WriteJSON(w, r, http.StatusOK, uploadResponse{
		CID:        up.CID,
		GatewayURL: h.Vault.GatewayURL(up.CID),
		ID:         up.ID.String(),
		Filename:   up.Filename,
	})
}
