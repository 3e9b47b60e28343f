package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/mw"
)

// Стабильная форма ошибки наружу: {error, detail?}
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// MapDomainError решает HTTP-статус и тело ошибки.
// Никакая ошибка не уходит клиенту без трансляции в эту форму.
func MapDomainError(err error) (int, ErrorBody) {
	var ue *domain.UpstreamStatusError

	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, ErrorBody{Error: "file too large"}
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, ErrorBody{Error: "bad params"}
	case errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, ErrorBody{Error: "authentication required"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrorBody{Error: "forbidden: not owner"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "file not found"}
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, ErrorBody{Error: "method not allowed"}
	case errors.Is(err, domain.ErrOrphanedPin):
		// пин прошёл, метаданные не записались: это наша проблема, не апстрима
		return http.StatusInternalServerError, ErrorBody{Error: "upload failed", Detail: "pinned but not persisted"}
	case errors.As(err, &ue):
		return http.StatusBadGateway, ErrorBody{Error: "upstream error", Detail: "status " + strconv.Itoa(ue.Status)}
	case errors.Is(err, domain.ErrMissingCID):
		return http.StatusBadGateway, ErrorBody{Error: "upstream error", Detail: "no CID in provider response"}
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, ErrorBody{Error: "upstream error"}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: "unexpected"}
	}
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRawJSON отдаёт заранее сериализованное тело (кэш-хиты) с теми же
// заголовками, что и WriteJSON.
func WriteRawJSON(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, errText string) {
	WriteJSON(w, r, status, ErrorBody{Error: errText})
}

func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := MapDomainError(err)
	WriteJSON(w, r, status, body)
}
