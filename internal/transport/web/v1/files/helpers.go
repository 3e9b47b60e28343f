package files

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EgorLis/ipfs-drive/internal/domain"
)

// id из path-параметра: хвост после префикса, с PathUnescape
func idFromPath(r *http.Request, prefix string) (domain.UploadID, error) {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	raw, _ = url.PathUnescape(raw)
	return uuid.Parse(raw)
}

func cidFromPath(r *http.Request, prefix string) string {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	raw, _ = url.PathUnescape(raw)
	return raw
}

// writeStream проксирует тело шлюза клиенту. Body закрывается здесь же —
// это единственный выход потока наружу; отвал клиента прерывает io.Copy,
// defer гарантирует освобождение соединения с апстримом.
func writeStream(w http.ResponseWriter, st domain.RemoteStream, disposition string) {
	defer st.Body.Close()

	w.Header().Set("Content-Type", st.ContentType)
	if st.ContentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(st.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, st.Body)
}

func attachment(filename string) string {
	return `attachment; filename="` + strings.ReplaceAll(filename, `"`, `\"`) + `"`
}

type fileOut struct {
	ID          string `json:"id"`
	CID         string `json:"cid"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	UploadedAt  string `json:"uploaded_at"`
	GatewayURL  string `json:"gateway_url"`
}

func isoTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }
