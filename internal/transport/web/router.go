package web

import (
	"log"
	"net/http"

	_ "github.com/EgorLis/ipfs-drive/internal/docs"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/mw"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/auth"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/files"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/health"
	httpSwagger "github.com/swaggo/http-swagger"
)

type routerDeps struct {
	health   *health.Handler
	register *auth.HandlerRegister
	login    *auth.HandlerLogin
	logout   *auth.HandlerLogout
	files    *files.Handler
	auth     AuthDeps
	maxBody  int64
}

func newRouter(d routerDeps, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	guard := func(h http.HandlerFunc) http.HandlerFunc {
		deps := mw.AuthDeps{Tokens: d.auth.Tokens, Blacklist: d.auth.Blacklist}
		return mw.RequireAuth(deps, h).ServeHTTP
	}

	// health
	mux.HandleFunc("GET /v1/healthz", d.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", d.health.Readiness)

	// auth
	mux.HandleFunc("POST /api/register", d.register.Register)
	mux.HandleFunc("POST /api/auth", d.login.Login)
	mux.HandleFunc("DELETE /api/auth/{token}", d.logout.Logout)

	// files; запас к лимиту тела — на multipart-обвязку
	mux.HandleFunc("POST /upload", guard(limitBody(d.maxBody+(1<<20), d.files.Upload)))
	mux.HandleFunc("GET /my_uploads", guard(d.files.List))
	mux.HandleFunc("GET /download/{id}", guard(d.files.Download))
	mux.HandleFunc("GET /download_by_cid/{cid}", guard(d.files.DownloadByCID))
	mux.HandleFunc("GET /preview_file/{id}", guard(d.files.PreviewFile))
	mux.HandleFunc("GET /preview_content/{id}", guard(d.files.PreviewContent))
	mux.HandleFunc("DELETE /delete/{id}", guard(d.files.Delete))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
