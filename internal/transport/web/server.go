package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/ipfs-drive/internal/config"
	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/auth"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/files"
	"github.com/EgorLis/ipfs-drive/internal/transport/web/v1/health"
	"github.com/EgorLis/ipfs-drive/internal/vault"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, repos Repos, ad AuthDeps, vs *vault.Service, cache domain.Cache) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	authLog := log.New(logger.Writer(), logger.Prefix()+"[auth] ", logger.Flags())
	filesLog := log.New(logger.Writer(), logger.Prefix()+"[files] ", logger.Flags())

	healthHandler := &health.Handler{Log: healthLog, DB: repos.Users, Cache: cache}
	registerHandler := &auth.HandlerRegister{Log: authLog, Users: repos.Users, Hasher: ad.Hasher, Tokens: ad.Tokens}
	loginHandler := &auth.HandlerLogin{Log: authLog, Users: repos.Users, Hasher: ad.Hasher, Tokens: ad.Tokens}
	logoutHandler := &auth.HandlerLogout{Log: authLog, Tokens: ad.Tokens, Blacklist: ad.Blacklist}
	filesHandler := &files.Handler{Log: filesLog, Vault: vs, Cache: cache, ListTTL: 30}

	r := routerDeps{
		health:   healthHandler,
		register: registerHandler,
		login:    loginHandler,
		logout:   logoutHandler,
		files:    filesHandler,
		auth:     ad,
		maxBody:  cfg.MaxFileSize,
	}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(r, logger),
		ReadTimeout:       0, // пин файла может идти до 3 минут, стрим тела не ограничиваем
		WriteTimeout:      0,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
