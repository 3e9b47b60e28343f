package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EgorLis/ipfs-drive/internal/auth/blacklist"
	"github.com/EgorLis/ipfs-drive/internal/auth/password"
	"github.com/EgorLis/ipfs-drive/internal/auth/token"
	"github.com/EgorLis/ipfs-drive/internal/config"
	"github.com/EgorLis/ipfs-drive/internal/domain"
	redisx "github.com/EgorLis/ipfs-drive/internal/infra/cache/redis"
	"github.com/EgorLis/ipfs-drive/internal/infra/database/postgres"
	ipfsgw "github.com/EgorLis/ipfs-drive/internal/infra/gateway/ipfs"
	"github.com/EgorLis/ipfs-drive/internal/infra/pinning/pinata"
	"github.com/EgorLis/ipfs-drive/internal/transport/web"
	"github.com/EgorLis/ipfs-drive/internal/vault"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	cache  domain.Cache
	repo   *postgres.PGRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	pinLog := log.New(base.Writer(), base.Prefix()+"[pinata] ", base.Flags())
	gwLog := log.New(base.Writer(), base.Prefix()+"[gateway] ", base.Flags())
	vaultLog := log.New(base.Writer(), base.Prefix()+"[vault] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	base.Println("init pinning client")
	pinner := pinata.New(pinata.Config{
		PinURL:    cfg.PinataPinURL,
		JWT:       cfg.PinataJWT,
		APIKey:    cfg.PinataAPIKey,
		APISecret: cfg.PinataAPISecret,
		MaxBytes:  cfg.MaxFileSize,
	}, pinLog)

	gw := ipfsgw.New(ipfsgw.Config{
		Base:     cfg.GatewayBase,
		MaxBytes: cfg.MaxFileSize,
	}, gwLog)

	vs := vault.New(vaultLog, pgRepo, pinner, gw, cfg.MaxFileSize)

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)
	bl := blacklist.NewStore(rc)

	base.Println("init Server")
	rep := web.Repos{Users: pgRepo, Uploads: pgRepo}
	auth := web.AuthDeps{Hasher: hasher, Tokens: tm, Blacklist: bl}
	server := web.New(serverLog, cfg, rep, auth, vs, rc)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  rc}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
