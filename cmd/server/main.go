package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elitedog/backend/internal/config"
	"github.com/elitedog/backend/internal/content"
	"github.com/elitedog/backend/internal/handler"
	"github.com/elitedog/backend/internal/logging"
	"github.com/elitedog/backend/internal/repository"
	"github.com/elitedog/backend/internal/service"
	"github.com/elitedog/backend/pkg/auth"
	"github.com/elitedog/backend/pkg/identity"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		logging.Fatal("invalid configuration", "error", err)
	}
	logger := logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to open submission store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	resolver, err := sessionResolver(cfg)
	if err != nil {
		logging.Fatal("failed to configure session resolver", "error", err)
	}
	if !cfg.AuthRequired {
		logger.Warn("AUTH_REQUIRED=false: every request is signed in as the dev user", "user_id", auth.DevUserID)
	}

	catalog, err := content.Load()
	if err != nil {
		logging.Fatal("failed to load training sessions", "error", err)
	}
	render, err := handler.NewRenderer()
	if err != nil {
		logging.Fatal("failed to parse templates", "error", err)
	}

	// ユーザーディレクトリ（REDIS_ADDR 未設定の場合はキャッシュなし）
	var directory identity.Directory = identity.NewClient(cfg.IdentityAPIURL, cfg.IdentitySecret, 0)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer func() { _ = rdb.Close() }()
		directory = identity.NewCachedDirectory(directory, identity.NewRedisCache(rdb), cfg.DirectoryCacheTTL, logger)
	}

	sink := service.NewSubmissionSink(repo, cfg.StoreTimeout)
	listing := service.NewSubmissionListing(repo, cfg.StoreTimeout)
	form := service.NewSubmissionForm(sink)
	adminDirectory := service.NewAdminDirectoryService(directory)

	router := handler.NewRouter(handler.Routes{
		Health:      handler.New(repo),
		Pages:       handler.NewPagesHandler(catalog, render),
		Contact:     handler.NewContactHandler(form, render),
		Listing:     handler.NewListingHandler(listing, render, time.Local),
		AdminUsers:  handler.NewAdminUserHandler(adminDirectory),
		Guard:       auth.NewGuard(resolver, cfg.SignInURL, auth.WithLogger(logging.FromContext)),
		AdminUserID: cfg.AdminUserID,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (repository.SubmissionRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		repo, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPgSubmissionRepository(pool), pool.Close, nil
	}
}

func sessionResolver(cfg *config.Config) (auth.SessionResolver, error) {
	if !cfg.AuthRequired {
		return auth.DevResolver{}, nil
	}
	resolver, err := auth.NewJWTResolver(auth.JWTConfig{
		PublicKeyPEM: cfg.JWTPublicKeyPEM,
		Secret:       cfg.JWTSecret,
		Issuer:       cfg.JWTIssuer,
		CookieName:   cfg.SessionCookie,
		Leeway:       5 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return resolver, nil
}

