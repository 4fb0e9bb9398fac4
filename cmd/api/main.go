package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appanalyses "github.com/bryanwahyu/textlens/internal/application/analyses"
	"github.com/bryanwahyu/textlens/internal/application/keywords"
	"github.com/bryanwahyu/textlens/internal/config"
	domain "github.com/bryanwahyu/textlens/internal/domain/analysis"
	aiclient "github.com/bryanwahyu/textlens/internal/infra/ai/openai"
	mysqldb "github.com/bryanwahyu/textlens/internal/infra/db/mysql"
	postgresdb "github.com/bryanwahyu/textlens/internal/infra/db/postgres"
	"github.com/bryanwahyu/textlens/internal/infra/httpserver"
	archiveStore "github.com/bryanwahyu/textlens/internal/infra/storage"
	"github.com/bryanwahyu/textlens/internal/logger"
	"github.com/bryanwahyu/textlens/internal/middleware"
)

func main() {
	// .env for local development; ignored when absent
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Env, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// connect database and pick the repository for the configured driver
	var (
		db   *sql.DB
		repo domain.Repository
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			zlog.Fatal("mysql connect error", zap.Error(err))
		}
		repo = mysqldb.NewAnalysisRepository(db)
	default:
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			zlog.Fatal("postgres connect error", zap.Error(err))
		}
		repo = postgresdb.NewAnalysisRepository(db)
	}
	defer db.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		zlog.Fatal("schema init error", zap.Error(err))
	}

	// optional raw-response archive
	var archive appanalyses.Archiver
	if cfg.Archive.Enabled {
		store, err := archiveStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			zlog.Fatal("archive init error", zap.Error(err))
		}
		archive = store
	}

	// init service
	svc := &appanalyses.Service{
		Repo:      repo,
		AI:        aiclient.NewClient(cfg.AI.APIKey, cfg.AI.Model),
		Extractor: keywords.NewExtractor(),
		Archive:   archive,
		Logger:    zlog,
	}

	// init router
	health := middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	})
	var handler http.Handler = httpserver.NewRouter(svc, zlog, health)
	if cfg.RateLimit.Capacity > 0 {
		handler = middleware.RateLimit(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)(handler)
	}
	if len(cfg.Auth.APIKeys) > 0 {
		handler = middleware.APIKeyAuth(cfg.Auth.APIKeys)(handler)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		zlog.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	zlog.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		zlog.Error("shutdown error", zap.Error(err))
	}
}
