// Package bootstrap assembles the API from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/dispatch"
	"career-backend/internal/documents"
	"career-backend/internal/llm"
	"career-backend/internal/llm/gemini"
	"career-backend/internal/llm/ollama"
	"career-backend/internal/llm/openai"
	"career-backend/internal/session"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/storage/object"
	localstore "career-backend/internal/shared/storage/object/local"
	s3store "career-backend/internal/shared/storage/object/s3"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

// App holds the assembled dependencies.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Store     object.Store
	Generator llm.Generator

	UsersRepo   users.Repo
	UploadsRepo documents.Repo
	Sessions    *session.Manager
	Dispatcher  *dispatch.Service
	Documents   *documents.Service
	RateLimiter *middleware.RateLimiter
}

// Build prepares every dependency and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	prompts, err := dispatch.DefaultPrompts()
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	generator := buildGenerator(ctx, cfg)

	app := &App{
		Config:      cfg,
		DB:          sqlDB,
		Store:       store,
		Generator:   generator,
		RateLimiter: middleware.NewRateLimiter(nil),
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.UploadsRepo = &documents.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.UploadsRepo = documents.NewMemoryRepo()
	}

	secret, err := session.SecretFor(cfg.Env, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	app.Sessions = session.NewManager(app.UsersRepo, secret, cfg.SessionTTL)
	if err := app.Sessions.EnsureDemoAccount(ctx); err != nil {
		return nil, fmt.Errorf("seed demo account: %w", err)
	}

	app.Dispatcher = dispatch.NewService(generator, prompts, cfg.LLMProvider)
	app.Documents = &documents.Service{Store: store, Repo: app.UploadsRepo, Retain: cfg.RetainUploads}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		DB:        sqlDB,
		Sessions:  app.Sessions,
		Dispatch:  dispatch.NewHandler(app.Dispatcher),
		Session:   session.NewHandler(app.Sessions),
		Documents: documents.NewHandler(app.Documents),
		Limiter:   app.RateLimiter,
	})

	return app, nil
}

// buildGenerator returns nil when the selected provider has no credential;
// the dispatcher then answers every call with a not-configured error.
func buildGenerator(ctx context.Context, cfg config.Config) llm.Generator {
	if strings.TrimSpace(cfg.LLMCredential()) == "" {
		telemetry.Error("llm.not_configured", map[string]any{"provider": cfg.LLMProvider})
		return nil
	}

	var (
		gen llm.Generator
		err error
	)
	switch cfg.LLMProvider {
	case "gemini":
		gen, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTemperature)
	case "ollama":
		gen, err = ollama.NewClient(cfg.OllamaHost, cfg.OllamaModel)
	default:
		gen, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel,
			openai.WithBaseURL(cfg.OpenAIBaseURL),
			openai.WithTemperature(cfg.LLMTemperature),
			openai.WithTimeout(cfg.OpenAITimeout),
		)
	}
	if err != nil {
		telemetry.Error("llm.init_failed", map[string]any{"provider": cfg.LLMProvider, "error": err.Error()})
		return nil
	}
	telemetry.Info("llm.ready", map[string]any{"provider": cfg.LLMProvider})
	return gen
}

var (
	connectDB = db.Connect
	sharedDB  = db.Shared
	migrateDB = db.RunMigrations
)

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB  *sql.DB
		err    error
		shared = db.InLambda()
	)
	if shared {
		sqlDB, err = sharedDB(ctx, cfg.DatabaseURL, db.PoolFromEnv(db.LambdaPool()))
	} else {
		sqlDB, err = connectDB(ctx, cfg.DatabaseURL, db.PoolFromEnv(db.ServerPool()))
	}
	if err == nil {
		err = migrateDB(ctx, sqlDB)
		// The shared pool outlives this build and is reused by later invocations.
		if err != nil && !shared {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
