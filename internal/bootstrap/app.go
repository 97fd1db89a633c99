package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"cloud-storage-bot/internal/files"
	"cloud-storage-bot/internal/relay"
	"cloud-storage-bot/internal/services/health"
	"cloud-storage-bot/internal/shared/config"
	"cloud-storage-bot/internal/shared/server"
	"cloud-storage-bot/internal/shared/server/middleware"
	"cloud-storage-bot/internal/shared/storage/db"
	"cloud-storage-bot/internal/shared/storage/kv"
	"cloud-storage-bot/internal/telegram"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Redis        *redis.Client
	FilesRepo    files.Repo
	FilesService *files.Service
	Retriever    *relay.Retriever
	Telegram     *telegram.Client
	Bot          *telegram.Bot
}

// Option customizes Build.
type Option func(*buildOptions)

type buildOptions struct {
	api telegram.API
}

// WithTelegramAPI replaces the Bot API client, which otherwise is created
// from BOT_TOKEN and verified against the platform.
func WithTelegramAPI(api telegram.API) Option {
	return func(o *buildOptions) { o.api = api }
}

// Build prepares shared dependencies and the router.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	app := &App{Config: cfg}
	if err := buildStore(ctx, app); err != nil {
		return nil, err
	}

	api := bo.api
	if api == nil {
		var err error
		api, err = buildTelegramAPI(cfg)
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	httpClient := &http.Client{}
	app.Telegram = telegram.NewClient(api, cfg.BotToken)
	app.FilesService = files.NewService(app.FilesRepo)
	app.Retriever = &relay.Retriever{
		Origin:          app.Telegram,
		HTTP:            httpClient,
		Cache:           relay.NewResolveCache(cfg.ResolveCacheSize, cfg.ResolveCacheTTL),
		DownloadTimeout: cfg.DownloadTimeout,
		RelayTimeout:    cfg.RelayTimeout,
	}
	app.Bot = &telegram.Bot{
		Messenger:       app.Telegram,
		Ingester:        app.FilesService,
		Relayer:         app.Retriever,
		WebAppURL:       cfg.WebAppURL,
		Workers:         cfg.BotWorkers,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}

	app.Router = server.NewRouter(cfg, server.RouterDeps{
		Files:       files.NewHandler(app.FilesService),
		Relay:       relay.NewHandler(app.Retriever),
		Health:      health.NewService(app.Bot),
		SendLimiter: middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases store connections.
func (a *App) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("bootstrap: close database: %v", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Printf("bootstrap: close redis: %v", err)
		}
	}
}

func buildStore(ctx context.Context, app *App) error {
	cfg := app.Config
	switch cfg.MetadataStore {
	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return err
		}
		if sqlDB == nil {
			app.FilesRepo = files.NewMemoryRepo()
			return nil
		}
		app.DB = sqlDB
		app.FilesRepo = &files.PGRepo{DB: sqlDB}
	case "redis":
		if strings.TrimSpace(cfg.RedisURL) == "" {
			return errors.New("REDIS_URL is required for METADATA_STORE=redis")
		}
		client, err := kv.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		app.Redis = client
		app.FilesRepo = files.NewRedisRepo(client, cfg.RedisKeyPrefix)
	case "memory", "":
		app.FilesRepo = files.NewMemoryRepo()
	default:
		return fmt.Errorf("unknown METADATA_STORE %q", cfg.MetadataStore)
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildTelegramAPI(cfg config.Config) (telegram.API, error) {
	if strings.TrimSpace(cfg.BotToken) == "" {
		return nil, errors.New("BOT_TOKEN is required")
	}
	// The client timeout bounds every Bot API call and must outlast the long poll.
	client := &http.Client{Timeout: cfg.APITimeout}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return api, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "local", "test":
		return true
	default:
		return false
	}
}
