// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"github.com/recipeql/v1/internal/application/assistant"
	"github.com/recipeql/v1/internal/domain/recipe"
	"github.com/recipeql/v1/internal/infrastructure/ai/ollama"
	"github.com/recipeql/v1/internal/infrastructure/config"
	"github.com/recipeql/v1/internal/infrastructure/dataset"
	"github.com/recipeql/v1/internal/infrastructure/http/server"
	"github.com/recipeql/v1/internal/infrastructure/persistence/memory"
	"github.com/recipeql/v1/internal/ports/inbound"
	"github.com/recipeql/v1/internal/ports/outbound"
	"github.com/recipeql/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	CoreModule,
	HTTPModule,
	LifecycleModule,
)

// CoreModule wires everything below the HTTP surface. The CLI reuses it
// without the server.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DatasetModule,
	CacheModule,
	AIModule,
	ServiceModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			File:        cfg.App.LogFile,
		})
	},
)

// DatasetModule loads the recipe table once at startup. A missing file
// fails startup with a clear message.
var DatasetModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*recipe.Dataset, error) {
		return dataset.Load(cfg.Dataset.Path, log)
	},
)

// CacheModule provides the in-memory translation cache
var CacheModule = fx.Provide(
	func() outbound.CacheRepository {
		return memory.NewCacheRepository()
	},
)

// AIModule provides the completion service
var AIModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *ollama.Client {
			return ollama.NewClient(cfg.AI, log)
		},
		fx.As(new(outbound.CompletionService)),
	),
)

// ServiceModule provides the query assistant
var ServiceModule = fx.Provide(
	fx.Annotate(
		func(
			ds *recipe.Dataset,
			completions outbound.CompletionService,
			cache outbound.CacheRepository,
			cfg *config.Config,
			log *zap.Logger,
		) *assistant.Service {
			return assistant.NewService(ds, completions, cache, cfg.AI, log)
		},
		fx.As(new(inbound.QueryAssistant)),
	),
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	ds *recipe.Dataset,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting RecipeQL",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.Int("dataset_rows", ds.Len()),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down RecipeQL")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
