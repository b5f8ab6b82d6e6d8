package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unidash/unidash/internal/config"
	"github.com/unidash/unidash/internal/infra/blob"
	"github.com/unidash/unidash/internal/infra/cache"
	"github.com/unidash/unidash/internal/infra/db"
	"github.com/unidash/unidash/internal/infra/llm"
	"github.com/unidash/unidash/internal/infra/logger"
	"github.com/unidash/unidash/internal/modules/handler"
	"github.com/unidash/unidash/internal/modules/repo"
	"github.com/unidash/unidash/internal/modules/service"
	"github.com/unidash/unidash/internal/telemetry"
)

// BuildContainer registers every dependency of the server. Nothing is
// constructed until it is first invoked.
func BuildContainer(cfg *config.Config) *do.Injector {
	inj := do.New()

	// config
	do.ProvideValue(inj, cfg)

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level, cfg.App.Env)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if telemetry.Enabled(cfg) {
			if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
				log.Warn("gorm tracing disabled", zap.Error(err))
			}
		}
		if cfg.Database.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := db.EnsureSchema(ctx, d, log); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis, only invoked when enabled
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb, err := cache.New(cfg)
		if err != nil {
			return nil, err
		}
		if telemetry.Enabled(cfg) {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				do.MustInvoke[*zap.Logger](i).Warn("redis tracing disabled", zap.Error(err))
			}
		}
		return rdb, nil
	})

	do.Provide(inj, func(i *do.Injector) (service.ViewCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.Redis.Enabled {
			return service.NopViewCache(), nil
		}
		rdb, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}
		return cache.NewViewCache(rdb, time.Duration(cfg.Redis.ViewTTLSec)*time.Second), nil
	})

	// S3, only invoked when enabled
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// AI provider
	do.Provide(inj, func(i *do.Injector) (llm.Provider, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return llm.New(cfg.AI, do.MustInvoke[*zap.Logger](i))
	})

	do.Provide(inj, func(i *do.Injector) (*service.SeedData, error) {
		return service.LoadSeedData()
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ViewRepo, error) {
		return repo.NewViewRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.UniversityRepo, error) {
		return repo.NewUniversityRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ColumnRepo, error) {
		return repo.NewColumnRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ValueRepo, error) {
		return repo.NewValueRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.HistoryRepo, error) {
		return repo.NewHistoryRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CellFormatRepo, error) {
		return repo.NewCellFormatRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.DocumentRepo, error) {
		return repo.NewDocumentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ApplicationRepo, error) {
		return repo.NewApplicationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.GradeRepo, error) {
		return repo.NewGradeRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ViewService, error) {
		return service.NewViewService(
			do.MustInvoke[repo.ViewRepo](i),
			do.MustInvoke[repo.ColumnRepo](i),
			do.MustInvoke[repo.ValueRepo](i),
			do.MustInvoke[repo.UniversityRepo](i),
			do.MustInvoke[service.ViewCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ViewDataService, error) {
		return service.NewViewDataService(
			do.MustInvoke[repo.ViewRepo](i),
			do.MustInvoke[repo.UniversityRepo](i),
			do.MustInvoke[repo.ColumnRepo](i),
			do.MustInvoke[repo.ValueRepo](i),
			do.MustInvoke[service.ViewCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ColumnService, error) {
		return service.NewColumnService(
			do.MustInvoke[repo.ColumnRepo](i),
			do.MustInvoke[repo.ViewRepo](i),
			do.MustInvoke[service.ViewCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UniversityService, error) {
		return service.NewUniversityService(
			do.MustInvoke[repo.UniversityRepo](i),
			do.MustInvoke[service.ViewCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ValueService, error) {
		return service.NewValueService(
			do.MustInvoke[repo.ValueRepo](i),
			do.MustInvoke[repo.ViewRepo](i),
			do.MustInvoke[repo.UniversityRepo](i),
			do.MustInvoke[service.ViewCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.HistoryService, error) {
		return service.NewHistoryService(do.MustInvoke[repo.HistoryRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CellFormatService, error) {
		return service.NewCellFormatService(
			do.MustInvoke[repo.CellFormatRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AIRefreshService, error) {
		return service.NewAIRefreshService(
			do.MustInvoke[llm.Provider](i),
			do.MustInvoke[repo.ViewRepo](i),
			do.MustInvoke[repo.UniversityRepo](i),
			do.MustInvoke[repo.ColumnRepo](i),
			do.MustInvoke[repo.ValueRepo](i),
			do.MustInvoke[service.HistoryService](i),
			do.MustInvoke[service.ViewCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SeedService, error) {
		return service.NewSeedService(
			do.MustInvoke[*service.SeedData](i),
			do.MustInvoke[repo.ViewRepo](i),
			do.MustInvoke[repo.UniversityRepo](i),
			do.MustInvoke[repo.ColumnRepo](i),
			do.MustInvoke[repo.ValueRepo](i),
			do.MustInvoke[service.ViewCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.DocumentService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		// documents stay inline in the database without S3
		var blobs service.BlobStore
		if cfg.S3.Enabled {
			s3, err := do.Invoke[*blob.S3Deps](i)
			if err != nil {
				return nil, err
			}
			blobs = s3
		}
		return service.NewDocumentService(
			do.MustInvoke[repo.DocumentRepo](i),
			blobs,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PlannerService, error) {
		return service.NewPlannerService(
			do.MustInvoke[repo.ApplicationRepo](i),
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.GradeRepo](i),
			do.MustInvoke[repo.UniversityRepo](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ViewHandler, error) {
		return handler.NewViewHandler(
			do.MustInvoke[service.ViewService](i),
			do.MustInvoke[service.ViewDataService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ColumnHandler, error) {
		return handler.NewColumnHandler(do.MustInvoke[service.ColumnService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UniversityHandler, error) {
		return handler.NewUniversityHandler(
			do.MustInvoke[service.UniversityService](i),
			do.MustInvoke[service.HistoryService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ValueHandler, error) {
		return handler.NewValueHandler(do.MustInvoke[service.ValueService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CellFormatHandler, error) {
		return handler.NewCellFormatHandler(do.MustInvoke[service.CellFormatService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AIHandler, error) {
		return handler.NewAIHandler(do.MustInvoke[service.AIRefreshService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SeedHandler, error) {
		return handler.NewSeedHandler(do.MustInvoke[service.SeedService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.DocumentHandler, error) {
		return handler.NewDocumentHandler(do.MustInvoke[service.DocumentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PlannerHandler, error) {
		return handler.NewPlannerHandler(do.MustInvoke[service.PlannerService](i)), nil
	})
	return inj
}
