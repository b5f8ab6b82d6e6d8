package bootstrap

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unidash/unidash/internal/config"
	"github.com/unidash/unidash/internal/infra/cache"
	"github.com/unidash/unidash/internal/modules/handler"
	"github.com/unidash/unidash/internal/router"
	"github.com/unidash/unidash/internal/telemetry"
)

// NewServer builds the HTTP engine from the container.
func NewServer(inj *do.Injector) (*gin.Engine, error) {
	return router.NewRouter(router.RouterDeps{
		Config:            do.MustInvoke[*config.Config](inj),
		Log:               do.MustInvoke[*zap.Logger](inj),
		ViewHandler:       do.MustInvoke[*handler.ViewHandler](inj),
		ColumnHandler:     do.MustInvoke[*handler.ColumnHandler](inj),
		UniversityHandler: do.MustInvoke[*handler.UniversityHandler](inj),
		ValueHandler:      do.MustInvoke[*handler.ValueHandler](inj),
		CellFormatHandler: do.MustInvoke[*handler.CellFormatHandler](inj),
		AIHandler:         do.MustInvoke[*handler.AIHandler](inj),
		SeedHandler:       do.MustInvoke[*handler.SeedHandler](inj),
		DocumentHandler:   do.MustInvoke[*handler.DocumentHandler](inj),
		PlannerHandler:    do.MustInvoke[*handler.PlannerHandler](inj),
	})
}

// Close releases the connections the container opened and flushes spans.
func Close(ctx context.Context, inj *do.Injector) error {
	var errs []error
	cfg := do.MustInvoke[*config.Config](inj)

	if cfg.Redis.Enabled {
		if rdb, err := do.Invoke[*redis.Client](inj); err == nil {
			errs = append(errs, cache.Close(rdb))
		}
	}
	if d, err := do.Invoke[*gorm.DB](inj); err == nil {
		if sqlDB, err := d.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	errs = append(errs, telemetry.Shutdown(ctx))

	if log, err := do.Invoke[*zap.Logger](inj); err == nil {
		_ = log.Sync()
	}
	return errors.Join(errs...)
}
