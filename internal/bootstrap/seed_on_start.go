package bootstrap

import (
	"context"

	"github.com/unidash/unidash/internal/config"
	"github.com/unidash/unidash/internal/modules/service"
	"go.uber.org/zap"
)

// EnsureGeneralView seeds the General view when the service starts, if
// enabled. A store that is already seeded is left as is.
func EnsureGeneralView(ctx context.Context, seed service.SeedService, cfg *config.Config, log *zap.Logger) error {
	if !cfg.App.SeedOnStart {
		return nil
	}

	res, err := seed.Seed(ctx)
	if err != nil {
		return err
	}

	if res.ViewCreated {
		log.Sugar().Infow("general view created", "view", res.ViewID,
			"universities", res.UniversitiesCreated, "columns", res.ColumnsCreated, "values", res.ValuesWritten)
		return nil
	}
	log.Sugar().Infow("general view exists", "view", res.ViewID,
		"universities_added", res.UniversitiesCreated, "columns_added", res.ColumnsCreated)
	return nil
}
