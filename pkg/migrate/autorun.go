package migrate

import (
	"context"

	"github.com/hypermart/pos-backend/pkg/config"
	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/logger"
)

// MaybeRun applies migrations at startup when auto-migrate is enabled.
// A single-terminal install has no operator running migrate by hand, so
// this defaults on.
func MaybeRun(ctx context.Context, cfg *config.Config, client *db.Client, log *logger.Logger) error {
	if !cfg.App.AutoMigrate {
		log.Debug(ctx, "auto-migrate disabled, skipping")
		return nil
	}
	log.Info(ctx, "applying pending migrations")
	return Up(ctx, client, cfg.DB.Driver)
}
