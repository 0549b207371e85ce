package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/hypermart/pos-backend/pkg/config"
	"github.com/hypermart/pos-backend/pkg/db"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Up applies all pending migrations for the configured driver.
func Up(ctx context.Context, client *db.Client, driver string) error {
	return run(ctx, client, driver, func(sqlDB *sql.DB) error {
		return goose.UpContext(ctx, sqlDB, ".")
	})
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, client *db.Client, driver string) error {
	return run(ctx, client, driver, func(sqlDB *sql.DB) error {
		return goose.DownContext(ctx, sqlDB, ".")
	})
}

// Status prints the migration table to stdout.
func Status(ctx context.Context, client *db.Client, driver string) error {
	return run(ctx, client, driver, func(sqlDB *sql.DB) error {
		return goose.StatusContext(ctx, sqlDB, ".")
	})
}

func run(ctx context.Context, client *db.Client, driver string, fn func(*sql.DB) error) error {
	dir, dialect, err := driverLayout(driver)
	if err != nil {
		return err
	}

	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}
	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	sqlDB, err := client.Gorm().DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	if err := fn(sqlDB); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func driverLayout(driver string) (dir, dialect string, err error) {
	switch driver {
	case config.DriverSQLite:
		return "migrations/sqlite", "sqlite3", nil
	case config.DriverPostgres:
		return "migrations/postgres", "postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported db driver %q", driver)
	}
}
