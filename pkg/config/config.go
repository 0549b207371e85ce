package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Store StoreConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HYPERMART_APP_ENV" default:"dev"`
	Port         string `envconfig:"HYPERMART_APP_PORT" default:"8610"`
	LogLevel     string `envconfig:"HYPERMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HYPERMART_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"HYPERMART_AUTO_MIGRATE" default:"true"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Driver selects the dialector. The POS terminal runs on a local
	// sqlite file; postgres is accepted for a shared back-office install.
	Driver string `envconfig:"HYPERMART_DB_DRIVER" default:"sqlite"`
	Path   string `envconfig:"HYPERMART_DB_PATH" default:"db/billing.db"`
	DSN    string `envconfig:"HYPERMART_DB_DSN"`

	MaxOpenConns    int           `envconfig:"HYPERMART_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"HYPERMART_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"HYPERMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HYPERMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case DriverSQLite:
		if db.Path == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvDBPath)
		}
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	return nil
}

// StoreConfig carries the storefront identity printed on receipts.
type StoreConfig struct {
	Name    string `envconfig:"HYPERMART_STORE_NAME" default:"HD Super Mart"`
	Address string `envconfig:"HYPERMART_STORE_ADDRESS" default:"12505 Bel Red Road, Ste 212, Bellevue, WA 98005"`
	Phone   string `envconfig:"HYPERMART_STORE_PHONE" default:"(425) 389 0173"`
}
