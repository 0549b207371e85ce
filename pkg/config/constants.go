package config

const (
	EnvPrefix = "HYPERMART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	EnvDBPath = "HYPERMART_DB_PATH"
	EnvDBDSN  = "HYPERMART_DB_DSN"
)
