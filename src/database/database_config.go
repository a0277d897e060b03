package database

import "schnorr-batch/pkg/utilities"

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

type DatabaseConfigJson struct {
	Enabled          bool   `json:"enabled"`
	Driver           string `json:"driver"`
	ConnectionString string `json:"connection_string"`
	Migrate          *bool  `json:"migrate"`
}

type DatabaseConfig struct {
	Enabled          bool
	Driver           string
	ConnectionString string
	Migrate          bool
}

func (dcj DatabaseConfigJson) ConvertToDomain() DatabaseConfig {
	return DatabaseConfig{
		Enabled:          dcj.Enabled,
		Driver:           utilities.Ternary(dcj.Driver == "", DriverSqlite, dcj.Driver),
		ConnectionString: utilities.Ternary(dcj.ConnectionString == "", "batch_runs.db", dcj.ConnectionString),
		Migrate:          dcj.Migrate == nil || *dcj.Migrate,
	}
}
