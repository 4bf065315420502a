// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. The database is optional:
// it only stores the history of reconciliation runs.
//
// # Connect
//
// Connect establishes a connection with bounded connect, read and write timeouts
// and verifies it with a ping.
//
// # Schema Inspection
//
// GetTableColumns returns the live column definitions of a table. The server
// integrity check compares them against the GORM tags of the history model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "reconcile_runs")
package database
