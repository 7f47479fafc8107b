// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// configure sqlite and MySQL connections based on the application's
// configuration, plus OpenSnapshot for standalone sqlite files such as
// uploaded backups.
//
// # Schema Inspection
//
// The package includes tools to reflect the database schema at runtime, which
// the reconcile engine relies on: table names, ordered column lists and
// primary-key columns (composite keys included). Reflection is expressed as
// plain TableSchema values so the merge algorithm operates over data, not
// driver metadata objects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	schemas, err := database.DescribeAll(db)
package database
