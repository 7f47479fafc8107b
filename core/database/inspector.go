package database

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// TableSchema describes one table as discovered at runtime: its name, the
// declared column order and the primary-key columns. The merge engine operates
// over these values rather than over driver metadata objects.
type TableSchema struct {
	Name       string
	Columns    []string
	PrimaryKey []string
}

// ListTables returns the names of all user tables in the database.
func ListTables(db *gorm.DB) ([]string, error) {
	var tables []string
	var err error
	if db.Dialector.Name() == "sqlite" {
		err = db.Raw(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
		).Scan(&tables).Error
	} else {
		err = db.Raw("SHOW TABLES").Scan(&tables).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// DescribeTable returns the schema description for a single table.
func DescribeTable(db *gorm.DB, tableName string) (TableSchema, error) {
	schema := TableSchema{Name: tableName}

	if db.Dialector.Name() == "sqlite" {
		// SQLite uses PRAGMA table_info; pk holds the 1-based position of the
		// column within the primary key, 0 when it is not part of the key.
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var cols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&cols).Error; err != nil {
			return schema, fmt.Errorf("failed to describe table %s: %w", tableName, err)
		}
		var pkCols []sqliteColumn
		for _, col := range cols {
			schema.Columns = append(schema.Columns, col.Name)
			if col.Pk > 0 {
				pkCols = append(pkCols, col)
			}
		}
		sort.Slice(pkCols, func(i, j int) bool { return pkCols[i].Pk < pkCols[j].Pk })
		for _, col := range pkCols {
			schema.PrimaryKey = append(schema.PrimaryKey, col.Name)
		}
		return schema, nil
	}

	// MySQL: SHOW COLUMNS lists columns in declared order; Key == "PRI" marks
	// primary-key membership.
	type mysqlColumn struct {
		Field   string
		Type    string
		Null    string
		Key     string
		Default *string
		Extra   string
	}
	var cols []mysqlColumn
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&cols).Error; err != nil {
		return schema, fmt.Errorf("failed to describe table %s: %w", tableName, err)
	}
	for _, col := range cols {
		schema.Columns = append(schema.Columns, col.Field)
		if col.Key == "PRI" {
			schema.PrimaryKey = append(schema.PrimaryKey, col.Field)
		}
	}
	return schema, nil
}

// DescribeAll returns schema descriptions for every user table, keyed by
// table name.
func DescribeAll(db *gorm.DB) (map[string]TableSchema, error) {
	tables, err := ListTables(db)
	if err != nil {
		return nil, err
	}
	schemas := make(map[string]TableSchema, len(tables))
	for _, name := range tables {
		schema, err := DescribeTable(db, name)
		if err != nil {
			return nil, err
		}
		schemas[name] = schema
	}
	return schemas, nil
}
