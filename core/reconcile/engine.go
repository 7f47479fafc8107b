package reconcile

import (
	"fmt"
	"os"
	"sort"

	"donation-manager/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reconcile merges the snapshot database into the primary, table by table,
// under the given mode. All mutations for all tables commit as a single
// transaction on the primary side; any failure rolls the whole merge back.
//
// The caller is responsible for serializing invocations against one primary;
// the engine itself runs single-threaded to completion.
func Reconcile(primary, snapshot *gorm.DB, mode Mode, log *zap.Logger) (*Summary, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	primarySchemas, err := database.DescribeAll(primary)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect primary schema: %w", err)
	}

	// Introspection is the first read against the snapshot; a malformed upload
	// fails here, before anything touches the primary.
	snapshotSchemas, err := database.DescribeAll(snapshot)
	if err != nil {
		return nil, &SnapshotError{Err: err}
	}

	tableNames := make([]string, 0, len(primarySchemas))
	for name := range primarySchemas {
		tableNames = append(tableNames, name)
	}
	sort.Strings(tableNames)

	summary := &Summary{Mode: mode}
	plans := make([]TablePlan, 0, len(tableNames))

	for _, name := range tableNames {
		primarySchema := primarySchemas[name]
		snapshotSchema, ok := snapshotSchemas[name]
		if !ok {
			// Table absent from the snapshot: nothing to merge.
			continue
		}
		if len(primarySchema.PrimaryKey) == 0 {
			log.Warn("Skipping table without a declared primary key", zap.String("table", name))
			continue
		}

		primaryRows, err := loadRows(primary, name)
		if err != nil {
			return nil, &MergeError{Table: name, Err: err}
		}
		snapshotRows, err := loadRows(snapshot, name)
		if err != nil {
			return nil, &SnapshotError{Err: fmt.Errorf("failed to read table %s: %w", name, err)}
		}

		plan := BuildTablePlan(primarySchema, snapshotSchema, primaryRows, snapshotRows, mode)
		plans = append(plans, plan)
		summary.Tables = append(summary.Tables, TableSummary{
			Table:    name,
			Inserted: len(plan.Inserts),
			Updated:  len(plan.Updates),
		})
	}

	err = primary.Transaction(func(tx *gorm.DB) error {
		for _, plan := range plans {
			if plan.IsEmpty() {
				continue
			}
			if err := applyPlan(tx, plan); err != nil {
				return &MergeError{Table: plan.Table, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Reconciliation committed",
		zap.String("mode", string(mode)),
		zap.Int("inserted", summary.Inserted()),
		zap.Int("updated", summary.Updated()),
	)
	return summary, nil
}

// ReconcileFile opens the uploaded snapshot at path, merges it into the
// primary and deletes the file. The snapshot handle is released on every exit
// path; the file is removed only after a successful merge, so a failed upload
// stays on disk for inspection. A removal failure is logged, not escalated.
func ReconcileFile(primary *gorm.DB, path string, mode Mode, log *zap.Logger) (*Summary, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	snapshot, err := database.OpenSnapshot(path)
	if err != nil {
		return nil, &SnapshotError{Err: err}
	}

	summary, mergeErr := Reconcile(primary, snapshot, mode, log)

	if closeErr := database.Close(snapshot); closeErr != nil {
		log.Warn("Failed to close snapshot handle", zap.Error(closeErr))
	}
	if mergeErr != nil {
		return nil, mergeErr
	}

	if err := os.Remove(path); err != nil {
		log.Warn("Failed to remove snapshot file after merge", zap.Error(err))
	}
	return summary, nil
}

// loadRows reads a whole table into memory. Merges are bounded batch
// operations; tables here are small enough for a single pass.
func loadRows(db *gorm.DB, table string) ([]map[string]any, error) {
	var rows []map[string]any
	if err := db.Table(table).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func applyPlan(tx *gorm.DB, plan TablePlan) error {
	for _, row := range plan.Inserts {
		if err := tx.Table(plan.Table).Create(row).Error; err != nil {
			return err
		}
	}
	for _, update := range plan.Updates {
		if err := tx.Table(plan.Table).Where(update.Key).Update(update.Column, update.Value).Error; err != nil {
			return err
		}
	}
	return nil
}
