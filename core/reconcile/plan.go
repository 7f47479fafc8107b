package reconcile

import (
	"donation-manager/core/database"
)

// BuildTablePlan diffs one table's rows and returns the mutations the given
// mode calls for. It is a pure function over in-memory data: no database
// access happens here, which keeps the policies testable with fabricated
// schemas.
//
// Rows are keyed by the ordered tuple of primary-key column values. Only
// columns present in both schemas are compared or copied; snapshot-only
// columns are dropped silently. Rows whose key exists only in the primary are
// never touched.
func BuildTablePlan(primary, snapshot database.TableSchema, primaryRows, snapshotRows []map[string]any, mode Mode) TablePlan {
	plan := TablePlan{Table: primary.Name}

	shared := sharedColumns(primary, snapshot)

	primaryIndex := make(map[string]map[string]any, len(primaryRows))
	for _, row := range primaryRows {
		primaryIndex[rowKey(primary, row)] = row
	}

	for _, snapRow := range snapshotRows {
		key := rowKey(primary, snapRow)
		existing, found := primaryIndex[key]

		if !found {
			// Missing from the primary: insert, projected onto the primary's
			// column set.
			insert := make(map[string]any, len(shared))
			for _, col := range shared {
				insert[col] = snapRow[col]
			}
			plan.Inserts = append(plan.Inserts, insert)
			continue
		}

		for _, col := range shared {
			snapVal := snapRow[col]
			primVal := existing[col]

			switch mode {
			case ModeRecover:
				// Snapshot wins when it has data.
				if snapVal != nil && !valuesEqual(snapVal, primVal) {
					plan.Updates = append(plan.Updates, CellUpdate{
						Key:    keyPredicate(primary, snapRow),
						Column: col,
						Value:  snapVal,
					})
				}
			case ModeImport:
				// Only fill gaps, never overwrite.
				if primVal == nil && snapVal != nil {
					plan.Updates = append(plan.Updates, CellUpdate{
						Key:    keyPredicate(primary, snapRow),
						Column: col,
						Value:  snapVal,
					})
				}
			}
		}
	}

	return plan
}

// sharedColumns returns the columns present in both schemas, in the primary's
// declared order. The intersection is computed per table: a snapshot produced
// by an older revision may lack columns the primary has, and vice versa.
func sharedColumns(primary, snapshot database.TableSchema) []string {
	inSnapshot := make(map[string]struct{}, len(snapshot.Columns))
	for _, col := range snapshot.Columns {
		inSnapshot[col] = struct{}{}
	}

	shared := make([]string, 0, len(primary.Columns))
	for _, col := range primary.Columns {
		if _, ok := inSnapshot[col]; ok {
			shared = append(shared, col)
		}
	}
	return shared
}
