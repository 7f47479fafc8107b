package reconcile

import (
	"errors"
	"fmt"
)

// Mode selects the merge policy applied to rows present on both sides.
type Mode string

const (
	// ModeRecover overwrites a primary cell whenever the snapshot holds a
	// non-null value that differs. Snapshot data wins when it has data.
	ModeRecover Mode = "recover"
	// ModeImport fills a primary cell only when it is currently null and the
	// snapshot holds a non-null value. Existing data is never overwritten.
	ModeImport Mode = "import"
)

// ErrInvalidMode is returned when a mode outside {recover, import} reaches the
// engine. This is a caller error, rejected before any file or database access.
var ErrInvalidMode = errors.New("invalid reconcile mode")

// ParseMode validates a mode string coming from a CLI flag or request.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRecover, ModeImport:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidMode, s, ModeRecover, ModeImport)
	}
}

// SnapshotError marks failures on the snapshot (secondary) side: the uploaded
// file is unreadable or is not a valid database.
type SnapshotError struct {
	Err error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot database: %v", e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

// MergeError wraps a failure during the merge itself with the table being
// processed, so operators can diagnose without the engine leaking paths.
type MergeError struct {
	Table string
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge failed on table %s: %v", e.Table, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// CellUpdate is one planned per-cell write. Key carries the full ordered
// composite primary key so the update predicate never collapses to the first
// key column.
type CellUpdate struct {
	// Key maps each primary-key column to its value for the target row.
	Key map[string]any
	// Column is the column to write.
	Column string
	// Value is the snapshot value to write.
	Value any
}

// TablePlan holds the planned mutations for a single table.
type TablePlan struct {
	// Table is the table name.
	Table string
	// Inserts are full rows missing from the primary, already projected onto
	// the primary's column set.
	Inserts []map[string]any
	// Updates are per-cell writes for rows present on both sides.
	Updates []CellUpdate
}

// IsEmpty reports whether the plan contains no mutations.
func (p TablePlan) IsEmpty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0
}

// TableSummary reports what a merge did to one table.
type TableSummary struct {
	// Table is the table name.
	Table string `json:"table"`
	// Inserted counts rows added to the primary.
	Inserted int `json:"inserted"`
	// Updated counts individual cell writes.
	Updated int `json:"updated"`
}

// Summary aggregates per-table results for a whole merge.
type Summary struct {
	// Mode is the policy the merge ran under.
	Mode Mode `json:"mode"`
	// Tables lists per-table counts, in processing order.
	Tables []TableSummary `json:"tables"`
}

// Inserted returns the total number of inserted rows.
func (s *Summary) Inserted() int {
	n := 0
	for _, t := range s.Tables {
		n += t.Inserted
	}
	return n
}

// Updated returns the total number of cell writes.
func (s *Summary) Updated() int {
	n := 0
	for _, t := range s.Tables {
		n += t.Updated
	}
	return n
}
