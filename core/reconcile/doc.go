// Package reconcile merges an uploaded snapshot database into the live
// primary, table by table, for disaster recovery and data import.
//
// # Modes
//
// Two policies exist, expressed as the closed Mode enumeration:
//
//   - recover: for rows present on both sides, a non-null snapshot value that
//     differs from the primary's overwrites it. Snapshot wins when it has data.
//   - import: a snapshot value is written only where the primary cell is
//     currently null. Existing primary data is never overwritten.
//
// In both modes, rows whose key is missing from the primary are inserted
// (projected onto the primary's column set), and rows or cells present only in
// the primary are left untouched. The operation is additive or corrective,
// never destructive toward the primary.
//
// # Architecture
//
// The engine is split the same way as the rest of the codebase:
//
//  1. Schema introspection (core/database) produces TableSchema values:
//     table name, ordered columns, primary-key columns.
//  2. BuildTablePlan is a pure diff over in-memory rows keyed by the ordered
//     tuple of primary-key values (composite keys supported). It emits inserts
//     and per-cell updates whose predicates carry the full composite key.
//  3. Reconcile applies every table's plan inside one primary-side
//     transaction; a failure anywhere rolls back the whole merge.
//
// # Failure kinds
//
//   - ErrInvalidMode: caller error, rejected before any I/O.
//   - SnapshotError: the uploaded file is unreadable or not a database.
//     Detection happens during introspection, before the primary is written.
//   - MergeError: any failure while diffing or writing, tagged with the table.
//
// # Usage
//
//	summary, err := reconcile.ReconcileFile(db, "/tmp/upload.db", reconcile.ModeRecover, log)
package reconcile
