// Package backup exposes the admin-guarded database surface: exports, the
// recover and import reconciliation endpoints, and the archived-export
// listing.
package backup
