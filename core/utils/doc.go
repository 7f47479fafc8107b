// Package utils contains small type-coercion helpers.
//
// They normalize the scalar types different database drivers hand back for the
// same cell, so that the reconcile engine can compare values from a sqlite
// snapshot against a MySQL primary without caring about driver quirks.
package utils
