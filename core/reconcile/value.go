package reconcile

import (
	"strings"

	"donation-manager/core/database"
	"donation-manager/core/utils"
)

// keySeparator joins primary-key values into a map key. Unit separator is
// vanishingly unlikely to appear inside key values.
const keySeparator = "\x1f"

// rowKey encodes the ordered tuple of primary-key values as a string, so rows
// from both sides index into the same map regardless of driver scan types.
func rowKey(schema database.TableSchema, row map[string]any) string {
	parts := make([]string, 0, len(schema.PrimaryKey))
	for _, col := range schema.PrimaryKey {
		parts = append(parts, utils.ToString(row[col]))
	}
	return strings.Join(parts, keySeparator)
}

// keyPredicate builds the full composite-key predicate for an update.
func keyPredicate(schema database.TableSchema, row map[string]any) map[string]any {
	pred := make(map[string]any, len(schema.PrimaryKey))
	for _, col := range schema.PrimaryKey {
		pred[col] = row[col]
	}
	return pred
}

// valuesEqual compares two cells across driver representations. Strings
// compare exactly; mixed scalar types fall back to numeric normalization, then
// to string rendering.
func valuesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	as, aIsStr := stringValue(a)
	bs, bIsStr := stringValue(b)
	if aIsStr && bIsStr {
		return as == bs
	}

	af, aOK := utils.ToFloat64(a)
	bf, bOK := utils.ToFloat64(b)
	if aOK && bOK {
		return af == bf
	}

	return utils.ToString(a) == utils.ToString(b)
}

func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}
