package reconcile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"donation-manager/core/database"
	"donation-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const usersDDL = `CREATE TABLE kofi_users (
	verification_token TEXT PRIMARY KEY,
	preferred_currency TEXT,
	data_retention_days INTEGER
)`

func newMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newSnapshotFile(t *testing.T) (string, *gorm.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: path})
	require.NoError(t, err)
	return path, db
}

func queryCurrency(t *testing.T, db *gorm.DB, token string) any {
	t.Helper()
	var rows []map[string]any
	require.NoError(t, db.Table("kofi_users").Where("verification_token = ?", token).Find(&rows).Error)
	require.Len(t, rows, 1)
	return rows[0]["preferred_currency"]
}

func TestReconcile_ImportFillsNullThenRecoverOverwrites(t *testing.T) {
	primary := newMemoryDB(t)
	snapshot := newMemoryDB(t)

	require.NoError(t, primary.Exec(usersDDL).Error)
	require.NoError(t, snapshot.Exec(usersDDL).Error)

	require.NoError(t, primary.Exec(
		"INSERT INTO kofi_users VALUES ('abc', NULL, 10)").Error)
	require.NoError(t, snapshot.Exec(
		"INSERT INTO kofi_users VALUES ('abc', 'EUR', 10)").Error)

	// Null primary cell: import fills it.
	summary, err := reconcile.Reconcile(primary, snapshot, reconcile.ModeImport, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated())
	assert.Equal(t, "EUR", queryCurrency(t, primary, "abc"))

	// Now a differing non-null value: import leaves it, recover overwrites.
	require.NoError(t, primary.Exec(
		"UPDATE kofi_users SET preferred_currency = 'USD' WHERE verification_token = 'abc'").Error)

	summary, err = reconcile.Reconcile(primary, snapshot, reconcile.ModeImport, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Updated())
	assert.Equal(t, "USD", queryCurrency(t, primary, "abc"))

	summary, err = reconcile.Reconcile(primary, snapshot, reconcile.ModeRecover, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated())
	assert.Equal(t, "EUR", queryCurrency(t, primary, "abc"))
}

func TestReconcile_InsertsMissingRows(t *testing.T) {
	for _, mode := range []reconcile.Mode{reconcile.ModeRecover, reconcile.ModeImport} {
		t.Run(string(mode), func(t *testing.T) {
			primary := newMemoryDB(t)
			snapshot := newMemoryDB(t)

			require.NoError(t, primary.Exec(usersDDL).Error)
			require.NoError(t, snapshot.Exec(usersDDL).Error)
			require.NoError(t, snapshot.Exec(
				"INSERT INTO kofi_users VALUES ('fresh', 'JPY', 30)").Error)

			summary, err := reconcile.Reconcile(primary, snapshot, mode, nil)
			require.NoError(t, err)
			assert.Equal(t, 1, summary.Inserted())
			assert.Equal(t, "JPY", queryCurrency(t, primary, "fresh"))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	primary := newMemoryDB(t)
	snapshot := newMemoryDB(t)

	require.NoError(t, primary.Exec(usersDDL).Error)
	require.NoError(t, snapshot.Exec(usersDDL).Error)
	require.NoError(t, primary.Exec("INSERT INTO kofi_users VALUES ('a', 'USD', 10)").Error)
	require.NoError(t, snapshot.Exec("INSERT INTO kofi_users VALUES ('a', 'EUR', 10)").Error)
	require.NoError(t, snapshot.Exec("INSERT INTO kofi_users VALUES ('b', 'GBP', 5)").Error)

	first, err := reconcile.Reconcile(primary, snapshot, reconcile.ModeRecover, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Inserted())
	assert.Equal(t, 1, first.Updated())

	second, err := reconcile.Reconcile(primary, snapshot, reconcile.ModeRecover, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted())
	assert.Equal(t, 0, second.Updated())
}

func TestReconcile_SkipsTablesMissingFromSnapshot(t *testing.T) {
	primary := newMemoryDB(t)
	snapshot := newMemoryDB(t)

	require.NoError(t, primary.Exec(usersDDL).Error)
	require.NoError(t, primary.Exec("INSERT INTO kofi_users VALUES ('a', 'USD', 10)").Error)
	// Snapshot has an unrelated table only.
	require.NoError(t, snapshot.Exec("CREATE TABLE other (id INTEGER PRIMARY KEY)").Error)

	summary, err := reconcile.Reconcile(primary, snapshot, reconcile.ModeRecover, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted())
	assert.Equal(t, 0, summary.Updated())
	assert.Equal(t, "USD", queryCurrency(t, primary, "a"))
}

func TestReconcile_CompositeKeys(t *testing.T) {
	const ddl = "CREATE TABLE ledger (account TEXT, seq INTEGER, amount TEXT, PRIMARY KEY (account, seq))"

	primary := newMemoryDB(t)
	snapshot := newMemoryDB(t)
	require.NoError(t, primary.Exec(ddl).Error)
	require.NoError(t, snapshot.Exec(ddl).Error)

	require.NoError(t, primary.Exec("INSERT INTO ledger VALUES ('a', 1, '1.00')").Error)
	require.NoError(t, primary.Exec("INSERT INTO ledger VALUES ('a', 2, '2.00')").Error)
	require.NoError(t, snapshot.Exec("INSERT INTO ledger VALUES ('a', 2, '9.00')").Error)

	_, err := reconcile.Reconcile(primary, snapshot, reconcile.ModeRecover, nil)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, primary.Table("ledger").Order("seq").Find(&rows).Error)
	require.Len(t, rows, 2)
	// (a, 1) untouched, only (a, 2) rewritten.
	assert.Equal(t, "1.00", rows[0]["amount"])
	assert.Equal(t, "9.00", rows[1]["amount"])
}

func TestReconcile_InvalidMode(t *testing.T) {
	primary := newMemoryDB(t)
	snapshot := newMemoryDB(t)

	_, err := reconcile.Reconcile(primary, snapshot, reconcile.Mode("sideways"), nil)
	assert.ErrorIs(t, err, reconcile.ErrInvalidMode)
}

func TestParseMode(t *testing.T) {
	mode, err := reconcile.ParseMode("recover")
	require.NoError(t, err)
	assert.Equal(t, reconcile.ModeRecover, mode)

	mode, err = reconcile.ParseMode("import")
	require.NoError(t, err)
	assert.Equal(t, reconcile.ModeImport, mode)

	_, err = reconcile.ParseMode("merge")
	assert.ErrorIs(t, err, reconcile.ErrInvalidMode)
}

func TestReconcileFile_RemovesSnapshotOnSuccess(t *testing.T) {
	primary := newMemoryDB(t)
	require.NoError(t, primary.Exec(usersDDL).Error)

	path, snapshot := newSnapshotFile(t)
	require.NoError(t, snapshot.Exec(usersDDL).Error)
	require.NoError(t, snapshot.Exec("INSERT INTO kofi_users VALUES ('x', 'EUR', 10)").Error)
	require.NoError(t, database.Close(snapshot))

	summary, err := reconcile.ReconcileFile(primary, path, reconcile.ModeImport, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "snapshot file must be deleted after a successful merge")
}

func TestReconcileFile_MalformedSnapshot(t *testing.T) {
	primary := newMemoryDB(t)
	require.NoError(t, primary.Exec(usersDDL).Error)
	require.NoError(t, primary.Exec("INSERT INTO kofi_users VALUES ('a', 'USD', 10)").Error)

	path := filepath.Join(t.TempDir(), "garbage.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a database"), 0o600))

	_, err := reconcile.ReconcileFile(primary, path, reconcile.ModeRecover, nil)
	require.Error(t, err)

	var snapErr *reconcile.SnapshotError
	assert.True(t, errors.As(err, &snapErr))

	// Primary stays completely unmodified and the upload stays on disk.
	assert.Equal(t, "USD", queryCurrency(t, primary, "a"))
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
