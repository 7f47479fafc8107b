package backup_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"donation-manager/core/database"
	"donation-manager/core/storage"
	"donation-manager/core/storage/mocks"
	"donation-manager/feature/backup"
	kofimodels "donation-manager/feature/kofi/models"
	usermodels "donation-manager/feature/user/models"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const adminKey = "test-secret"

func openFileDB(t *testing.T) (*gorm.DB, database.Config) {
	t.Helper()
	cfg := database.Config{
		Driver: "sqlite",
		Name:   filepath.Join(t.TempDir(), "primary.db"),
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usermodels.User{}, &kofimodels.Transaction{}))
	return db, cfg
}

func setupTestApp(t *testing.T, db *gorm.DB, cfg database.Config, store storage.Client) *fiber.App {
	t.Helper()
	svc := backup.NewService(db, cfg, store, "backups", "Ko-fi API", zap.NewNop())
	app := fiber.New()
	require.NoError(t, backup.NewFeature(svc, adminKey).Load(app))
	return app
}

func TestRoutesRequireAdminKey(t *testing.T) {
	db, cfg := openFileDB(t)
	app := setupTestApp(t, db, cfg, nil)

	for _, route := range []struct{ method, path string }{
		{"GET", "/db/export"},
		{"POST", "/db/recover"},
		{"POST", "/db/import"},
		{"GET", "/db/backups"},
	} {
		resp, err := app.Test(httptest.NewRequest(route.method, route.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, route.path)

		resp, err = app.Test(httptest.NewRequest(
			route.method, route.path+"?admin_secret_key=wrong", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, route.path)
	}
}

func TestHandleExport_FileBacked(t *testing.T) {
	db, cfg := openFileDB(t)
	require.NoError(t, db.Create(&usermodels.User{VerificationToken: "tok-1"}).Error)
	app := setupTestApp(t, db, cfg, nil)

	// The header credential works as well as the query parameter.
	req := httptest.NewRequest("GET", "/db/export", nil)
	req.Header.Set("X-Admin-Key", adminKey)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Ko-fi API_export_")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	onDisk, err := os.ReadFile(cfg.Name)
	require.NoError(t, err)
	assert.Equal(t, onDisk, body)
}

func TestHandleExport_Dump(t *testing.T) {
	cfg := database.Config{Driver: "sqlite", Name: ":memory:"}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usermodels.User{}))
	require.NoError(t, db.Create(&usermodels.User{
		VerificationToken: "tok-1",
		PreferredCurrency: "EUR",
	}).Error)
	app := setupTestApp(t, db, cfg, nil)

	resp, err := app.Test(httptest.NewRequest(
		"GET", "/db/export?admin_secret_key="+adminKey, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "INSERT INTO kofi_users")
	assert.Contains(t, string(body), "'tok-1'")
}

func TestHandleExport_Archives(t *testing.T) {
	db, cfg := openFileDB(t)
	store := &mocks.Client{}
	store.On("BucketExists", mock.Anything, "backups").Return(false, nil)
	store.On("MakeBucket", mock.Anything, "backups", mock.Anything).Return(nil)
	store.On("PutObject", mock.Anything, "backups",
		mock.MatchedBy(func(key string) bool {
			return filepath.Dir(key) == "backups"
		}),
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
	app := setupTestApp(t, db, cfg, store)

	resp, err := app.Test(httptest.NewRequest(
		"GET", "/db/export?admin_secret_key="+adminKey, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	store.AssertExpectations(t)
}

func multipartUpload(t *testing.T, path, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func snapshotBytes(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: path})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usermodels.User{}))
	require.NoError(t, db.Create(&usermodels.User{
		VerificationToken: "tok-1",
		DataRetentionDays: 30,
		PreferredCurrency: "EUR",
	}).Error)
	require.NoError(t, database.Close(db))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return content
}

func TestHandleRecover(t *testing.T) {
	db, cfg := openFileDB(t)
	require.NoError(t, db.Create(&usermodels.User{
		VerificationToken: "tok-1",
		DataRetentionDays: 10,
		PreferredCurrency: "USD",
	}).Error)
	app := setupTestApp(t, db, cfg, nil)

	snapshot := snapshotBytes(t)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "snapshot.db")
	require.NoError(t, err)
	_, err = part.Write(snapshot)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/db/recover?admin_secret_key="+adminKey, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, int(30*time.Second.Milliseconds()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "Database recovered from snapshot.db", result["message"])

	var recovered usermodels.User
	require.NoError(t, db.First(&recovered, "verification_token = ?", "tok-1").Error)
	assert.Equal(t, 30, recovered.DataRetentionDays)
	assert.Equal(t, "EUR", recovered.PreferredCurrency)
}

func TestHandleImport_MissingFile(t *testing.T) {
	db, cfg := openFileDB(t)
	app := setupTestApp(t, db, cfg, nil)

	resp, err := app.Test(httptest.NewRequest(
		"POST", "/db/import?admin_secret_key="+adminKey, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleImport_MalformedUpload(t *testing.T) {
	db, cfg := openFileDB(t)
	require.NoError(t, db.Create(&usermodels.User{VerificationToken: "tok-1"}).Error)
	app := setupTestApp(t, db, cfg, nil)

	body, contentType := multipartUpload(t, "garbage.db", "this is not a database")
	req := httptest.NewRequest("POST", "/db/import?admin_secret_key="+adminKey, body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, int(30*time.Second.Milliseconds()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The primary is untouched.
	var count int64
	require.NoError(t, db.Model(&usermodels.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHandleBackups(t *testing.T) {
	db, cfg := openFileDB(t)
	store := &mocks.Client{}
	now := time.Now().UTC()
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "backups/Ko-fi API_export_1.db", Size: 42, LastModified: now}
	ch <- minio.ObjectInfo{Key: "backups/Ko-fi API_export_2.db", Size: 43, LastModified: now}
	close(ch)
	store.On("ListObjects", mock.Anything, "backups", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))
	app := setupTestApp(t, db, cfg, store)

	resp, err := app.Test(httptest.NewRequest(
		"GET", "/db/backups?admin_secret_key="+adminKey, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var archives []backup.Archive
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&archives))
	require.Len(t, archives, 2)
	assert.Equal(t, "Ko-fi API_export_1.db", archives[0].Name)
	assert.Equal(t, int64(42), archives[0].Size)
}

func TestHandleBackups_Disabled(t *testing.T) {
	db, cfg := openFileDB(t)
	app := setupTestApp(t, db, cfg, nil)

	resp, err := app.Test(httptest.NewRequest(
		"GET", "/db/backups?admin_secret_key="+adminKey, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
