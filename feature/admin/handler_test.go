package admin_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"donation-manager/core/database"
	"donation-manager/feature/admin"
	kofimodels "donation-manager/feature/kofi/models"
	usermodels "donation-manager/feature/user/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usermodels.User{}, &kofimodels.Transaction{}))

	app := fiber.New()
	require.NoError(t, admin.NewFeature(db, "test-secret", zap.NewNop()).Load(app))
	return app, db
}

func TestHandleTransactions(t *testing.T) {
	app, db := setupTestApp(t)
	require.NoError(t, db.Create(&kofimodels.Transaction{
		MessageID:         "m1",
		VerificationToken: "tok-1",
		Type:              "Donation",
		Amount:            "1.00",
		Currency:          "USD",
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/db/transactions", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(
		"GET", "/admin/db/transactions?admin_secret_key=test-secret", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var transactions []kofimodels.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&transactions))
	require.Len(t, transactions, 1)
	assert.Equal(t, "m1", transactions[0].MessageID)
}

func TestHandleUsers(t *testing.T) {
	app, db := setupTestApp(t)
	require.NoError(t, db.Create(&usermodels.User{VerificationToken: "tok-1"}).Error)

	resp, err := app.Test(httptest.NewRequest(
		"GET", "/admin/db/users?admin_secret_key=test-secret", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var users []usermodels.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, "tok-1", users[0].VerificationToken)
}
