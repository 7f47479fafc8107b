package admin

import (
	"donation-manager/core/logger"
	"donation-manager/core/middleware/auth"
	kofimodels "donation-manager/feature/kofi/models"
	usermodels "donation-manager/feature/user/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler exposes raw table listings for operators.
type Handler struct {
	db       *gorm.DB
	adminKey string
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(db *gorm.DB, adminKey string, logger *zap.Logger) *Handler {
	return &Handler{db: db, adminKey: adminKey, logger: logger.Named("admin")}
}

// RegisterRoutes registers the admin-guarded debug routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/admin/db", auth.New(auth.Config{AdminKey: h.adminKey}))
	group.Get("/transactions", h.HandleTransactions)
	group.Get("/users", h.HandleUsers)
}

// HandleTransactions lists every stored transaction.
// @Summary List All Transactions
// @Description Returns the raw kofi_transactions table.
// @Tags admin
// @Produce json
// @Param admin_secret_key query string true "Admin secret key"
// @Success 200 {array} models.Transaction
// @Failure 401 {object} map[string]string "Invalid admin secret key"
// @Router /admin/db/transactions [get]
func (h *Handler) HandleTransactions(c *fiber.Ctx) error {
	var transactions []kofimodels.Transaction
	if err := h.db.Find(&transactions).Error; err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to list transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list transactions"})
	}
	return c.JSON(transactions)
}

// HandleUsers lists every stored user.
// @Summary List All Users
// @Description Returns the raw kofi_users table.
// @Tags admin
// @Produce json
// @Param admin_secret_key query string true "Admin secret key"
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string "Invalid admin secret key"
// @Router /admin/db/users [get]
func (h *Handler) HandleUsers(c *fiber.Ctx) error {
	var users []usermodels.User
	if err := h.db.Find(&users).Error; err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
	}
	return c.JSON(users)
}
