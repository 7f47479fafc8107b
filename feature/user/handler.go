package user

import (
	"errors"

	"donation-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for user management.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the user routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/user")
	group.Post("/:verification_token", h.HandleCreate)
	group.Get("/:verification_token", h.HandleGet)
	group.Patch("/:verification_token", h.HandleUpdate)
	group.Delete("/:verification_token", h.HandleDelete)
}

// HandleCreate creates a user record.
// @Summary Create User
// @Description Creates a user record for a verification token.
// @Tags user
// @Produce json
// @Param verification_token path string true "Verification token"
// @Param data_retention_days query int false "Retention window in days"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "User already exists"
// @Router /user/{verification_token} [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	token := c.Params("verification_token")

	user, err := h.service.Create(token, c.QueryInt("data_retention_days"))
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
		}
		l.Error("Failed to create user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	l.Info("User created", zap.String("verification_token", token))
	return c.JSON(user)
}

// HandleGet returns a user record.
// @Summary Get User
// @Description Looks a user up by verification token.
// @Tags user
// @Produce json
// @Param verification_token path string true "Verification token"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "Invalid verification token"
// @Router /user/{verification_token} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	user, err := h.service.Get(c.Params("verification_token"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid verification token"})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to load user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load user"})
	}
	return c.JSON(user)
}

// HandleUpdate patches a user record.
// @Summary Update User
// @Description Updates retention, latest-request timestamp or preferred currency.
// @Tags user
// @Produce json
// @Param verification_token path string true "Verification token"
// @Param days query int false "Retention window in days"
// @Param latest_request_at query string false "Latest request timestamp"
// @Param preferred_currency query string false "Preferred display currency"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "Invalid verification token"
// @Router /user/{verification_token} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	params := UpdateParams{}
	if days := c.QueryInt("days"); days > 0 {
		params.RetentionDays = &days
	}
	if at := c.Query("latest_request_at"); at != "" {
		params.LatestRequestAt = &at
	}
	if currency := c.Query("preferred_currency"); currency != "" {
		params.PreferredCurrency = &currency
	}

	user, err := h.service.Update(c.Params("verification_token"), params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid verification token"})
		}
		l.Error("Failed to update user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}
	return c.JSON(user)
}

// HandleDelete removes a user record.
// @Summary Delete User
// @Description Deletes a user, optionally cascading to their transactions.
// @Tags user
// @Produce json
// @Param verification_token path string true "Verification token"
// @Param include_transactions query boolean false "Also delete the user's transactions (default true)"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Invalid verification token"
// @Router /user/{verification_token} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	token := c.Params("verification_token")
	includeTransactions := c.Query("include_transactions", "true") != "false"

	if err := h.service.Delete(token, includeTransactions); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid verification token"})
		}
		l.Error("Failed to delete user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	l.Info("User deleted",
		zap.String("verification_token", token),
		zap.Bool("include_transactions", includeTransactions),
	)
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
