package kofi

import (
	"encoding/json"
	"errors"

	"donation-manager/core/logger"
	"donation-manager/feature/kofi/models"
	"donation-manager/feature/user"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for donation ingestion and queries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the donation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/webhook", h.HandleWebhook)
	app.Get("/transactions/:verification_token", h.HandleTransactions)
	app.Get("/transactions/:verification_token/:transaction_id", h.HandleTransaction)
	app.Get("/amount/:method/:verification_token", h.HandleAmount)
}

// HandleWebhook ingests a Ko-fi webhook event.
// @Summary Receive Webhook
// @Description Accepts a Ko-fi webhook event posted as a `data` form field.
// @Tags kofi
// @Accept x-www-form-urlencoded
// @Produce json
// @Param data formData string true "JSON transaction payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Malformed or duplicate payload"
// @Router /webhook [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data := c.FormValue("data")
	if data == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing data field"})
	}

	var payload models.WebhookPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		l.Warn("Rejected malformed webhook payload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Malformed JSON payload"})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.service.StoreWebhook(payload); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Transaction already exists"})
		}
		l.Error("Failed to store transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store transaction"})
	}

	return c.JSON(fiber.Map{"message": "Transaction stored successfully"})
}

// HandleTransactions lists a user's transactions.
// @Summary List Transactions
// @Description Returns every stored transaction for a verification token.
// @Tags kofi
// @Produce json
// @Param verification_token path string true "Verification token"
// @Success 200 {array} models.Transaction
// @Failure 404 {object} map[string]string "No transactions found"
// @Router /transactions/{verification_token} [get]
func (h *Handler) HandleTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.Transactions(c.Params("verification_token"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No transactions found"})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to load transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}
	return c.JSON(transactions)
}

// HandleTransaction returns a single transaction.
// @Summary Get Transaction
// @Description Looks a transaction up by verification token and message id.
// @Tags kofi
// @Produce json
// @Param verification_token path string true "Verification token"
// @Param transaction_id path string true "Message id of the transaction"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{verification_token}/{transaction_id} [get]
func (h *Handler) HandleTransaction(c *fiber.Ctx) error {
	transaction, err := h.service.Transaction(
		c.Params("verification_token"), c.Params("transaction_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to load transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transaction"})
	}
	return c.JSON(transaction)
}

// HandleAmount aggregates donation amounts.
// @Summary Aggregate Amounts
// @Description Sums donations for a token over a window and converts them into one currency.
// @Tags kofi
// @Produce json
// @Param method path string true "Aggregation window" Enums(total, recent, latest)
// @Param verification_token path string true "Verification token"
// @Param since query string false "Start of the recent window (ISO 8601)"
// @Param currency query string false "Target currency (defaults to the user's preferred currency)"
// @Success 200 {number} float64
// @Failure 400 {object} map[string]string "Invalid method or since parameter"
// @Failure 404 {object} map[string]string "Invalid verification token"
// @Router /amount/{method}/{verification_token} [get]
func (h *Handler) HandleAmount(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	total, err := h.service.Amount(
		c.UserContext(),
		c.Params("method"),
		c.Params("verification_token"),
		c.Query("since"),
		c.Query("currency"),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMethod):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid method. Expected total, recent or latest"})
		case errors.Is(err, ErrInvalidSince):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid since parameter. Expected ISO 8601 format"})
		case errors.Is(err, user.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid verification token"})
		}
		l.Error("Failed to aggregate amounts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to aggregate amounts"})
	}
	return c.JSON(total)
}
