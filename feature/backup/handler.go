package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"donation-manager/core/logger"
	"donation-manager/core/middleware/auth"
	"donation-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for database export and reconciliation.
type Handler struct {
	service  *Service
	adminKey string
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, adminKey string) *Handler {
	return &Handler{service: service, adminKey: adminKey}
}

// RegisterRoutes registers the admin-guarded database routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/db", auth.New(auth.Config{AdminKey: h.adminKey}))
	group.Get("/export", h.HandleExport)
	group.Post("/recover", h.HandleRecover)
	group.Post("/import", h.HandleImport)
	group.Get("/backups", h.HandleBackups)
}

// HandleExport serves a snapshot of the live database.
// @Summary Export Database
// @Description Downloads a snapshot of the live database.
// @Tags db
// @Produce octet-stream
// @Param admin_secret_key query string true "Admin secret key"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string "Invalid admin secret key"
// @Router /db/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filename, content, err := h.service.Export(c.UserContext())
	if err != nil {
		l.Error("Failed to export database", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export database"})
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Set(fiber.HeaderContentType, "application/octet-stream")
	return c.Send(content)
}

// HandleRecover merges an uploaded database, overwriting differing values.
// @Summary Recover Database
// @Description Merges an uploaded database into the primary, overwriting differing values.
// @Tags db
// @Accept mpfd
// @Produce json
// @Param admin_secret_key query string true "Admin secret key"
// @Param file formData file true "Database file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Missing or invalid upload"
// @Failure 401 {object} map[string]string "Invalid admin secret key"
// @Router /db/recover [post]
func (h *Handler) HandleRecover(c *fiber.Ctx) error {
	return h.handleUpload(c, reconcile.ModeRecover)
}

// HandleImport merges an uploaded database, filling only missing values.
// @Summary Import Database
// @Description Merges an uploaded database into the primary, filling only missing values.
// @Tags db
// @Accept mpfd
// @Produce json
// @Param admin_secret_key query string true "Admin secret key"
// @Param file formData file true "Database file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Missing or invalid upload"
// @Failure 401 {object} map[string]string "Invalid admin secret key"
// @Router /db/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	return h.handleUpload(c, reconcile.ModeImport)
}

func (h *Handler) handleUpload(c *fiber.Ctx, mode reconcile.Mode) error {
	l := logger.WithRayID(h.service.logger, c)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file upload"})
	}

	path := filepath.Join(os.TempDir(),
		fmt.Sprintf("upload_%s_%s", uuid.NewString(), filepath.Base(file.Filename)))
	if err := c.SaveFile(file, path); err != nil {
		l.Error("Failed to persist upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to persist upload"})
	}

	summary, err := h.service.Reconcile(path, mode)
	if err != nil {
		var snapshotErr *reconcile.SnapshotError
		if errors.As(err, &snapshotErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Uploaded file is not a readable database"})
		}
		l.Error("Failed to reconcile database",
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to %s database", mode)})
	}

	l.Info("Database reconciled",
		zap.String("mode", string(mode)),
		zap.String("filename", file.Filename),
		zap.Int("inserted", summary.Inserted()),
		zap.Int("updated", summary.Updated()),
	)

	verb := "imported"
	if mode == reconcile.ModeRecover {
		verb = "recovered"
	}
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Database %s from %s", verb, file.Filename),
		"inserted": summary.Inserted(),
		"updated":  summary.Updated(),
	})
}

// HandleBackups lists archived exports.
// @Summary List Backups
// @Description Lists the exports archived in object storage.
// @Tags db
// @Produce json
// @Param admin_secret_key query string true "Admin secret key"
// @Success 200 {array} backup.Archive
// @Failure 401 {object} map[string]string "Invalid admin secret key"
// @Failure 503 {object} map[string]string "Archiving is not configured"
// @Router /db/backups [get]
func (h *Handler) HandleBackups(c *fiber.Ctx) error {
	archives, err := h.service.ListArchives(c.UserContext())
	if err != nil {
		if errors.Is(err, ErrArchiveDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Archiving is not configured"})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to list archives", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list archives"})
	}
	return c.JSON(archives)
}
