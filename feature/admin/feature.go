package admin

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the admin debug surface into the application.
type Feature struct {
	db       *gorm.DB
	adminKey string
	logger   *zap.Logger
}

// NewFeature creates the admin feature.
func NewFeature(db *gorm.DB, adminKey string, logger *zap.Logger) *Feature {
	return &Feature{db: db, adminKey: adminKey, logger: logger}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "admin" }

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool { return true }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.db, f.adminKey, f.logger).RegisterRoutes(app)
	return nil
}
