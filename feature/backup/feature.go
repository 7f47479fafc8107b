package backup

import (
	"github.com/gofiber/fiber/v2"
)

// Feature wires the backup module into the application.
type Feature struct {
	service  *Service
	adminKey string
}

// NewFeature creates the backup feature around an existing service.
func NewFeature(service *Service, adminKey string) *Feature {
	return &Feature{service: service, adminKey: adminKey}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "backup" }

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool { return true }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service, f.adminKey).RegisterRoutes(app)
	return nil
}
