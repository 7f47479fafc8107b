package user

import (
	"github.com/gofiber/fiber/v2"
)

// Feature wires the user module into the application.
type Feature struct {
	service *Service
}

// NewFeature creates the user feature around an existing service.
func NewFeature(service *Service) *Feature {
	return &Feature{service: service}
}

// Name identifies the feature.
func (f *Feature) Name() string { return "user" }

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool { return true }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
