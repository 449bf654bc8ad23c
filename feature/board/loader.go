package board

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"listkit/core/archive"
	"listkit/core/reorder"
	"listkit/core/store"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Board feature. repo and arc may be nil.
func NewFeature(logger *zap.Logger, repo *store.Store, arc *archive.Archive, policy reorder.Policy) *Feature {
	svc := NewService(logger, repo, arc, policy)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "board"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
