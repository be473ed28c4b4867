package public

import "github.com/cartloom/cartloom/internal/provider"

// Handler serves the storefront and guest-facing API.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
