package get_catalog

import (
	"net/http"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
)

type Handler struct {
	provider CatalogProvider
}

func NewHandler(provider CatalogProvider) *Handler {
	return &Handler{provider: provider}
}

// Handle GET /api/v1/catalog
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromDomainCatalog(h.provider.Catalog()))
}
