package get_catalog

import "github.com/m04kA/PartyVenue-BookingService/internal/domain"

type CatalogProvider interface {
	Catalog() *domain.Catalog
}
