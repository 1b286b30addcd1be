package get_catalog

import (
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	pricingModels "github.com/m04kA/PartyVenue-BookingService/internal/service/pricing/models"
)

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Packages        []PackageResponse `json:"packages"`
	Extras          []ExtraResponse   `json:"extras"`
	CateringOptions []OptionResponse  `json:"cateringOptions"`
	CakeTypes       []OptionResponse  `json:"cakeTypes"`
	Desserts        []OptionResponse  `json:"desserts"`
	Cake            CakeResponse      `json:"cake"`
}

// PackageResponse пакет с ценой за человека и доступными доп. услугами
type PackageResponse struct {
	Code                string   `json:"code"`
	Label               string   `json:"label"`
	PricePerPersonCents int64    `json:"pricePerPersonCents"`
	PricePerPerson      string   `json:"pricePerPerson"`
	Includes            []string `json:"includes"`
	Excludes            []string `json:"excludes"`
	Rules               []string `json:"rules"`
	Extras              []string `json:"extras"` // ключи доп. услуг, доступных для пакета
}

type ExtraResponse struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	PriceCents int64  `json:"priceCents"`
	Price      string `json:"price"`
}

type OptionResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type CakeResponse struct {
	PricePerKgCents               int64 `json:"pricePerKgCents"`
	GramsPerPerson                int64 `json:"gramsPerPerson"`
	ExternalServicePerPersonCents int64 `json:"externalServicePerPersonCents"`
}

// FromDomainCatalog конвертирует каталог в HTTP response
func FromDomainCatalog(c *domain.Catalog) *CatalogResponse {
	resp := &CatalogResponse{
		CateringOptions: fromOptions(c.CateringOptions()),
		CakeTypes:       fromOptions(c.CakeTypes()),
		Desserts:        fromOptions(c.Desserts()),
	}

	for _, p := range c.Packages() {
		pkg := PackageResponse{
			Code:                string(p.Code),
			Label:               p.Label,
			PricePerPersonCents: p.PricePerPersonCents,
			PricePerPerson:      pricingModels.FormatEUR(p.PricePerPersonCents),
			Includes:            nonNil(p.Includes),
			Excludes:            nonNil(p.Excludes),
			Rules:               nonNil(p.Rules),
			Extras:              []string{},
		}
		for _, e := range c.ExtrasFor(p.Code) {
			pkg.Extras = append(pkg.Extras, e.Key)
		}
		resp.Packages = append(resp.Packages, pkg)
	}

	for _, e := range c.AllExtras() {
		resp.Extras = append(resp.Extras, ExtraResponse{
			Key:        e.Key,
			Label:      e.Label,
			PriceCents: e.PriceCents,
			Price:      pricingModels.FormatEUR(e.PriceCents),
		})
	}

	cake := c.Cake()
	resp.Cake = CakeResponse{
		PricePerKgCents:               cake.PricePerKgCents,
		GramsPerPerson:                cake.GramsPerPerson,
		ExternalServicePerPersonCents: cake.ExternalServicePerPersonCents,
	}

	return resp
}

func fromOptions(options []domain.Option) []OptionResponse {
	result := make([]OptionResponse, 0, len(options))
	for _, o := range options {
		result = append(result, OptionResponse{Key: o.Key, Label: o.Label})
	}
	return result
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
