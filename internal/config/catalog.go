package config

import (
	"fmt"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

// CatalogConfig переопределение цен стандартного каталога; суммы в центах
type CatalogConfig struct {
	PackagePrices map[string]int64 `toml:"package_prices"`
	ExtraPrices   map[string]int64 `toml:"extra_prices"`
	Cake          CakeConfig       `toml:"cake"`
}

// CakeConfig переопределение цен торта; 0 - оставить стандартное значение
type CakeConfig struct {
	PricePerKgCents               int64 `toml:"price_per_kg_cents"`
	GramsPerPerson                int64 `toml:"grams_per_person"`
	ExternalServicePerPersonCents int64 `toml:"external_service_per_person_cents"`
}

func (c CatalogConfig) validate() error {
	base := domain.DefaultCatalog()

	for code, price := range c.PackagePrices {
		if _, ok := base.Package(domain.PackageCode(code)); !ok {
			return fmt.Errorf("%w: catalog.package_prices: unknown package %q", ErrInvalidConfig, code)
		}
		if price < 0 {
			return fmt.Errorf("%w: catalog.package_prices.%s must not be negative", ErrInvalidConfig, code)
		}
	}

	known := make(map[string]bool)
	for _, e := range base.AllExtras() {
		known[e.Key] = true
	}
	for key, price := range c.ExtraPrices {
		if !known[key] {
			return fmt.Errorf("%w: catalog.extra_prices: unknown extra %q", ErrInvalidConfig, key)
		}
		if price < 0 {
			return fmt.Errorf("%w: catalog.extra_prices.%s must not be negative", ErrInvalidConfig, key)
		}
	}

	if c.Cake.PricePerKgCents < 0 || c.Cake.GramsPerPerson < 0 || c.Cake.ExternalServicePerPersonCents < 0 {
		return fmt.Errorf("%w: catalog.cake values must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Build собирает каталог: стандартные цены с примененными переопределениями
func (c CatalogConfig) Build() *domain.Catalog {
	data := domain.DefaultCatalog().Data()

	for i, p := range data.Packages {
		if price, ok := c.PackagePrices[string(p.Code)]; ok {
			data.Packages[i].PricePerPersonCents = price
		}
	}
	for i, e := range data.Extras {
		if price, ok := c.ExtraPrices[e.Key]; ok {
			data.Extras[i].PriceCents = price
		}
	}
	if c.Cake.PricePerKgCents > 0 {
		data.Cake.PricePerKgCents = c.Cake.PricePerKgCents
	}
	if c.Cake.GramsPerPerson > 0 {
		data.Cake.GramsPerPerson = c.Cake.GramsPerPerson
	}
	if c.Cake.ExternalServicePerPersonCents > 0 {
		data.Cake.ExternalServicePerPersonCents = c.Cake.ExternalServicePerPersonCents
	}

	return domain.NewCatalog(data)
}
