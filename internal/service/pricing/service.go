package pricing

import (
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/pricing/models"
)

// Service сервис расчета стоимости и текста договора.
// Каталог неизменяем, поэтому сервис безопасен для конкурентного использования.
type Service struct {
	catalog *domain.Catalog
	logger  Logger
}

// NewService создает новый экземпляр сервиса расчета
func NewService(catalog *domain.Catalog, logger Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// Catalog возвращает каталог, с которым работает сервис
func (s *Service) Catalog() *domain.Catalog {
	return s.catalog
}

// Quote проверяет данные праздника и считает стоимость с текстом договора
func (s *Service) Quote(details domain.PartyDetails) (*models.Quote, error) {
	_, quote, err := s.Prepare(details)
	return quote, err
}

// Prepare проверяет и нормализует данные праздника, считает стоимость
// и записывает итог и текст договора в возвращаемую копию данных
func (s *Service) Prepare(details domain.PartyDetails) (domain.PartyDetails, *models.Quote, error) {
	normalized, err := s.normalize(details)
	if err != nil {
		s.logger.Warn("Prepare: invalid party details: %v", err)
		return domain.PartyDetails{}, nil, err
	}

	quote := s.compute(normalized)
	quote.ContractText = s.contractText(normalized)

	normalized.EstimatedTotalCents = quote.TotalCents
	normalized.ContractText = quote.ContractText

	s.logger.Info("Prepare: package=%s, persons=%d, total=%s",
		normalized.Package, quote.Persons, quote.Total)

	return normalized, quote, nil
}

// compute считает строки и итог по нормализованным данным
func (s *Service) compute(d domain.PartyDetails) *models.Quote {
	code := domain.PackageCode(d.Package)
	pkg, _ := s.catalog.Package(code)
	persons := d.Persons()

	quote := &models.Quote{
		Package: d.Package,
		Persons: persons,
		Lines:   make([]models.QuoteLine, 0, 2+len(d.Extras)),
	}

	// Пакет: цена за человека x (дети + взрослые)
	quote.PackageCents = pkg.PricePerPersonCents * int64(persons)
	quote.Lines = append(quote.Lines, models.QuoteLine{
		Kind:       models.LinePackage,
		Key:        string(pkg.Code),
		Label:      pkg.Label,
		Quantity:   persons,
		UnitCents:  pkg.PricePerPersonCents,
		TotalCents: quote.PackageCents,
	})

	// Торт оплачивается отдельно только в пакете Experience
	if code == domain.PackageExperience {
		if line, ok := s.cakeLine(d.CakeChoice, persons); ok {
			quote.CakeCents = line.TotalCents
			quote.Lines = append(quote.Lines, line)
		}
	}

	for _, key := range d.Extras {
		extra, ok := s.catalog.ExtraFor(code, key)
		if !ok {
			continue
		}
		quote.ExtrasCents += extra.PriceCents
		quote.Lines = append(quote.Lines, models.QuoteLine{
			Kind:       models.LineExtra,
			Key:        extra.Key,
			Label:      extra.Label,
			Quantity:   1,
			UnitCents:  extra.PriceCents,
			TotalCents: extra.PriceCents,
		})
	}

	quote.TotalCents = quote.PackageCents + quote.CakeCents + quote.ExtrasCents
	quote.Total = models.FormatEUR(quote.TotalCents)
	return quote
}

func (s *Service) cakeLine(choice string, persons int) (models.QuoteLine, bool) {
	cake := s.catalog.Cake()

	switch choice {
	case domain.CakeExternal:
		return models.QuoteLine{
			Kind:       models.LineCake,
			Key:        domain.CakeExternal,
			Label:      "External cake service",
			Quantity:   persons,
			UnitCents:  cake.ExternalServicePerPersonCents,
			TotalCents: cake.ExternalServicePerPersonCents * int64(persons),
		}, true
	case domain.CakeInternal:
		return models.QuoteLine{
			Kind:       models.LineCake,
			Key:        domain.CakeInternal,
			Label:      "Cake by weight",
			Quantity:   persons,
			UnitCents:  cake.PricePerKgCents,
			TotalCents: InternalCakeCents(cake, persons),
		}, true
	default:
		return models.QuoteLine{}, false
	}
}

// InternalCakeCents стоимость торта по весу: вес округляется до 10 г (0,01 кг),
// сумма до цента, оба раза половина вверх
func InternalCakeCents(cake domain.CakePricing, persons int) int64 {
	grams := int64(persons) * cake.GramsPerPerson
	decagrams := (grams + 5) / 10
	return (decagrams*cake.PricePerKgCents + 50) / 100
}
