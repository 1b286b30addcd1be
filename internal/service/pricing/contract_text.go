package pricing

import (
	"fmt"
	"strings"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/pricing/models"
)

const notDefined = "(to be defined)"

// contractText собирает текст договора по нормализованным данным.
// Текст сохраняется вместе с бронированием и не пересчитывается при смене каталога.
func (s *Service) contractText(d domain.PartyDetails) string {
	code := domain.PackageCode(d.Package)
	pkg, _ := s.catalog.Package(code)

	var b strings.Builder

	if code == domain.PackageCustom {
		fmt.Fprintf(&b, "PACKAGE: %s\n", pkg.Label)
		b.WriteString("\nCUSTOM DETAILS:\n")
		b.WriteString(d.CustomPackageDetails)
		return b.String()
	}

	fmt.Fprintf(&b, "PACKAGE: %s - %s per person\n", pkg.Label, models.FormatEUR(pkg.PricePerPersonCents))

	// Что входит
	b.WriteString("\nINCLUDES:\n")
	writeItems(&b, pkg.Includes)
	if code == domain.PackageExperience || code == domain.PackageAllInclusive {
		label := notDefined
		if d.CateringBaby != "" {
			label = domain.OptionLabel(s.catalog.CateringOptions(), d.CateringBaby)
		}
		fmt.Fprintf(&b, "- Baby catering: %s\n", label)
	}
	if code == domain.PackageAllInclusive {
		fmt.Fprintf(&b, "- Kids dessert: %s\n", s.dessertLabel(d.DessertKids))
		fmt.Fprintf(&b, "- Adults dessert: %s\n", s.dessertLabel(d.DessertAdults))
	}

	// Что не входит
	if len(pkg.Excludes) > 0 {
		b.WriteString("\nNOT INCLUDED:\n")
		writeItems(&b, pkg.Excludes)
	}

	// Торт
	if section := s.cakeSection(code, d); section != "" {
		b.WriteString("\n")
		b.WriteString(section)
	}

	// Выбранные доп. услуги
	if len(d.Extras) > 0 {
		b.WriteString("\nEXTRAS (selected):\n")
		var total int64
		for _, key := range d.Extras {
			extra, ok := s.catalog.ExtraFor(code, key)
			if !ok {
				continue
			}
			total += extra.PriceCents
			fmt.Fprintf(&b, "- %s %s\n", extra.Label, models.FormatEUR(extra.PriceCents))
		}
		fmt.Fprintf(&b, "Extras total: %s\n", models.FormatEUR(total))
	}

	// Правила
	rules := pkg.Rules
	if code == domain.PackageExperience && d.CakeChoice != domain.CakeExternal {
		rules = nil
	}
	b.WriteString("\nIMPORTANT NOTES (RULES):\n")
	writeItems(&b, rules)
	writeItems(&b, venueRules)

	return strings.TrimRight(b.String(), "\n")
}

// venueRules правила площадки, общие для всех пакетов
var venueRules = []string{
	"Non-slip socks are mandatory for every child using the play area",
	"High heels are not allowed on the play area floor",
	"Shoe covers are mandatory inside the play area (provided by the venue)",
	"Food and drinks are not allowed inside the play area",
}

func (s *Service) cakeSection(code domain.PackageCode, d domain.PartyDetails) string {
	cake := s.catalog.Cake()

	var b strings.Builder
	switch code {
	case domain.PackageExperience:
		if d.CakeChoice == domain.CakeExternal {
			b.WriteString("CAKE (external):\n")
			fmt.Fprintf(&b, "- External cake: +%s per person (cake service)\n",
				models.FormatEUR(cake.ExternalServicePerPersonCents))
			return b.String()
		}
		fmt.Fprintf(&b, "CAKE (%s per kg):\n", models.FormatEUR(cake.PricePerKgCents))
		fmt.Fprintf(&b, "- Internal cake: %s\n", s.cakeTypeLabel(d))
	case domain.PackageAllInclusive:
		if d.CakeChoice != domain.CakeInternal {
			return ""
		}
		b.WriteString("CAKE (included in the package):\n")
		fmt.Fprintf(&b, "- Internal cake: %s\n", s.cakeTypeLabel(d))
	}
	return b.String()
}

func (s *Service) cakeTypeLabel(d domain.PartyDetails) string {
	switch d.CakeType {
	case "":
		return notDefined
	case domain.CakeTypeOther:
		flavor := d.CakeFlavor
		if flavor == "" {
			flavor = notDefined
		}
		return "agreed flavor: " + flavor
	default:
		return domain.OptionLabel(s.catalog.CakeTypes(), d.CakeType)
	}
}

func (s *Service) dessertLabel(key string) string {
	if key == "" {
		return notDefined
	}
	return domain.OptionLabel(s.catalog.Desserts(), key)
}

func writeItems(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
