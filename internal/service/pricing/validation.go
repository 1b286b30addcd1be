package pricing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

// normalize проверяет данные праздника и приводит выбор к виду, допустимому для пакета.
// Возвращает копию; входная структура не меняется.
func (s *Service) normalize(in domain.PartyDetails) (domain.PartyDetails, error) {
	d := in
	trimDetails(&d)

	// 1. Согласие и подпись
	if !d.ConsentPrivacy {
		return d, fieldError(FieldConsentPrivacy, "privacy consent is required")
	}
	if d.SignatureDate == "" {
		return d, fieldError(FieldSignatureDate, "signature date is required")
	}
	if !strings.HasPrefix(d.SignaturePNG, domain.SignatureDataURLPrefix) {
		return d, fieldError(FieldSignaturePNG, "signature must be a PNG data URL")
	}

	// 2. Празднующий и гости
	if d.CelebrantName == "" {
		return d, fieldError(FieldCelebrantName, "celebrant name is required")
	}
	if utf8.RuneCountInString(d.CelebrantName) > domain.MaxCelebrantNameLength {
		return d, fieldError(FieldCelebrantName,
			fmt.Sprintf("must be at most %d characters", domain.MaxCelebrantNameLength))
	}
	if d.CelebrantAge != nil && *d.CelebrantAge < 0 {
		return d, fieldError(FieldCelebrantAge, "must not be negative")
	}
	if d.ChildrenCount < 0 || d.AdultsCount < 0 {
		return d, fieldError(FieldGuests, "guest counts must not be negative")
	}
	if d.Persons() > domain.MaxGuestsCount {
		return d, fieldError(FieldGuests, fmt.Sprintf("at most %d guests", domain.MaxGuestsCount))
	}
	if utf8.RuneCountInString(d.Notes) > domain.MaxNotesLength {
		return d, fieldError(FieldNotes, fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}

	// 3. Пакет и выбор внутри пакета
	code := domain.PackageCode(d.Package)
	if _, ok := s.catalog.Package(code); !ok {
		return d, fieldError(FieldPackage, fmt.Sprintf("unknown package %q", d.Package))
	}

	var err error
	switch code {
	case domain.PackageCustom:
		err = s.normalizeCustom(&d)
	case domain.PackageExperience:
		err = s.normalizeExperience(&d)
	case domain.PackageAllInclusive:
		err = s.normalizeAllInclusive(&d)
	default:
		clearChoices(&d)
	}
	if err != nil {
		return d, err
	}

	// 4. Доп. услуги: только разрешенные для пакета, в порядке каталога
	d.Extras = s.catalog.SortedExtraKeys(code, d.Extras)

	return d, nil
}

func (s *Service) normalizeCustom(d *domain.PartyDetails) error {
	if d.CustomPackageDetails == "" {
		return fieldError(FieldCustomPackageDetails, "details are required for a custom package")
	}
	clearChoices(d)
	return nil
}

func (s *Service) normalizeExperience(d *domain.PartyDetails) error {
	if !s.catalog.HasCatering(d.CateringBaby) {
		return fieldError(FieldCateringBaby, "choose a baby catering option")
	}

	switch d.CakeChoice {
	case domain.CakeExternal:
		d.CakeType = ""
		d.CakeFlavor = ""
	case domain.CakeInternal:
		if err := s.checkCakeType(d, true); err != nil {
			return err
		}
	default:
		return fieldError(FieldCakeChoice, "choose an external or internal cake")
	}

	d.DessertKids = ""
	d.DessertAdults = ""
	d.CustomPackageDetails = ""
	return nil
}

func (s *Service) normalizeAllInclusive(d *domain.PartyDetails) error {
	if d.CateringBaby != "" && !s.catalog.HasCatering(d.CateringBaby) {
		return fieldError(FieldCateringBaby, "unknown baby catering option")
	}
	if d.DessertKids != "" && !s.catalog.HasDessert(d.DessertKids) {
		return fieldError(FieldDessertKids, "unknown dessert")
	}
	if d.DessertAdults != "" && !s.catalog.HasDessert(d.DessertAdults) {
		return fieldError(FieldDessertAdults, "unknown dessert")
	}

	// Торт входит в пакет и всегда делается на месте
	if d.DessertKids == domain.DessertBirthdayCake || d.DessertAdults == domain.DessertBirthdayCake {
		d.CakeChoice = domain.CakeInternal
		if err := s.checkCakeType(d, false); err != nil {
			return err
		}
	} else {
		d.CakeChoice = ""
		d.CakeType = ""
		d.CakeFlavor = ""
	}

	d.CustomPackageDetails = ""
	return nil
}

// checkCakeType проверяет тип торта; для "other" нужен вкус
func (s *Service) checkCakeType(d *domain.PartyDetails, required bool) error {
	if d.CakeType == "" && !required {
		d.CakeFlavor = ""
		return nil
	}
	if !s.catalog.HasCakeType(d.CakeType) {
		return fieldError(FieldCakeType, "choose a cake type")
	}
	if d.CakeType == domain.CakeTypeOther {
		if required && d.CakeFlavor == "" {
			return fieldError(FieldCakeFlavor, "describe the cake flavor")
		}
	} else {
		d.CakeFlavor = ""
	}
	return nil
}

func clearChoices(d *domain.PartyDetails) {
	d.CateringBaby = ""
	d.CakeChoice = ""
	d.CakeType = ""
	d.CakeFlavor = ""
	d.DessertKids = ""
	d.DessertAdults = ""
	if domain.PackageCode(d.Package) != domain.PackageCustom {
		d.CustomPackageDetails = ""
	}
}

func trimDetails(d *domain.PartyDetails) {
	for _, f := range []*string{
		&d.CelebrantName, &d.BirthDate,
		&d.MotherName, &d.MotherPhone, &d.FatherName, &d.FatherPhone,
		&d.Address, &d.Email,
		&d.Package, &d.Theme, &d.Notes,
		&d.SignatureDate, &d.SignaturePNG, &d.Deposit,
		&d.CustomPackageDetails, &d.CateringBaby,
		&d.CakeChoice, &d.CakeType, &d.CakeFlavor,
		&d.DessertKids, &d.DessertAdults,
	} {
		*f = strings.TrimSpace(*f)
	}
	if d.Extras != nil {
		extras := make([]string, 0, len(d.Extras))
		for _, e := range d.Extras {
			if e = strings.TrimSpace(e); e != "" {
				extras = append(extras, e)
			}
		}
		d.Extras = extras
	}
}
