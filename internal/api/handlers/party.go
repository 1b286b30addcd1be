package handlers

import "github.com/m04kA/PartyVenue-BookingService/internal/domain"

// PartyDetailsRequest данные праздника из формы бронирования.
// Правила, зависящие от пакета, проверяет сервис расчета.
type PartyDetailsRequest struct {
	CelebrantName string `json:"celebrantName" validate:"required,max=200"`
	CelebrantAge  *int   `json:"celebrantAge,omitempty" validate:"omitempty,gte=0,lte=120"`
	BirthDate     string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`

	MotherName  string `json:"motherName,omitempty" validate:"max=200"`
	MotherPhone string `json:"motherPhone,omitempty" validate:"max=50"`
	FatherName  string `json:"fatherName,omitempty" validate:"max=200"`
	FatherPhone string `json:"fatherPhone,omitempty" validate:"max=50"`
	Address     string `json:"address,omitempty" validate:"max=500"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`

	ChildrenCount int `json:"childrenCount" validate:"gte=0,lte=500"`
	AdultsCount   int `json:"adultsCount" validate:"gte=0,lte=500"`

	Package string `json:"package" validate:"required"`
	Theme   string `json:"theme,omitempty" validate:"max=200"`
	Notes   string `json:"notes,omitempty" validate:"max=2000"`

	SignatureDate string `json:"signatureDate" validate:"required,datetime=2006-01-02"`
	SignaturePNG  string `json:"signaturePng" validate:"required,startswith=data:image/png;base64"`

	ConsentPrivacy bool `json:"consentPrivacy"`
	ConsentPhoto   bool `json:"consentPhoto"`

	Deposit string `json:"deposit,omitempty" validate:"max=100"`

	CustomPackageDetails string `json:"customPackageDetails,omitempty" validate:"max=2000"`
	CateringBaby         string `json:"cateringBaby,omitempty"`
	CakeChoice           string `json:"cakeChoice,omitempty"`
	CakeType             string `json:"cakeType,omitempty"`
	CakeFlavor           string `json:"cakeFlavor,omitempty" validate:"max=200"`
	DessertKids          string `json:"dessertKids,omitempty"`
	DessertAdults        string `json:"dessertAdults,omitempty"`

	Extras []string `json:"extras,omitempty" validate:"max=20"`
}

// ToDomain конвертирует запрос в доменную модель
func (r *PartyDetailsRequest) ToDomain() domain.PartyDetails {
	return domain.PartyDetails{
		CelebrantName:        r.CelebrantName,
		CelebrantAge:         r.CelebrantAge,
		BirthDate:            r.BirthDate,
		MotherName:           r.MotherName,
		MotherPhone:          r.MotherPhone,
		FatherName:           r.FatherName,
		FatherPhone:          r.FatherPhone,
		Address:              r.Address,
		Email:                r.Email,
		ChildrenCount:        r.ChildrenCount,
		AdultsCount:          r.AdultsCount,
		Package:              r.Package,
		Theme:                r.Theme,
		Notes:                r.Notes,
		SignatureDate:        r.SignatureDate,
		SignaturePNG:         r.SignaturePNG,
		ConsentPrivacy:       r.ConsentPrivacy,
		ConsentPhoto:         r.ConsentPhoto,
		Deposit:              r.Deposit,
		CustomPackageDetails: r.CustomPackageDetails,
		CateringBaby:         r.CateringBaby,
		CakeChoice:           r.CakeChoice,
		CakeType:             r.CakeType,
		CakeFlavor:           r.CakeFlavor,
		DessertKids:          r.DessertKids,
		DessertAdults:        r.DessertAdults,
		Extras:               r.Extras,
	}
}
