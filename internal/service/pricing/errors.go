package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidDetails возвращается, когда данные праздника не проходят проверку
var ErrInvalidDetails = errors.New("pricing: invalid party details")

// Поля, по которым возвращается FieldError
const (
	FieldConsentPrivacy       = "consent_privacy"
	FieldSignatureDate        = "signature_date"
	FieldSignaturePNG         = "signature_png"
	FieldCelebrantName        = "celebrant_name"
	FieldCelebrantAge         = "celebrant_age"
	FieldGuests               = "guests"
	FieldNotes                = "notes"
	FieldPackage              = "package"
	FieldCustomPackageDetails = "custom_package_details"
	FieldCateringBaby         = "catering_baby"
	FieldCakeChoice           = "cake_choice"
	FieldCakeType             = "cake_type"
	FieldCakeFlavor           = "cake_flavor"
	FieldDessertKids          = "dessert_kids"
	FieldDessertAdults        = "dessert_adults"
)

// FieldError ошибка проверки конкретного поля; errors.Is сопоставляет её с ErrInvalidDetails
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidDetails, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidDetails
}

func fieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}
