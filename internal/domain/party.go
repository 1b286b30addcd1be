package domain

// Cake choices for the Experience package
const (
	CakeExternal = "external" // brought by the family, service fee per person
	CakeInternal = "internal" // made by the venue, priced by weight
)

// Internal cake types
const (
	CakeTypeStandard = "standard"
	CakeTypeOther    = "other" // requires a flavor
)

// DessertBirthdayCake dessert choice that implies an internal cake
const DessertBirthdayCake = "birthday_cake"

// PartyDetails is the booking payload: everything about the party itself.
// Allocation passes it through to storage untouched.
type PartyDetails struct {
	CelebrantName string `json:"celebrant_name"`
	CelebrantAge  *int   `json:"celebrant_age,omitempty"`
	BirthDate     string `json:"birth_date,omitempty"`

	MotherName  string `json:"mother_name,omitempty"`
	MotherPhone string `json:"mother_phone,omitempty"`
	FatherName  string `json:"father_name,omitempty"`
	FatherPhone string `json:"father_phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email,omitempty"`

	ChildrenCount int `json:"children_count"`
	AdultsCount   int `json:"adults_count"`

	Package string `json:"package"`
	Theme   string `json:"theme,omitempty"`
	Notes   string `json:"notes,omitempty"`

	SignatureDate string `json:"signature_date,omitempty"`
	SignaturePNG  string `json:"signature_png,omitempty"` // data:image/png;base64,...

	ConsentPrivacy bool `json:"consent_privacy"`
	ConsentPhoto   bool `json:"consent_photo"`

	Deposit string `json:"deposit,omitempty"`

	CustomPackageDetails string `json:"custom_package_details,omitempty"`
	CateringBaby         string `json:"catering_baby,omitempty"`
	CakeChoice           string `json:"cake_choice,omitempty"`
	CakeType             string `json:"cake_type,omitempty"`
	CakeFlavor           string `json:"cake_flavor,omitempty"`
	DessertKids          string `json:"dessert_kids,omitempty"`
	DessertAdults        string `json:"dessert_adults,omitempty"`

	Extras []string `json:"extras,omitempty"`

	EstimatedTotalCents int64  `json:"estimated_total_cents"`
	ContractText        string `json:"contract_text,omitempty"`
}

// Persons total guests counted for per-person pricing
func (p *PartyDetails) Persons() int {
	return p.ChildrenCount + p.AdultsCount
}
