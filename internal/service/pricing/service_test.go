package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/pricing/models"
	"github.com/m04kA/PartyVenue-BookingService/pkg/logger"
)

const testSignature = domain.SignatureDataURLPrefix + "iVBORw0KGgo="

func newTestService() *Service {
	return NewService(domain.DefaultCatalog(), logger.NewNop())
}

func validDetails(pkg domain.PackageCode) domain.PartyDetails {
	return domain.PartyDetails{
		CelebrantName:  "Mia",
		ChildrenCount:  10,
		AdultsCount:    5,
		Package:        string(pkg),
		SignatureDate:  "2024-05-01",
		SignaturePNG:   testSignature,
		ConsentPrivacy: true,
	}
}

func TestService_Quote_ExperienceWithInternalCake(t *testing.T) {
	s := newTestService()

	d := validDetails(domain.PackageExperience)
	d.CateringBaby = "menu_pizza"
	d.CakeChoice = domain.CakeInternal
	d.CakeType = domain.CakeTypeStandard
	d.Extras = []string{"popcorn"}

	quote, err := s.Quote(d)
	require.NoError(t, err)

	assert.Equal(t, 15, quote.Persons)
	assert.Equal(t, int64(30000), quote.PackageCents)
	assert.Equal(t, int64(3600), quote.CakeCents)
	assert.Equal(t, int64(5000), quote.ExtrasCents)
	assert.Equal(t, int64(38600), quote.TotalCents)
	assert.Equal(t, "EUR 386,00", quote.Total)

	require.Len(t, quote.Lines, 3)
	assert.Equal(t, models.LinePackage, quote.Lines[0].Kind)
	assert.Equal(t, models.LineCake, quote.Lines[1].Kind)
	assert.Equal(t, models.LineExtra, quote.Lines[2].Kind)
	assert.Equal(t, "popcorn", quote.Lines[2].Key)
}

func TestService_Quote_ExperienceWithExternalCake(t *testing.T) {
	s := newTestService()

	d := validDetails(domain.PackageExperience)
	d.CateringBaby = "snack_box"
	d.CakeChoice = domain.CakeExternal
	d.CakeType = domain.CakeTypeOther
	d.CakeFlavor = "pistachio"

	normalized, quote, err := s.Prepare(d)
	require.NoError(t, err)

	assert.Equal(t, int64(1500), quote.CakeCents)
	assert.Equal(t, int64(31500), quote.TotalCents)
	assert.Empty(t, normalized.CakeType)
	assert.Empty(t, normalized.CakeFlavor)
	assert.Contains(t, quote.ContractText, "CAKE (external):")
}

func TestService_Quote_AllInclusiveFiltersExtras(t *testing.T) {
	s := newTestService()

	d := validDetails(domain.PackageAllInclusive)
	d.ChildrenCount = 10
	d.AdultsCount = 0
	d.Extras = []string{"popcorn", "soap_bubbles", "unknown"}

	normalized, quote, err := s.Prepare(d)
	require.NoError(t, err)

	assert.Equal(t, []string{"soap_bubbles"}, normalized.Extras)
	assert.Zero(t, quote.CakeCents)
	assert.Equal(t, int64(30000), quote.PackageCents)
	assert.Equal(t, int64(20000), quote.ExtrasCents)
	assert.Equal(t, int64(50000), quote.TotalCents)
}

func TestService_Prepare_AllInclusiveBirthdayCake(t *testing.T) {
	s := newTestService()

	d := validDetails(domain.PackageAllInclusive)
	d.DessertKids = domain.DessertBirthdayCake
	d.DessertAdults = "muffin"

	normalized, quote, err := s.Prepare(d)
	require.NoError(t, err)

	assert.Equal(t, domain.CakeInternal, normalized.CakeChoice)
	assert.Zero(t, quote.CakeCents)
	assert.Contains(t, quote.ContractText, "CAKE (included in the package):")
	assert.Contains(t, quote.ContractText, "- Internal cake: (to be defined)")

	d.DessertKids = "muffin"
	d.CakeChoice = domain.CakeExternal
	d.CakeType = domain.CakeTypeStandard
	normalized, _, err = s.Prepare(d)
	require.NoError(t, err)
	assert.Empty(t, normalized.CakeChoice)
	assert.Empty(t, normalized.CakeType)
}

func TestService_Prepare_FillsTotalAndContract(t *testing.T) {
	s := newTestService()

	d := validDetails(domain.PackageDIY)
	d.CelebrantName = "  Mia  "
	d.CateringBaby = "menu_pizza"
	d.Extras = []string{"entertainer", "cotton_candy", "entertainer"}

	normalized, quote, err := s.Prepare(d)
	require.NoError(t, err)

	assert.Equal(t, "Mia", normalized.CelebrantName)
	assert.Empty(t, normalized.CateringBaby)
	assert.Equal(t, []string{"cotton_candy", "entertainer"}, normalized.Extras)
	assert.Equal(t, quote.TotalCents, normalized.EstimatedTotalCents)
	assert.Equal(t, int64(22500+5000+10000), normalized.EstimatedTotalCents)
	assert.Equal(t, quote.ContractText, normalized.ContractText)

	assert.Contains(t, normalized.ContractText, "PACKAGE: Do It Yourself - EUR 15,00 per person")
	assert.Contains(t, normalized.ContractText, "INCLUDES:")
	assert.Contains(t, normalized.ContractText, "NOT INCLUDED:")
	assert.Contains(t, normalized.ContractText, "EXTRAS (selected):")
	assert.Contains(t, normalized.ContractText, "Extras total: EUR 150,00")
	assert.Contains(t, normalized.ContractText, "IMPORTANT NOTES (RULES):")
}

func TestService_Prepare_CustomPackage(t *testing.T) {
	s := newTestService()

	d := validDetails(domain.PackageCustom)
	_, _, err := s.Prepare(d)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, FieldCustomPackageDetails, fieldErr.Field)

	d.CustomPackageDetails = "Garden party with a magician"
	normalized, quote, err := s.Prepare(d)
	require.NoError(t, err)
	assert.Zero(t, quote.TotalCents)
	assert.Contains(t, normalized.ContractText, "CUSTOM DETAILS:\nGarden party with a magician")
	assert.NotContains(t, normalized.ContractText, "INCLUDES:")
}

func TestService_Prepare_Validation(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name   string
		modify func(d *domain.PartyDetails)
		field  string
	}{
		{
			name:   "missing privacy consent",
			modify: func(d *domain.PartyDetails) { d.ConsentPrivacy = false },
			field:  FieldConsentPrivacy,
		},
		{
			name:   "missing signature date",
			modify: func(d *domain.PartyDetails) { d.SignatureDate = " " },
			field:  FieldSignatureDate,
		},
		{
			name:   "signature is not a png data url",
			modify: func(d *domain.PartyDetails) { d.SignaturePNG = "data:image/jpeg;base64,xxx" },
			field:  FieldSignaturePNG,
		},
		{
			name:   "missing celebrant name",
			modify: func(d *domain.PartyDetails) { d.CelebrantName = "" },
			field:  FieldCelebrantName,
		},
		{
			name:   "negative guests",
			modify: func(d *domain.PartyDetails) { d.AdultsCount = -1 },
			field:  FieldGuests,
		},
		{
			name:   "unknown package",
			modify: func(d *domain.PartyDetails) { d.Package = "platinum" },
			field:  FieldPackage,
		},
		{
			name:   "experience without catering",
			modify: func(d *domain.PartyDetails) { d.CateringBaby = "" },
			field:  FieldCateringBaby,
		},
		{
			name:   "experience without cake choice",
			modify: func(d *domain.PartyDetails) { d.CakeChoice = "" },
			field:  FieldCakeChoice,
		},
		{
			name:   "internal cake without type",
			modify: func(d *domain.PartyDetails) { d.CakeType = "" },
			field:  FieldCakeType,
		},
		{
			name: "other cake without flavor",
			modify: func(d *domain.PartyDetails) {
				d.CakeType = domain.CakeTypeOther
				d.CakeFlavor = ""
			},
			field: FieldCakeFlavor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails(domain.PackageExperience)
			d.CateringBaby = "menu_pizza"
			d.CakeChoice = domain.CakeInternal
			d.CakeType = domain.CakeTypeStandard
			tt.modify(&d)

			_, _, err := s.Prepare(d)
			require.ErrorIs(t, err, ErrInvalidDetails)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestService_Prepare_AllInclusiveUnknownDessert(t *testing.T) {
	s := newTestService()

	d := validDetails(domain.PackageAllInclusive)
	d.DessertAdults = "tiramisu"

	_, _, err := s.Prepare(d)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, FieldDessertAdults, fieldErr.Field)
}

func TestInternalCakeCents(t *testing.T) {
	cake := domain.CakePricing{PricePerKgCents: 2400, GramsPerPerson: 100}

	assert.Equal(t, int64(3600), InternalCakeCents(cake, 15))
	assert.Equal(t, int64(0), InternalCakeCents(cake, 0))

	// 7 x 33 г = 231 г -> 0,23 кг -> 5,52
	cake.GramsPerPerson = 33
	assert.Equal(t, int64(552), InternalCakeCents(cake, 7))

	// 5 x 33 г = 165 г -> 0,17 кг (половина вверх) -> 4,08
	assert.Equal(t, int64(408), InternalCakeCents(cake, 5))
}

func TestFormatEUR(t *testing.T) {
	assert.Equal(t, "EUR 365,00", models.FormatEUR(36500))
	assert.Equal(t, "EUR 0,05", models.FormatEUR(5))
	assert.Equal(t, "EUR -1,50", models.FormatEUR(-150))
}
