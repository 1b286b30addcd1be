package domain

import "sort"

// PackageCode identifies a party package
type PackageCode string

const (
	PackageDIY          PackageCode = "diy"
	PackageExperience   PackageCode = "experience"
	PackageAllInclusive PackageCode = "all_inclusive"
	PackageCustom       PackageCode = "custom"
)

// Package party package priced per person
type Package struct {
	Code                PackageCode
	Label               string
	PricePerPersonCents int64
	Includes            []string
	Excludes            []string
	Rules               []string
}

// ExtraService optional add-on with a flat price
type ExtraService struct {
	Key        string
	Label      string
	PriceCents int64
}

// Option a selectable choice without a price of its own
type Option struct {
	Key   string
	Label string
}

// CakePricing pricing of cakes for the Experience package
type CakePricing struct {
	PricePerKgCents               int64
	GramsPerPerson                int64
	ExternalServicePerPersonCents int64
}

// Catalog immutable lookup table of packages, add-ons and options.
// Build it once with NewCatalog and share it; accessors return copies.
type Catalog struct {
	packages           map[PackageCode]Package
	packageOrder       []PackageCode
	extras             map[string]ExtraService
	extraOrder         []string
	allInclusiveExtras []string
	cateringOptions    []Option
	cakeTypes          []Option
	desserts           []Option
	cake               CakePricing
}

// CatalogData input of NewCatalog
type CatalogData struct {
	Packages           []Package
	Extras             []ExtraService
	AllInclusiveExtras []string // keys of Extras offered with the all-inclusive package
	CateringOptions    []Option
	CakeTypes          []Option
	Desserts           []Option
	Cake               CakePricing
}

// NewCatalog builds a catalog; order of packages and extras is preserved
func NewCatalog(data CatalogData) *Catalog {
	c := &Catalog{
		packages:           make(map[PackageCode]Package, len(data.Packages)),
		extras:             make(map[string]ExtraService, len(data.Extras)),
		allInclusiveExtras: append([]string(nil), data.AllInclusiveExtras...),
		cateringOptions:    append([]Option(nil), data.CateringOptions...),
		cakeTypes:          append([]Option(nil), data.CakeTypes...),
		desserts:           append([]Option(nil), data.Desserts...),
		cake:               data.Cake,
	}
	for _, p := range data.Packages {
		if _, exists := c.packages[p.Code]; !exists {
			c.packageOrder = append(c.packageOrder, p.Code)
		}
		c.packages[p.Code] = p
	}
	for _, e := range data.Extras {
		if _, exists := c.extras[e.Key]; !exists {
			c.extraOrder = append(c.extraOrder, e.Key)
		}
		c.extras[e.Key] = e
	}
	return c
}

// Data returns a copy of the catalog contents, useful for overriding single entries
func (c *Catalog) Data() CatalogData {
	return CatalogData{
		Packages:           c.Packages(),
		Extras:             c.AllExtras(),
		AllInclusiveExtras: append([]string(nil), c.allInclusiveExtras...),
		CateringOptions:    c.CateringOptions(),
		CakeTypes:          c.CakeTypes(),
		Desserts:           c.Desserts(),
		Cake:               c.cake,
	}
}

// Package looks up a package by code
func (c *Catalog) Package(code PackageCode) (Package, bool) {
	p, ok := c.packages[code]
	return p, ok
}

// Packages returns all packages in catalog order
func (c *Catalog) Packages() []Package {
	result := make([]Package, 0, len(c.packageOrder))
	for _, code := range c.packageOrder {
		result = append(result, c.packages[code])
	}
	return result
}

// AllExtras returns every extra service in catalog order
func (c *Catalog) AllExtras() []ExtraService {
	result := make([]ExtraService, 0, len(c.extraOrder))
	for _, key := range c.extraOrder {
		result = append(result, c.extras[key])
	}
	return result
}

// ExtrasFor returns the extras that may be added to the given package.
// The all-inclusive package only offers its own subset.
func (c *Catalog) ExtrasFor(code PackageCode) []ExtraService {
	if code != PackageAllInclusive {
		return c.AllExtras()
	}
	result := make([]ExtraService, 0, len(c.allInclusiveExtras))
	for _, key := range c.allInclusiveExtras {
		if e, ok := c.extras[key]; ok {
			result = append(result, e)
		}
	}
	return result
}

// ExtraFor looks up an extra allowed for the given package
func (c *Catalog) ExtraFor(code PackageCode, key string) (ExtraService, bool) {
	for _, e := range c.ExtrasFor(code) {
		if e.Key == key {
			return e, true
		}
	}
	return ExtraService{}, false
}

func (c *Catalog) CateringOptions() []Option { return append([]Option(nil), c.cateringOptions...) }
func (c *Catalog) CakeTypes() []Option       { return append([]Option(nil), c.cakeTypes...) }
func (c *Catalog) Desserts() []Option        { return append([]Option(nil), c.desserts...) }
func (c *Catalog) Cake() CakePricing         { return c.cake }

// HasCatering reports whether key is a known baby catering option
func (c *Catalog) HasCatering(key string) bool { return hasOption(c.cateringOptions, key) }

// HasCakeType reports whether key is a known internal cake type
func (c *Catalog) HasCakeType(key string) bool { return hasOption(c.cakeTypes, key) }

// HasDessert reports whether key is a known dessert option
func (c *Catalog) HasDessert(key string) bool { return hasOption(c.desserts, key) }

// OptionLabel returns the label of key within options, or the key itself
func OptionLabel(options []Option, key string) string {
	for _, o := range options {
		if o.Key == key {
			return o.Label
		}
	}
	return key
}

func hasOption(options []Option, key string) bool {
	for _, o := range options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// SortedExtraKeys returns keys in catalog order, dropping unknown and duplicate ones
func (c *Catalog) SortedExtraKeys(code PackageCode, keys []string) []string {
	allowed := c.ExtrasFor(code)
	rank := make(map[string]int, len(allowed))
	for i, e := range allowed {
		rank[e.Key] = i
	}

	seen := make(map[string]bool, len(keys))
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := rank[k]; ok && !seen[k] {
			seen[k] = true
			result = append(result, k)
		}
	}
	sort.Slice(result, func(i, j int) bool { return rank[result[i]] < rank[result[j]] })
	return result
}

// DefaultCatalog returns the venue's standard price list
func DefaultCatalog() *Catalog {
	return NewCatalog(CatalogData{
		Packages: []Package{
			{
				Code:                PackageDIY,
				Label:               "Do It Yourself",
				PricePerPersonCents: 1500,
				Includes: []string{
					"Exclusive use of the party area for the booked slot",
					"Tables, chairs and table linen",
					"Final cleaning of the area",
				},
				Excludes: []string{
					"Food and drinks",
					"Entertainment staff",
				},
				Rules: []string{
					"Outside food must be sealed and labelled",
				},
			},
			{
				Code:                PackageExperience,
				Label:               "Experience",
				PricePerPersonCents: 2000,
				Includes: []string{
					"Exclusive use of the party area for the booked slot",
					"Baby catering of your choice",
					"Soft drinks and water",
					"One host for the whole party",
				},
				Excludes: []string{
					"Birthday cake (see cake options)",
					"Extra services",
				},
				Rules: []string{
					"External cakes must come with a bakery receipt",
				},
			},
			{
				Code:                PackageAllInclusive,
				Label:               "All-inclusive",
				PricePerPersonCents: 3000,
				Includes: []string{
					"Exclusive use of the party area for the booked slot",
					"Full catering for children and adults",
					"Desserts of your choice",
					"Cotton candy, popcorn and show cake",
					"Two hosts and an entertainer",
				},
				Excludes: []string{
					"Soap bubble show and mascots",
				},
			},
			{
				Code:                PackageCustom,
				Label:               "Custom",
				PricePerPersonCents: 0,
				Includes: []string{
					"As agreed in the custom package details",
				},
			},
		},
		Extras: []ExtraService{
			{Key: "cotton_candy", Label: "Cotton candy", PriceCents: 5000},
			{Key: "popcorn", Label: "Popcorn", PriceCents: 5000},
			{Key: "show_cake", Label: "Show cake", PriceCents: 4500},
			{Key: "entertainer", Label: "Entertainer", PriceCents: 10000},
			{Key: "soap_bubbles", Label: "Soap bubble show", PriceCents: 20000},
			{Key: "mascot_standard", Label: "Mascot (standard)", PriceCents: 6500},
			{Key: "mascot_deluxe", Label: "Mascot (deluxe)", PriceCents: 9000},
		},
		AllInclusiveExtras: []string{"soap_bubbles", "mascot_standard", "mascot_deluxe"},
		CateringOptions: []Option{
			{Key: "menu_pizza", Label: "Pizza menu"},
			{Key: "snack_box", Label: "Snack box"},
		},
		CakeTypes: []Option{
			{Key: CakeTypeStandard, Label: "Standard"},
			{Key: CakeTypeOther, Label: "Other flavor"},
		},
		Desserts: []Option{
			{Key: "muffin", Label: "Chocolate muffins"},
			{Key: DessertBirthdayCake, Label: "Birthday cake"},
		},
		Cake: CakePricing{
			PricePerKgCents:               2400,
			GramsPerPerson:                100,
			ExternalServicePerPersonCents: 100,
		},
	})
}
