package core

// Fallback assigned by the legacy migration to records persisted before the
// category field existed.
const (
	FallbackCategory    = "Other"
	FallbackSubcategory = "Miscellaneous"
)

// Catalog is the closed category vocabulary: category name to its ordered
// list of allowed subcategories. It is loaded once and treated as read-only
// configuration; nothing mutates it after startup.
type Catalog struct {
	order         []string
	subcategories map[string][]string
}

// NewCatalog builds a catalog preserving the given category order.
func NewCatalog(entries []CatalogEntry) Catalog {
	c := Catalog{subcategories: make(map[string][]string, len(entries))}
	for _, e := range entries {
		c.order = append(c.order, e.Category)
		c.subcategories[e.Category] = e.Subcategories
	}
	return c
}

// CatalogEntry is one category and its allowed subcategories.
type CatalogEntry struct {
	Category      string
	Subcategories []string
}

// Categories returns the category names in catalog order. The returned slice
// is a copy.
func (c Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Subcategories returns the allowed subcategories for a category, or nil for
// an unknown category. The returned slice is a copy.
func (c Catalog) Subcategories(category string) []string {
	subs, ok := c.subcategories[category]
	if !ok {
		return nil
	}
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// Allowed reports whether the category exists and the subcategory belongs to
// its list.
func (c Catalog) Allowed(category, subcategory string) bool {
	for _, s := range c.subcategories[category] {
		if s == subcategory {
			return true
		}
	}
	return false
}

// DefaultCatalog returns the built-in category taxonomy.
func DefaultCatalog() Catalog {
	return NewCatalog([]CatalogEntry{
		{"Food & Dining", []string{"Groceries", "Restaurants", "Coffee & Snacks", "Delivery"}},
		{"Transportation", []string{"Fuel", "Public Transit", "Taxi & Rideshare", "Maintenance"}},
		{"Housing & Utilities", []string{"Rent", "Electricity", "Water", "Internet", "Phone"}},
		{"Entertainment", []string{"Movies & Shows", "Games", "Subscriptions", "Events"}},
		{"Shopping", []string{"Clothing", "Electronics", "Home Goods", "Gifts"}},
		{"Health", []string{"Doctor", "Pharmacy", "Fitness", "Insurance"}},
		{"Travel", []string{"Flights", "Lodging", "Activities"}},
		{FallbackCategory, []string{FallbackSubcategory, "Fees & Charges", "Education"}},
	})
}

// PaymentMethods is the fixed payment vocabulary offered by the UI.
var PaymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Bank Transfer"}
