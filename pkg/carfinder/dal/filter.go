package dal

import "math"

// NoMaxPrice is the upper bound used when no maximum price is given.
const NoMaxPrice = math.MaxFloat64

// SortMode selects the ordering of a query result.
type SortMode string

const (
	SortNone      SortMode = ""
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

// FilterSpec defines the predicates and ordering of a catalog query.
type FilterSpec struct {
	Search   string   `json:"search,omitempty"`
	Brand    string   `json:"brand,omitempty"`
	FuelType FuelType `json:"fuelType,omitempty"`
	MinPrice float64  `json:"minPrice"`
	MaxPrice float64  `json:"maxPrice"`
	Sort     SortMode `json:"sortBy,omitempty"`
}

// DefaultFilter returns a spec that matches every car in catalog order.
func DefaultFilter() FilterSpec {
	return FilterSpec{MaxPrice: NoMaxPrice}
}

// Bounded reports whether the spec carries a finite maximum price.
func (f FilterSpec) Bounded() bool {
	return f.MaxPrice < NoMaxPrice
}

// Page defines one window of a query result.
type Page struct {
	Cars       []Car `json:"cars"`
	Number     int   `json:"page"`
	Size       int   `json:"perPage"`
	Total      int   `json:"total"`
	TotalPages int   `json:"totalPages"`
}
