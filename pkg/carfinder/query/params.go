package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

// MaxPageSize caps the per_page parameter.
const MaxPageSize = 100

// ParseFilter builds a FilterSpec from raw request values. Malformed input
// never fails: bad numbers fall back to the defaults, unknown fuel types
// and sort modes are ignored.
func ParseFilter(vars url.Values) dal.FilterSpec {
	spec := dal.DefaultFilter()
	spec.Search = strings.TrimSpace(first(vars, "search", "q"))
	spec.Brand = strings.TrimSpace(first(vars, "brand", "make"))
	spec.FuelType = normalizeFuel(first(vars, "fuel", "fuelType"))
	spec.MinPrice = normalizeMinPrice(first(vars, "min_price", "minPrice"))
	spec.MaxPrice = normalizeMaxPrice(first(vars, "max_price", "maxPrice"))
	spec.Sort = normalizeSort(first(vars, "sort", "sortBy"))
	return spec
}

// ParsePage reads the 1-based page number and page size from raw values.
func ParsePage(vars url.Values, defaultSize int) (page, size int) {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	page = positiveInt(vars.Get("page"), 1)
	size = positiveInt(first(vars, "per_page", "perPage"), defaultSize)
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// Values renders spec back into request values, omitting defaults.
func Values(spec dal.FilterSpec) url.Values {
	vars := url.Values{}
	if spec.Search != "" {
		vars.Set("search", spec.Search)
	}
	if spec.Brand != "" {
		vars.Set("brand", spec.Brand)
	}
	if spec.FuelType != "" {
		vars.Set("fuel", string(spec.FuelType))
	}
	if spec.MinPrice != 0 {
		vars.Set("min_price", strconv.FormatFloat(spec.MinPrice, 'f', -1, 64))
	}
	if spec.Bounded() {
		vars.Set("max_price", strconv.FormatFloat(spec.MaxPrice, 'f', -1, 64))
	}
	if spec.Sort != dal.SortNone {
		vars.Set("sort", string(spec.Sort))
	}
	return vars
}

func first(vars url.Values, keys ...string) string {
	for _, k := range keys {
		if v := vars.Get(k); v != "" {
			return v
		}
	}
	return ""
}

func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func normalizeMinPrice(s string) float64 {
	v, ok := parsePrice(s)
	if !ok {
		return 0
	}
	return v
}

// normalizeMaxPrice treats zero like a missing bound, as the listing form
// always did.
func normalizeMaxPrice(s string) float64 {
	v, ok := parsePrice(s)
	if !ok || v == 0 {
		return dal.NoMaxPrice
	}
	return v
}

func normalizeFuel(s string) dal.FuelType {
	if s == "" {
		return ""
	}
	f, err := dal.ParseFuelType(s)
	if err != nil {
		return ""
	}
	return f
}

func normalizeSort(s string) dal.SortMode {
	switch dal.SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case dal.SortPriceAsc:
		return dal.SortPriceAsc
	case dal.SortPriceDesc:
		return dal.SortPriceDesc
	}
	return dal.SortNone
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
