package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

func numbered(n int) []dal.Car {
	cars := make([]dal.Car, n)
	for i := range cars {
		cars[i] = dal.Car{ID: i + 1, Price: float64(i)}
	}
	return cars
}

func TestPaginate(t *testing.T) {
	cars := numbered(25)

	tests := []struct {
		name       string
		page       int
		wantIDs    []int
		wantNumber int
	}{
		{"FirstPage", 1, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1},
		{"LastPartialPage", 3, []int{21, 22, 23, 24, 25}, 3},
		{"PastTheEnd", 4, []int{}, 4},
		{"FarPastTheEnd", 1 << 40, []int{}, 1 << 40},
		{"ZeroTreatedAsFirst", 0, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Paginate(cars, 10, tc.page)
			assert.Equal(t, tc.wantIDs, ids(p.Cars))
			assert.Equal(t, 3, p.TotalPages)
			assert.Equal(t, 25, p.Total)
			assert.Equal(t, tc.wantNumber, p.Number)
		})
	}
}

func TestPaginateEmptyAndDefaults(t *testing.T) {
	p := Paginate(nil, 10, 1)
	assert.NotNil(t, p.Cars)
	assert.Empty(t, p.Cars)
	assert.Equal(t, 0, p.TotalPages)

	p = Paginate(numbered(12), 0, 2)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, []int{11, 12}, ids(p.Cars))
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want dal.FilterSpec
	}{
		{
			name: "Empty",
			raw:  "",
			want: dal.DefaultFilter(),
		},
		{
			name: "AllFields",
			raw:  "search=+civic+&brand=Honda&fuel=petrol&min_price=1000&max_price=30000&sort=price_desc",
			want: dal.FilterSpec{Search: "civic", Brand: "Honda", FuelType: dal.Petrol, MinPrice: 1000, MaxPrice: 30000, Sort: dal.SortPriceDesc},
		},
		{
			name: "CamelCaseAliases",
			raw:  "q=bmw&fuelType=Electric&minPrice=5&maxPrice=6&sortBy=price_asc",
			want: dal.FilterSpec{Search: "bmw", FuelType: dal.Electric, MinPrice: 5, MaxPrice: 6, Sort: dal.SortPriceAsc},
		},
		{
			name: "NonNumericBoundsNormalised",
			raw:  "min_price=cheap&max_price=lots",
			want: dal.DefaultFilter(),
		},
		{
			name: "ZeroMaxIsUnbounded",
			raw:  "max_price=0",
			want: dal.DefaultFilter(),
		},
		{
			name: "UnknownFuelAndSortIgnored",
			raw:  "fuel=steam&sort=name",
			want: dal.DefaultFilter(),
		},
		{
			name: "InfinityRejected",
			raw:  "min_price=Inf&max_price=NaN",
			want: dal.DefaultFilter(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vars, err := url.ParseQuery(tc.raw)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, ParseFilter(vars))
		})
	}
}

func TestParsePage(t *testing.T) {
	page, size := ParsePage(url.Values{}, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = ParsePage(url.Values{"page": {"3"}, "per_page": {"5"}}, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 5, size)

	page, size = ParsePage(url.Values{"page": {"-2"}, "per_page": {"abc"}}, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)

	_, size = ParsePage(url.Values{"perPage": {"100000"}}, 10)
	assert.Equal(t, MaxPageSize, size)
}

func TestValuesRoundTrip(t *testing.T) {
	spec := dal.FilterSpec{Search: "camry", Brand: "Toyota", FuelType: dal.Hybrid, MinPrice: 100, MaxPrice: 2000.5, Sort: dal.SortPriceAsc}
	assert.Equal(t, spec, ParseFilter(Values(spec)))
	assert.Empty(t, Values(dal.DefaultFilter()))
}
