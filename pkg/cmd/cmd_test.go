package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/browse"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/kv"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/source"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		spec dal.FilterSpec
		page int
		size int
	}{
		{
			name: "FreeText",
			line: "civic",
			spec: dal.FilterSpec{Search: "civic", MaxPrice: dal.NoMaxPrice},
			page: 1,
			size: 10,
		},
		{
			name: "QueryParameters",
			line: "brand=BMW&fuel=diesel&sort=price_desc&page=2&per_page=5",
			spec: dal.FilterSpec{Brand: "BMW", FuelType: dal.Diesel, Sort: dal.SortPriceDesc, MaxPrice: dal.NoMaxPrice},
			page: 2,
			size: 5,
		},
		{
			name: "BrokenQueryMatchesAll",
			line: "brand=%zz",
			spec: dal.DefaultFilter(),
			page: 1,
			size: 10,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, page, size := parseLine(tc.line, 10)
			assert.Equal(t, tc.spec, spec)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.size, size)
		})
	}
}

func TestSearchValues(t *testing.T) {
	require.NoError(t, SearchCmd.Flags().Set("brand", "Ford"))
	require.NoError(t, SearchCmd.Flags().Set("max-price", "40000"))
	t.Cleanup(func() {
		_ = SearchCmd.Flags().Set("brand", "")
		_ = SearchCmd.Flags().Set("max-price", "0")
	})

	vars := searchValues(SearchCmd)
	assert.Equal(t, "Ford", vars.Get("brand"))
	assert.Equal(t, "40000", vars.Get("max_price"))
	assert.Equal(t, "1", vars.Get("page"))
	assert.Empty(t, vars.Get("min_price"))
}

func TestRunBrowse(t *testing.T) {
	b := browse.New(source.NewStatic(nil, 0), wishlist.New(kv.NewMemory(), nil))
	in := strings.NewReader("civic\n\nbrand=Ford&sort=price_asc\nquit\nbrand=BMW\n")
	var out bytes.Buffer

	require.NoError(t, runBrowse(context.Background(), b, in, &out))

	assert.Contains(t, out.String(), "Ford Focus")
	assert.NotContains(t, out.String(), "BMW", "input after quit is ignored")
}

func TestPrintListing(t *testing.T) {
	b := browse.New(source.NewStatic(nil, 0), wishlist.New(kv.NewMemory(), nil))
	ctx := context.Background()
	b.Toggle(ctx, 2)

	spec := dal.DefaultFilter()
	spec.Search = "honda"
	var out bytes.Buffer
	require.NoError(t, printListing(&out, b.Listing(ctx, spec, 1, 10)))

	assert.Contains(t, out.String(), "Honda Civic")
	assert.Contains(t, out.String(), "page 1 of 1, 3 cars")

	out.Reset()
	require.NoError(t, printListing(&out, browse.ListingResult{Error: browse.FetchFailed}))
	assert.Equal(t, browse.FetchFailed+"\n", out.String())
}
