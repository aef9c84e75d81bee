package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/browse"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/kv"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/metrics"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/prefs"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/source"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
)

type downSource struct{}

func (downSource) List(context.Context, dal.FilterSpec) ([]dal.Car, error) {
	return nil, errors.New("connection refused")
}

func (downSource) Get(context.Context, int) (dal.Car, error) {
	return dal.Car{}, errors.New("connection refused")
}

func newTestServer(t *testing.T, src source.Source) *httptest.Server {
	t.Helper()
	store := kv.NewMemory()
	m := metrics.New()
	b := browse.New(src, wishlist.New(store, nil), browse.WithMetrics(m))
	server := newHTTPServer(b, prefs.New(store, nil), m, nil)
	ts := httptest.NewServer(server.routes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (int, []byte, http.Header) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data, resp.Header
}

func carIDs(res browse.ListingResult) []int {
	ids := []int{}
	for _, c := range res.Cars {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestServer(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(nil, 0))

	tests := []struct {
		name       string
		path       string
		ids        []int
		total      int
		totalPages int
	}{
		{
			name:       "NoFilter",
			path:       "/cars",
			ids:        []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			total:      16,
			totalPages: 2,
		},
		{
			name:       "SecondPage",
			path:       "/cars?page=2",
			ids:        []int{11, 12, 13, 14, 15, 16},
			total:      16,
			totalPages: 2,
		},
		{
			name:       "BrandOnly",
			path:       "/cars?brand=Toyota",
			ids:        []int{1, 3, 4},
			total:      3,
			totalPages: 1,
		},
		{
			name:       "SearchCaseInsensitive",
			path:       "/cars?search=civic",
			ids:        []int{2},
			total:      1,
			totalPages: 1,
		},
		{
			name:       "MinPrice",
			path:       "/cars?brand=Honda&min_price=23000",
			ids:        []int{5, 6},
			total:      2,
			totalPages: 1,
		},
		{
			name:       "FuelAndSortAscending",
			path:       "/cars?fuel=electric&sort=price_asc",
			ids:        []int{8, 12, 16},
			total:      3,
			totalPages: 1,
		},
		{
			name:       "BudgetSortDescending",
			path:       "/cars?minPrice=40000&maxPrice=50000&sortBy=price_desc",
			ids:        []int{14, 8, 10, 11},
			total:      4,
			totalPages: 1,
		},
		{
			name:       "ZeroMaxMeansUnbounded",
			path:       "/cars?brand=Mercedes&max_price=0",
			ids:        []int{14, 15, 16},
			total:      3,
			totalPages: 1,
		},
		{
			name:       "GarbageInputIgnored",
			path:       "/cars?brand=Ford&min_price=abc&fuel=steam&sort=random",
			ids:        []int{7, 8, 9},
			total:      3,
			totalPages: 1,
		},
		{
			name:       "PageBeyondEnd",
			path:       "/cars?page=9",
			ids:        []int{},
			total:      16,
			totalPages: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, body, header := do(t, http.MethodGet, ts.URL+tc.path, "")
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, "application/json", header.Get("Content-Type"))

			var res browse.ListingResult
			require.NoError(t, json.Unmarshal(body, &res))
			assert.Equal(t, tc.ids, carIDs(res))
			assert.Equal(t, tc.total, res.Total)
			assert.Equal(t, tc.totalPages, res.TotalPages)
			assert.Empty(t, res.Error)
		})
	}
}

func TestGetCar(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(nil, 0))

	code, body, _ := do(t, http.MethodGet, ts.URL+"/cars/2", "")
	require.Equal(t, http.StatusOK, code)
	var car browse.DetailResult
	require.NoError(t, json.Unmarshal(body, &car))
	assert.Equal(t, "Honda Civic", car.Name)
	assert.Equal(t, "/honda-civic.jpg", car.ImageURL)
	assert.NotEmpty(t, car.Description)

	code, _, _ = do(t, http.MethodGet, ts.URL+"/cars/404", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _, _ = do(t, http.MethodGet, ts.URL+"/cars/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetBrands(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(nil, 0))

	code, body, _ := do(t, http.MethodGet, ts.URL+"/cars/brands", "")
	require.Equal(t, http.StatusOK, code)
	var res BrandsResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, []string{"BMW", "Ford", "Honda", "Mercedes", "Toyota"}, res.Brands)
}

func TestWishlistFlow(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(nil, 0))

	membership := func(method, path string) MembershipResponse {
		code, body, _ := do(t, method, ts.URL+path, "")
		require.Equal(t, http.StatusOK, code)
		var m MembershipResponse
		require.NoError(t, json.Unmarshal(body, &m))
		return m
	}

	assert.False(t, membership(http.MethodGet, "/wishlist/7").Wished)
	assert.True(t, membership(http.MethodPost, "/wishlist/7/toggle").Wished)
	assert.True(t, membership(http.MethodPost, "/wishlist/1/toggle").Wished)
	assert.True(t, membership(http.MethodGet, "/wishlist/7").Wished)

	code, body, _ := do(t, http.MethodGet, ts.URL+"/wishlist", "")
	require.Equal(t, http.StatusOK, code)
	var res browse.ListingResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, []int{1, 7}, carIDs(res))

	code, body, _ = do(t, http.MethodGet, ts.URL+"/cars?brand=Ford", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &res))
	require.Len(t, res.Cars, 3)
	assert.True(t, res.Cars[0].Wished)
	assert.False(t, res.Cars[1].Wished)

	assert.False(t, membership(http.MethodPost, "/wishlist/7/toggle").Wished)
	assert.False(t, membership(http.MethodGet, "/wishlist/7").Wished)

	code, _, _ = do(t, http.MethodPost, ts.URL+"/wishlist/x/toggle", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDarkMode(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(nil, 0))

	code, body, _ := do(t, http.MethodGet, ts.URL+"/preferences/dark-mode", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"darkMode": false}`, string(body))

	code, _, _ = do(t, http.MethodPut, ts.URL+"/preferences/dark-mode", `{"darkMode": true}`)
	require.Equal(t, http.StatusOK, code)

	_, body, _ = do(t, http.MethodGet, ts.URL+"/preferences/dark-mode", "")
	assert.JSONEq(t, `{"darkMode": true}`, string(body))

	code, _, _ = do(t, http.MethodPut, ts.URL+"/preferences/dark-mode", `{`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSourceDown(t *testing.T) {
	ts := newTestServer(t, downSource{})

	for _, path := range []string{"/cars", "/wishlist"} {
		code, body, _ := do(t, http.MethodGet, ts.URL+path, "")
		require.Equal(t, http.StatusOK, code, path)
		var res browse.ListingResult
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Empty(t, res.Cars, path)
		assert.Equal(t, browse.FetchFailed, res.Error, path)
	}

	code, _, _ := do(t, http.MethodGet, ts.URL+"/cars/1", "")
	assert.Equal(t, http.StatusBadGateway, code)
}

func TestHealthcheckAndMetrics(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(nil, 0))

	code, body, header := do(t, http.MethodGet, ts.URL+"/healthcheck", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", string(body))
	_, err := uuid.Parse(header.Get(RequestIDHeader))
	assert.NoError(t, err)

	code, body, _ = do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `carfinder_http_requests_total{code="200",method="GET",route="/healthcheck"} 1`)
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(nil, 0))
	id := uuid.NewString()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthcheck", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))
}
