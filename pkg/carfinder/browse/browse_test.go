package browse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/kv"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/metrics"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/source"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
)

// failingSource fails every fetch.
type failingSource struct{}

func (failingSource) List(context.Context, dal.FilterSpec) ([]dal.Car, error) {
	return nil, errors.New("catalog down")
}

func (failingSource) Get(context.Context, int) (dal.Car, error) {
	return dal.Car{}, errors.New("catalog down")
}

func newBrowser(t *testing.T, src source.Source) *Browser {
	t.Helper()
	return New(src, wishlist.New(kv.NewMemory(), nil), WithMetrics(metrics.New()))
}

func ids(cars []dal.CarView) []int {
	out := make([]int, 0, len(cars))
	for _, c := range cars {
		out = append(out, c.ID)
	}
	return out
}

func TestListing(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, source.NewStatic(nil, 0))

	spec := dal.DefaultFilter()
	spec.Brand = "Toyota"
	spec.Sort = dal.SortPriceDesc

	require.True(t, b.Toggle(ctx, 3))
	res := b.Listing(ctx, spec, 1, 0)

	assert.Empty(t, res.Error)
	assert.Equal(t, []int{4, 3, 1}, ids(res.Cars))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 10, res.PerPage)
	assert.False(t, res.Cars[0].Wished)
	assert.True(t, res.Cars[1].Wished)
	assert.Equal(t, "/toyota-rav4.jpg", res.Cars[0].ImageURL)
}

func TestListingOmitsDetailFields(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, source.NewStatic(nil, 0))
	require.True(t, b.Toggle(ctx, 1))

	for name, res := range map[string]ListingResult{
		"listing":  b.Listing(ctx, dal.DefaultFilter(), 1, 10),
		"wishlist": b.Wishlist(ctx),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(res)
			require.NoError(t, err)
			var decoded struct {
				Cars []map[string]any `json:"cars"`
			}
			require.NoError(t, json.Unmarshal(data, &decoded))
			require.NotEmpty(t, decoded.Cars)
			for _, car := range decoded.Cars {
				assert.NotContains(t, car, "description")
				assert.NotContains(t, car, "features")
				assert.Contains(t, car, "name")
			}
		})
	}

	// detail keeps them
	res, err := b.Detail(ctx, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Description)
	assert.NotEmpty(t, res.Features)
}

func TestListingPages(t *testing.T) {
	ctx := context.Background()
	b := New(source.NewStatic(nil, 0), wishlist.New(kv.NewMemory(), nil), WithPageSize(5))

	res := b.Listing(ctx, dal.DefaultFilter(), 4, 0)
	assert.Equal(t, []int{16}, ids(res.Cars))
	assert.Equal(t, 4, res.TotalPages)

	res = b.Listing(ctx, dal.DefaultFilter(), 5, 0)
	assert.NotNil(t, res.Cars)
	assert.Empty(t, res.Cars)
	assert.Equal(t, 16, res.Total)
}

func TestListingPlaceholderImage(t *testing.T) {
	b := newBrowser(t, source.NewStatic(nil, 0))
	spec := dal.DefaultFilter()
	spec.Search = "320d"

	res := b.Listing(context.Background(), spec, 1, 10)
	require.Len(t, res.Cars, 1)
	assert.Equal(t, dal.PlaceholderImage, res.Cars[0].ImageURL)
}

func TestFetchFailureDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, failingSource{})

	res := b.Listing(ctx, dal.DefaultFilter(), 1, 10)
	assert.Equal(t, FetchFailed, res.Error)
	assert.NotNil(t, res.Cars)
	assert.Empty(t, res.Cars)

	res = b.Wishlist(ctx)
	assert.Equal(t, FetchFailed, res.Error)
	assert.Empty(t, res.Cars)

	_, err := b.Detail(ctx, 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, dal.ErrNotFound)

	_, err = b.Brands(ctx)
	assert.Error(t, err)
}

func TestCanceledFetchIsQuiet(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := metrics.New()
	b := New(source.NewStatic(nil, time.Hour), wishlist.New(kv.NewMemory(), nil), WithLogger(logger), WithMetrics(m))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := b.Listing(ctx, dal.DefaultFilter(), 1, 10)
	assert.Equal(t, FetchFailed, res.Error)
	res = b.Wishlist(ctx)
	assert.Equal(t, FetchFailed, res.Error)

	assert.Contains(t, logs.String(), "level=DEBUG")
	assert.NotContains(t, logs.String(), "level=WARN")

	ts := httptest.NewServer(m.Handler())
	defer ts.Close()
	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `carfinder_catalog_fetches_total{outcome="canceled"} 2`)
	assert.NotContains(t, string(body), `outcome="error"`)
}

func TestDetail(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, source.NewStatic(nil, 0))

	res, err := b.Detail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Toyota Camry", res.Name)
	assert.NotEmpty(t, res.Features)
	assert.False(t, res.Wished)

	b.Toggle(ctx, 1)
	res, err = b.Detail(ctx, 1)
	require.NoError(t, err)
	assert.True(t, res.Wished)

	_, err = b.Detail(ctx, 999)
	assert.ErrorIs(t, err, dal.ErrNotFound)
}

func TestWishlistSkipsStaleIDs(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Save(ctx, wishlist.Key, "[7, 999, 2, 7]"))
	b := New(source.NewStatic(nil, 0), wishlist.New(store, nil))

	res := b.Wishlist(ctx)
	assert.Equal(t, []int{2, 7}, ids(res.Cars))
	assert.Equal(t, 2, res.Total)
	for _, c := range res.Cars {
		assert.True(t, c.Wished)
	}

	assert.True(t, b.IsWished(ctx, 999))
}

func TestBrands(t *testing.T) {
	b := newBrowser(t, source.NewStatic(nil, 0))
	brands, err := b.Brands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BMW", "Ford", "Honda", "Mercedes", "Toyota"}, brands)
}

// gatedSource blocks List calls searching for "slow" until release is
// closed, ignoring cancellation, so a stale result really arrives late.
type gatedSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedSource) List(ctx context.Context, spec dal.FilterSpec) ([]dal.Car, error) {
	if spec.Search == "slow" {
		g.once.Do(func() { close(g.started) })
		<-g.release
	}
	return dal.CarsDataset, nil
}

func (g *gatedSource) Get(ctx context.Context, id int) (dal.Car, error) {
	return dal.Car{}, dal.ErrNotFound
}

func TestSessionDiscardsStaleResult(t *testing.T) {
	ctx := context.Background()
	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	b := newBrowser(t, src)
	s := b.NewSession()
	defer s.Close()

	type outcome struct {
		res       ListingResult
		committed bool
	}
	slow := make(chan outcome, 1)
	go func() {
		spec := dal.DefaultFilter()
		spec.Search = "slow"
		res, ok := s.Search(ctx, spec, 1, 10)
		slow <- outcome{res, ok}
	}()
	<-src.started

	fresh := dal.DefaultFilter()
	fresh.Brand = "Ford"
	res, ok := s.Search(ctx, fresh, 1, 10)
	require.True(t, ok)
	assert.Equal(t, []int{7, 8, 9}, ids(res.Cars))

	close(src.release)
	select {
	case out := <-slow:
		assert.False(t, out.committed)
	case <-time.After(5 * time.Second):
		t.Fatal("slow search never returned")
	}

	assert.Equal(t, "Ford", s.Current().Filter.Brand)
	assert.Equal(t, []int{7, 8, 9}, ids(s.Current().Cars))
}

func TestSessionCancelsInFlightSearch(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, source.NewStatic(nil, time.Hour))
	s := b.NewSession()

	done := make(chan bool, 1)
	go func() {
		_, ok := s.Search(ctx, dal.DefaultFilter(), 1, 10)
		done <- ok
	}()

	// wait until the first search holds the sequence number
	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.seq == 1
	}, time.Second, time.Millisecond)

	s.Close()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight search was not cancelled")
	}
	assert.Empty(t, s.Current().Cars)
}
