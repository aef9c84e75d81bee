// Package browse assembles the listing, detail and wishlist views from a
// catalog source, the query engine and the wishlist store.
package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/metrics"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/query"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/source"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
)

// FetchFailed is the note attached to a view whose catalog fetch failed.
const FetchFailed = "cars could not be loaded, please try again later"

// ListingResult is one rendered page of cars.
type ListingResult struct {
	Cars       []dal.CarView  `json:"cars"`
	Filter     dal.FilterSpec `json:"filter"`
	Page       int            `json:"page"`
	PerPage    int            `json:"perPage"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
	Error      string         `json:"error,omitempty"`
}

// DetailResult is a single car with its detail fields.
type DetailResult struct {
	dal.CarView
}

// Browser serves the views. It holds no per-request state and is safe for
// concurrent use.
type Browser struct {
	source   source.Source
	wishlist *wishlist.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	pageSize int
}

// Option configures a Browser.
type Option func(*Browser)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Browser) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics records fetches and toggles in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Browser) { b.metrics = m }
}

// WithPageSize sets the page size used when a caller passes none.
func WithPageSize(size int) Option {
	return func(b *Browser) {
		if size > 0 {
			b.pageSize = size
		}
	}
}

// New returns a Browser over src and wl.
func New(src source.Source, wl *wishlist.Store, opts ...Option) *Browser {
	b := &Browser{
		source:   src,
		wishlist: wl,
		logger:   slog.Default(),
		pageSize: query.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PageSize returns the default page size.
func (b *Browser) PageSize() int {
	return b.pageSize
}

// Listing fetches the catalog, applies spec and returns the requested page.
// A fetch failure yields an empty page with Error set.
func (b *Browser) Listing(ctx context.Context, spec dal.FilterSpec, page, size int) ListingResult {
	if size < 1 {
		size = b.pageSize
	}

	catalog, err := b.fetch(ctx, spec)
	if err != nil {
		b.logFetchFailure("Unable to load listing", err)
		p := query.Paginate(nil, size, page)
		return ListingResult{
			Cars:    []dal.CarView{},
			Filter:  spec,
			Page:    p.Number,
			PerPage: p.Size,
			Error:   FetchFailed,
		}
	}

	p := query.Paginate(query.Run(catalog, spec), size, page)
	wished := b.wishlist.Set(ctx)
	return ListingResult{
		Cars:       views(p.Cars, func(id int) bool { return wished[id] }),
		Filter:     spec,
		Page:       p.Number,
		PerPage:    p.Size,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

// Detail returns the car with id. Unknown ids yield an error wrapping
// dal.ErrNotFound.
func (b *Browser) Detail(ctx context.Context, id int) (DetailResult, error) {
	start := time.Now()
	car, err := b.source.Get(ctx, id)
	b.metrics.ObserveFetch(ignoreNotFound(err), time.Since(start))
	if err != nil {
		if errors.Is(err, dal.ErrNotFound) {
			return DetailResult{}, err
		}
		return DetailResult{}, fmt.Errorf("fetch car %d: %w", id, err)
	}
	return DetailResult{dal.NewCarView(car, b.wishlist.IsMember(ctx, id))}, nil
}

// Wishlist returns every wished car present in the catalog, in catalog
// order, as a single page.
func (b *Browser) Wishlist(ctx context.Context) ListingResult {
	spec := dal.DefaultFilter()
	catalog, err := b.fetch(ctx, spec)
	if err != nil {
		b.logFetchFailure("Unable to load wishlist", err)
		return ListingResult{Cars: []dal.CarView{}, Filter: spec, Page: 1, Error: FetchFailed}
	}

	cars := b.wishlist.Resolve(ctx, catalog)
	res := ListingResult{
		Cars:    views(cars, func(int) bool { return true }),
		Filter:  spec,
		Page:    1,
		PerPage: len(cars),
		Total:   len(cars),
	}
	if len(cars) > 0 {
		res.TotalPages = 1
	}
	return res
}

// IsWished reports whether the car with id is on the wishlist.
func (b *Browser) IsWished(ctx context.Context, id int) bool {
	return b.wishlist.IsMember(ctx, id)
}

// Toggle flips the wishlist membership of id and returns the new state.
func (b *Browser) Toggle(ctx context.Context, id int) bool {
	wished := b.wishlist.Toggle(ctx, id)
	b.metrics.ObserveToggle(wished)
	b.logger.Debug("Wishlist toggled", "id", id, "wished", wished)
	return wished
}

// Brands returns the distinct brands of the catalog, sorted.
func (b *Browser) Brands(ctx context.Context) ([]string, error) {
	catalog, err := b.fetch(ctx, dal.DefaultFilter())
	if err != nil {
		return nil, err
	}
	brands := query.Brands(catalog)
	sort.Strings(brands)
	if brands == nil {
		brands = []string{}
	}
	return brands, nil
}

func (b *Browser) fetch(ctx context.Context, spec dal.FilterSpec) ([]dal.Car, error) {
	start := time.Now()
	cars, err := b.source.List(ctx, spec)
	b.metrics.ObserveFetch(err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return cars, nil
}

// logFetchFailure keeps fetches abandoned by a newer request out of the
// warning log.
func (b *Browser) logFetchFailure(msg string, err error) {
	if errors.Is(err, context.Canceled) {
		b.logger.Debug(msg, "err", err)
		return
	}
	b.logger.Warn(msg, "err", err)
}

// views renders listing rows, which never carry the detail-only fields.
func views(cars []dal.Car, wished func(id int) bool) []dal.CarView {
	out := make([]dal.CarView, 0, len(cars))
	for _, c := range cars {
		out = append(out, dal.NewCarView(c.Summary(), wished(c.ID)))
	}
	return out
}

func ignoreNotFound(err error) error {
	if errors.Is(err, dal.ErrNotFound) {
		return nil
	}
	return err
}
