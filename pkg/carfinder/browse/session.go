package browse

import (
	"context"
	"sync"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

// Session tracks the searches of one interactive user. A new Search cancels
// the one in flight, and only the latest search may commit its result, so a
// slow stale response never replaces a fresher one.
type Session struct {
	browser *Browser

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current ListingResult
}

// NewSession starts a session with an empty current result.
func (b *Browser) NewSession() *Session {
	return &Session{
		browser: b,
		current: ListingResult{Cars: []dal.CarView{}, Filter: dal.DefaultFilter(), Page: 1, PerPage: b.pageSize},
	}
}

// Search runs a listing query. It returns the result and whether it was
// committed; a result superseded by a later Search is returned with false.
func (s *Session) Search(ctx context.Context, spec dal.FilterSpec, page, size int) (ListingResult, bool) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	res := s.browser.Listing(ctx, spec, page, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.browser.metrics.ObserveStale()
		s.browser.logger.Debug("Discarding stale search result", "seq", seq, "latest", s.seq)
		return res, false
	}
	cancel()
	s.cancel = nil
	s.current = res
	return res, true
}

// Current returns the last committed result.
func (s *Session) Current() ListingResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close cancels the search in flight, if any, and discards its result.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
