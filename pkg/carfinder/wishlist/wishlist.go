// Package wishlist keeps the set of car ids a visitor marked as favourites.
//
// The set lives in an injected kv.Store under a fixed key as a JSON array of
// integers. Ids are not checked against the catalog: an id whose car has
// been removed stays in storage and is skipped by Resolve.
//
// Store failures never reach the caller. An absent, unreadable or corrupt
// entry is treated as an empty set, and a failed save is logged.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/kv"
)

// Key is the storage key of the wishlist entry.
const Key = "wishlist"

// Store exposes membership checks and toggles over the persisted id set.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *slog.Logger
}

// New returns a wishlist persisted in store.
func New(store kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: store, logger: logger}
}

// IsMember reports whether id is on the wishlist.
func (s *Store) IsMember(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.load(ctx), id)
}

// Toggle flips the membership of id and returns the new state: true when id
// was added, false when it was removed. The read and write go through
// kv.Update, so toggles from other processes sharing the store are not lost.
func (s *Store) Toggle(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wished, computed bool
	err := kv.Update(ctx, s.kv, Key, func(raw string, found bool) (string, error) {
		ids := s.parse(raw, found)
		wished, computed = !contains(ids, id), true
		if wished {
			ids = append(ids, id)
		} else {
			ids = without(ids, id)
		}
		data, err := json.Marshal(ids)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	if err != nil {
		s.logger.Warn("wishlist not persisted", "err", err)
		if !computed {
			// the set could not be read, so toggling adds
			wished = true
		}
	}
	return wished
}

// IDs returns the distinct wished ids in first-seen order.
func (s *Store) IDs(ctx context.Context) []int {
	s.mu.Lock()
	ids := s.load(ctx)
	s.mu.Unlock()

	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Set returns the wished ids as a set, for bulk membership checks.
func (s *Store) Set(ctx context.Context) map[int]bool {
	s.mu.Lock()
	ids := s.load(ctx)
	s.mu.Unlock()

	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Resolve returns the catalog cars that are on the wishlist, in catalog
// order. Wished ids without a car in catalog are skipped.
func (s *Store) Resolve(ctx context.Context, catalog []dal.Car) []dal.Car {
	set := s.Set(ctx)
	cars := make([]dal.Car, 0, len(set))
	for _, car := range catalog {
		if set[car.ID] {
			cars = append(cars, car)
		}
	}
	return cars
}

// load must be called with s.mu held.
func (s *Store) load(ctx context.Context) []int {
	raw, err := s.kv.Load(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return []int{}
	}
	if err != nil {
		s.logger.Warn("wishlist unavailable, using empty set", "err", err)
		return []int{}
	}
	return s.parse(raw, true)
}

func (s *Store) parse(raw string, found bool) []int {
	if !found {
		return []int{}
	}
	ids, err := decode(raw)
	if err != nil {
		s.logger.Warn("wishlist entry is corrupt, using empty set", "err", err)
		return []int{}
	}
	return ids
}

func decode(raw string) ([]int, error) {
	if raw == "" {
		return []int{}, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		// the literal "null"
		ids = []int{}
	}
	return ids, nil
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
