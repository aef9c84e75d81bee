// Package prefs stores display preferences next to the wishlist.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/kv"
)

// DarkModeKey is the storage key of the dark mode flag.
const DarkModeKey = "darkMode"

// Prefs reads and writes display preferences.
type Prefs struct {
	kv     kv.Store
	logger *slog.Logger
}

// New returns preferences persisted in store.
func New(store kv.Store, logger *slog.Logger) *Prefs {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prefs{kv: store, logger: logger}
}

// DarkMode reports whether dark mode is on. Anything but a stored "true"
// reads as off.
func (p *Prefs) DarkMode(ctx context.Context) bool {
	raw, err := p.kv.Load(ctx, DarkModeKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			p.logger.Warn("dark mode preference unavailable", "err", err)
		}
		return false
	}
	return raw == "true"
}

// SetDarkMode persists the dark mode flag.
func (p *Prefs) SetDarkMode(ctx context.Context, on bool) error {
	if err := p.kv.Save(ctx, DarkModeKey, strconv.FormatBool(on)); err != nil {
		return fmt.Errorf("save dark mode: %w", err)
	}
	return nil
}
