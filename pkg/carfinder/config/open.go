package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/kv"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/retry"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/source"
)

// Retry returns the retry strategy of remote sources and stores.
func (c Config) Retry(logger *slog.Logger) retry.Policy {
	return retry.Policy{
		MaxAttempts: c.Catalog.Retries,
		BaseDelay:   500 * time.Millisecond,
		Logger:      logger,
	}
}

// OpenSource opens the catalog source named by catalog.source. The returned
// close function releases it and is never nil.
func (c Config) OpenSource(ctx context.Context, logger *slog.Logger) (source.Source, func() error, error) {
	noop := func() error { return nil }

	switch c.Catalog.Source {
	case SourceStatic:
		return source.NewStatic(nil, c.Catalog.Delay), noop, nil
	case SourceFile:
		f, err := source.NewFile(ctx, c.Catalog.Path, logger)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil
	case SourceHTTP:
		return source.NewRemote(c.Catalog.URL, c.Retry(logger)), noop, nil
	case SourcePostgres:
		p, err := source.NewPostgres(ctx, c.Postgres.DSN, c.Retry(logger))
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil
	default:
		return nil, noop, fmt.Errorf("config: unknown catalog.source %q", c.Catalog.Source)
	}
}

// OpenStore opens the key-value store named by wishlist.backend. Callers
// release it with kv.Close.
func (c Config) OpenStore(ctx context.Context, logger *slog.Logger) (kv.Store, error) {
	switch c.Wishlist.Backend {
	case BackendMemory:
		return kv.NewMemory(), nil
	case BackendFile:
		return kv.NewFile(c.Wishlist.Path, logger), nil
	case BackendPostgres:
		store, err := kv.NewPostgres(ctx, c.Postgres.DSN, c.Retry(logger))
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendNATS:
		store, err := kv.NewNATS(ctx, c.NATS.URL, c.NATS.Bucket)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("config: unknown wishlist.backend %q", c.Wishlist.Backend)
	}
}
