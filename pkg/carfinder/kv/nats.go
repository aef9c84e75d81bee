package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// DefaultBucket is the JetStream key-value bucket used when none is given.
const DefaultBucket = "CARFINDER"

// maxUpdateAttempts bounds how often Update re-reads a key after losing a
// revision race.
const maxUpdateAttempts = 16

// NATS persists values in a JetStream key-value bucket.
type NATS struct {
	conn   *nats.Conn
	bucket jetstream.KeyValue
}

// NewNATS connects to the server at url and opens (creating if needed) the
// named bucket.
func NewNATS(ctx context.Context, url, bucket string) (*NATS, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}

	nc, err := nats.Connect(url, nats.Name("carfinder"))
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats: jetstream: %w", err)
	}

	// CreateOrUpdateKeyValue is idempotent across restarts
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "carfinder wishlist and preferences",
		History:     1,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats: open bucket %s: %w", bucket, err)
	}

	return &NATS{conn: nc, bucket: kv}, nil
}

func (n *NATS) Load(ctx context.Context, key string) (string, error) {
	entry, err := n.bucket.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("nats: get %q: %w", key, err)
	}
	return string(entry.Value()), nil
}

func (n *NATS) Save(ctx context.Context, key, value string) error {
	if _, err := n.bucket.PutString(ctx, key, value); err != nil {
		return fmt.Errorf("nats: put %q: %w", key, err)
	}
	return nil
}

// Update writes fn's result only if the key still holds the revision fn saw,
// re-reading and retrying when another writer got there first.
func (n *NATS) Update(ctx context.Context, key string, fn UpdateFunc) error {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		var (
			current  string
			revision uint64
			found    bool
		)
		entry, err := n.bucket.Get(ctx, key)
		switch {
		case err == nil:
			current, revision, found = string(entry.Value()), entry.Revision(), true
		case errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted):
		default:
			return fmt.Errorf("nats: get %q: %w", key, err)
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}
		if found {
			_, err = n.bucket.Update(ctx, key, []byte(next), revision)
		} else {
			_, err = n.bucket.Create(ctx, key, []byte(next))
		}
		if err == nil {
			return nil
		}
		if !isRevisionConflict(err) {
			return fmt.Errorf("nats: update %q: %w", key, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("nats: update %q: still conflicting after %d attempts", key, maxUpdateAttempts)
}

func isRevisionConflict(err error) bool {
	if errors.Is(err, jetstream.ErrKeyExists) {
		return true
	}
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}

func (n *NATS) Close() error {
	n.conn.Close()
	return nil
}
