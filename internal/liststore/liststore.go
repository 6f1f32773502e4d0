// Package liststore binds an in-memory ordered list to one key-value slot.
//
// A slot is loaded lazily on first access. An absent or unreadable slot is
// replaced by the default dataset, and every successful mutation is written
// through before the in-memory copy changes.
package liststore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/tphummel/it_inventory/internal/kv"
)

// CurrentVersion is the envelope version written by this package. Version 0
// is the legacy layout: a bare JSON array with no envelope.
const CurrentVersion = 1

var errMalformed = errors.New("malformed slot value")

type envelope[T any] struct {
	Version int `json:"version"`
	Items   []T `json:"items"`
}

// Slot is one collection persisted under one key.
type Slot[T any] struct {
	store    kv.Store
	key      string
	defaults func() []T
	fill     func(T) T
	logger   *slog.Logger

	mu     sync.Mutex
	loaded bool
	items  []T
}

// Option configures a Slot.
type Option[T any] func(*Slot[T])

// WithLogger sets the logger used to report recovered corrupt data.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(s *Slot[T]) { s.logger = l }
}

// WithFill sets the function applied to every item when migrating data
// written by an older envelope version.
func WithFill[T any](fn func(T) T) Option[T] {
	return func(s *Slot[T]) { s.fill = fn }
}

// New returns a Slot for key. defaults supplies the seed dataset used when
// the slot is absent or cannot be decoded.
func New[T any](store kv.Store, key string, defaults func() []T, opts ...Option[T]) *Slot[T] {
	s := &Slot[T]{
		store:    store,
		key:      key,
		defaults: defaults,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key the slot is bound to.
func (s *Slot[T]) Key() string { return s.key }

// Get returns a copy of the current list, loading it on first use.
func (s *Slot[T]) Get(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.items), nil
}

// Set replaces the whole list. When the write fails the in-memory list is
// left as it was.
func (s *Slot[T]) Set(ctx context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx, slices.Clone(items))
}

// Update applies fn to a copy of the current list and writes the result.
// An error from fn aborts the update without writing anything.
func (s *Slot[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	next, err := fn(slices.Clone(s.items))
	if err != nil {
		return err
	}
	return s.persist(ctx, next)
}

func (s *Slot[T]) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, found, err := s.store.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}
	if !found {
		return s.persist(ctx, s.defaults())
	}

	version, items, err := decode[T](raw)
	if err != nil {
		s.logger.Warn("stored collection unreadable, restoring defaults",
			"key", s.key,
			"error", err,
		)
		return s.persist(ctx, s.defaults())
	}

	switch {
	case version < CurrentVersion:
		if s.fill != nil {
			for i := range items {
				items[i] = s.fill(items[i])
			}
		}
		s.logger.Info("migrated stored collection",
			"key", s.key,
			"from_version", version,
			"to_version", CurrentVersion,
			"items", len(items),
		)
		return s.persist(ctx, items)
	case version > CurrentVersion:
		s.logger.Warn("stored collection written by a newer version",
			"key", s.key,
			"version", version,
		)
	}

	s.items = items
	s.loaded = true
	return nil
}

func (s *Slot[T]) persist(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(envelope[T]{Version: CurrentVersion, Items: items})
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.store.Put(ctx, s.key, b); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	s.items = items
	s.loaded = true
	return nil
}

// decode reads either the versioned envelope or a legacy bare array.
func decode[T any](raw []byte) (int, []T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, nil, errMalformed
	}

	switch raw[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return 0, nil, err
		}
		return 0, items, nil
	case '{':
		var env struct {
			Version *int            `json:"version"`
			Items   json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return 0, nil, err
		}
		if env.Version == nil {
			return 0, nil, fmt.Errorf("%w: missing version", errMalformed)
		}
		var items []T
		if len(env.Items) > 0 {
			if err := json.Unmarshal(env.Items, &items); err != nil {
				return 0, nil, err
			}
		}
		return *env.Version, items, nil
	default:
		return 0, nil, errMalformed
	}
}
