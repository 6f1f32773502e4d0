// Package inventory implements list-level CRUD over the persisted asset and
// peripheral-log collections.
package inventory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/tphummel/it_inventory/internal/liststore"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Record is the behaviour every stored entity type provides.
type Record[T any] interface {
	RecordID() int64
	WithID(id int64) T
	DepartmentName() string
	SearchFields() []string
	Columns() []string
	Row() []string
	Custom() map[string]string
	Assign(fields map[string]string) (T, error)
}

// Collection is one entity list bound to its storage slot.
type Collection[T Record[T]] struct {
	name string
	slot *liststore.Slot[T]
	now  func() time.Time
}

// NewCollection wraps slot. name is the base of export file names.
func NewCollection[T Record[T]](name string, slot *liststore.Slot[T], now func() time.Time) *Collection[T] {
	if now == nil {
		now = time.Now
	}
	return &Collection[T]{name: name, slot: slot, now: now}
}

// Name returns the collection's export base name, e.g. "pc-info".
func (c *Collection[T]) Name() string { return c.name }

// Key returns the storage key of the underlying slot.
func (c *Collection[T]) Key() string { return c.slot.Key() }

// All returns every record in stored order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return c.slot.Get(ctx)
}

// Set replaces the whole collection.
func (c *Collection[T]) Set(ctx context.Context, items []T) error {
	return c.slot.Set(ctx, items)
}

// List returns the records matching query. An empty query matches everything.
func (c *Collection[T]) List(ctx context.Context, query string) ([]T, error) {
	items, err := c.slot.Get(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(items, query), nil
}

// Get returns the record with id.
func (c *Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	items, err := c.slot.Get(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	i := indexOf(items, id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	return items[i], nil
}

// Create appends rec under a freshly generated id and returns the stored record.
func (c *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	var created T
	err := c.slot.Update(ctx, func(items []T) ([]T, error) {
		created = rec.WithID(c.nextID(items))
		return append(items, created), nil
	})
	return created, err
}

// Update replaces the record with id. The stored record keeps id whatever
// rec carries.
func (c *Collection[T]) Update(ctx context.Context, id int64, rec T) (T, error) {
	updated := rec.WithID(id)
	err := c.slot.Update(ctx, func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		items[i] = updated
		return items, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	return c.slot.Update(ctx, func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// nextID is the current time in milliseconds, moved past the largest
// existing id when the clock has not advanced since the last create.
func (c *Collection[T]) nextID(items []T) int64 {
	id := c.now().UnixMilli()
	for _, it := range items {
		if it.RecordID() >= id {
			id = it.RecordID() + 1
		}
	}
	return id
}

// Filter returns the records where any search field contains query,
// ignoring case. The input order is preserved.
func Filter[T Record[T]](items []T, query string) []T {
	if query == "" {
		return append(make([]T, 0, len(items)), items...)
	}
	fold := cases.Fold()
	q := fold.String(query)

	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range it.SearchFields() {
			if strings.Contains(fold.String(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func indexOf[T Record[T]](items []T, id int64) int {
	return slices.IndexFunc(items, func(it T) bool { return it.RecordID() == id })
}
