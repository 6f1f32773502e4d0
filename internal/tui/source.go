package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/tphummel/it_inventory/internal/inventory"
	"github.com/tphummel/it_inventory/internal/models"
	"github.com/tphummel/it_inventory/internal/nav"
)

// source adapts one collection to the table page, hiding the record type.
type source interface {
	Columns() []string
	// Rows returns the displayed rows and their record ids. floor is ignored
	// by collections without floors.
	Rows(ctx context.Context, query string, floor int) ([][]string, []int64, error)
	Fields(ctx context.Context, id int64) (map[string]string, error)
	Blank(floor int) map[string]string
	Choices() map[string][]string
	HasCustomFields() bool
	HasFloors() bool
	Create(ctx context.Context, fields map[string]string) error
	Update(ctx context.Context, id int64, fields map[string]string) error
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, dir, query string, floor int) (path string, n int, err error)
}

type collectionSource[T inventory.Record[T]] struct {
	coll    *inventory.Collection[T]
	fill    func(T) T
	floor   func(items []T, floor int) []T
	choices map[string][]string
	custom  bool
}

func (s *collectionSource[T]) Columns() []string {
	var zero T
	return zero.Columns()
}

func (s *collectionSource[T]) HasCustomFields() bool        { return s.custom }
func (s *collectionSource[T]) HasFloors() bool              { return s.floor != nil }
func (s *collectionSource[T]) Choices() map[string][]string { return s.choices }

func (s *collectionSource[T]) list(ctx context.Context, query string, floor int) ([]T, error) {
	items, err := s.coll.List(ctx, query)
	if err != nil {
		return nil, err
	}
	if s.floor != nil {
		items = s.floor(items, floor)
	}
	return items, nil
}

func (s *collectionSource[T]) Rows(ctx context.Context, query string, floor int) ([][]string, []int64, error) {
	items, err := s.list(ctx, query, floor)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, 0, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.Row())
		ids = append(ids, it.RecordID())
	}
	return rows, ids, nil
}

// fieldsOf maps every declared column except id, plus custom fields, to its
// display value.
func fieldsOf[T inventory.Record[T]](rec T) map[string]string {
	fields := make(map[string]string)
	row := rec.Row()
	for i, col := range rec.Columns() {
		if col == "id" {
			continue
		}
		fields[col] = row[i]
	}
	for k, v := range rec.Custom() {
		fields[k] = v
	}
	return fields
}

func (s *collectionSource[T]) Fields(ctx context.Context, id int64) (map[string]string, error) {
	rec, err := s.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fieldsOf(rec), nil
}

func (s *collectionSource[T]) Blank(floor int) map[string]string {
	var rec T
	if s.fill != nil {
		rec = s.fill(rec)
	}
	fields := fieldsOf(rec)
	if s.floor != nil && floor != 0 {
		fields["floor"] = strconv.Itoa(floor)
	}
	return fields
}

func (s *collectionSource[T]) Create(ctx context.Context, fields map[string]string) error {
	var zero T
	rec, err := zero.Assign(fields)
	if err != nil {
		return err
	}
	_, err = s.coll.Create(ctx, rec)
	return err
}

func (s *collectionSource[T]) Update(ctx context.Context, id int64, fields map[string]string) error {
	existing, err := s.coll.Get(ctx, id)
	if err != nil {
		return err
	}
	rec, err := existing.Assign(fields)
	if err != nil {
		return err
	}
	_, err = s.coll.Update(ctx, id, rec)
	return err
}

func (s *collectionSource[T]) Delete(ctx context.Context, id int64) error {
	return s.coll.Delete(ctx, id)
}

func (s *collectionSource[T]) Export(ctx context.Context, dir, query string, floor int) (string, int, error) {
	items, err := s.list(ctx, query, floor)
	if err != nil {
		return "", 0, err
	}
	suffix := ""
	if s.floor != nil {
		suffix = inventory.FloorSuffix(floor)
	}
	path := filepath.Join(dir, s.coll.ExportName(suffix))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.coll.Export(f, items); err != nil {
		f.Close()
		return "", 0, err
	}
	if err := f.Close(); err != nil {
		return "", 0, err
	}
	return path, len(items), nil
}

func pcStatusChoices() []string {
	return []string{string(models.PCStatusOK), string(models.PCStatusNO), string(models.PCStatusRepair)}
}

func floorChoices() []string {
	out := make([]string, 0, len(models.ValidFloors))
	for _, f := range models.ValidFloors {
		out = append(out, strconv.Itoa(f))
	}
	return out
}

func hardwareChoices() []string {
	return []string{string(models.HardwareGood), string(models.HardwareBatteryProblem), string(models.HardwarePlatformProblem)}
}

func serverStatusChoices() []string {
	return []string{string(models.ServerOnline), string(models.ServerOffline), string(models.ServerMaintenance)}
}

// newSources builds the table adapters for every collection page.
func newSources(inv *inventory.Inventory) map[nav.Page]source {
	return map[nav.Page]source{
		nav.PCInfo: &collectionSource[models.PCInfo]{
			coll:    inv.PCs,
			fill:    models.FillPCDefaults,
			floor:   inventory.FilterFloor,
			choices: map[string][]string{"status": pcStatusChoices(), "floor": floorChoices()},
			custom:  true,
		},
		nav.LaptopInfo: &collectionSource[models.LaptopInfo]{
			coll:    inv.Laptops,
			fill:    models.FillLaptopDefaults,
			choices: map[string][]string{"hardwareStatus": hardwareChoices()},
			custom:  true,
		},
		nav.ServerInfo: &collectionSource[models.ServerInfo]{
			coll:    inv.Servers,
			fill:    models.FillServerDefaults,
			choices: map[string][]string{"status": serverStatusChoices()},
			custom:  true,
		},
		nav.MouseLog:    &collectionSource[models.PeripheralLog]{coll: inv.MouseLogs},
		nav.KeyboardLog: &collectionSource[models.PeripheralLog]{coll: inv.KeyboardLogs},
		nav.SSDLog:      &collectionSource[models.PeripheralLog]{coll: inv.SSDLogs},
	}
}

// nextChoice returns the choice after current, wrapping around. step is +1
// or -1. A value outside choices moves to the first choice.
func nextChoice(choices []string, current string, step int) string {
	if len(choices) == 0 {
		return current
	}
	i := slices.Index(choices, current)
	if i < 0 {
		return choices[0]
	}
	return choices[(i+step+len(choices))%len(choices)]
}
