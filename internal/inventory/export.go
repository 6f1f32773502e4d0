package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
)

// WriteCSV writes records as CSV: a header of the declared field names, then
// any custom field names in sorted order, then one row per record.
func WriteCSV[T Record[T]](w io.Writer, records []T) error {
	var zero T
	header := slices.Clone(zero.Columns())

	custom := make(map[string]struct{})
	for _, r := range records {
		for name := range r.Custom() {
			custom[name] = struct{}{}
		}
	}
	extra := slices.Sorted(maps.Keys(custom))
	header = append(header, extra...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := r.Row()
		fields := r.Custom()
		for _, name := range extra {
			row = append(row, fields[name])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", r.RecordID(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes records as CSV.
func (c *Collection[T]) Export(w io.Writer, records []T) error {
	return WriteCSV(w, records)
}

// ExportName returns the download file name, with an optional suffix such
// as "floor-7".
func (c *Collection[T]) ExportName(suffix string) string {
	if suffix == "" {
		return c.name + ".csv"
	}
	return c.name + "-" + suffix + ".csv"
}
