package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tphummel/it_inventory/internal/kv"
	"github.com/tphummel/it_inventory/internal/liststore"
	"github.com/tphummel/it_inventory/internal/models"
	"github.com/tphummel/it_inventory/internal/report"
)

// Storage keys, one per collection.
const (
	KeyPCs          = "pcInfo"
	KeyLaptops      = "laptopInfo"
	KeyServers      = "serverInfo"
	KeyMouseLogs    = "mouseLogs"
	KeyKeyboardLogs = "keyboardLogs"
	KeySSDLogs      = "ssdLogs"
)

// ErrInvalidFloor is returned by ParseFloor for a floor outside ValidFloors.
var ErrInvalidFloor = errors.New("invalid floor")

// Inventory bundles every collection the application manages.
type Inventory struct {
	PCs          *Collection[models.PCInfo]
	Laptops      *Collection[models.LaptopInfo]
	Servers      *Collection[models.ServerInfo]
	MouseLogs    *Collection[models.PeripheralLog]
	KeyboardLogs *Collection[models.PeripheralLog]
	SSDLogs      *Collection[models.PeripheralLog]
}

type options struct {
	now func() time.Time
}

// Option configures Open.
type Option func(*options)

// WithClock sets the time source used to generate record ids.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Open binds every collection to its slot in store. Nothing is read until
// a collection is first used.
func Open(store kv.Store, logger *slog.Logger, opts ...Option) *Inventory {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Inventory{
		PCs: NewCollection("pc-info", liststore.New(store, KeyPCs, models.DefaultPCs,
			liststore.WithLogger[models.PCInfo](logger),
			liststore.WithFill(models.FillPCDefaults),
		), o.now),
		Laptops: NewCollection("laptop-info", liststore.New(store, KeyLaptops, models.DefaultLaptops,
			liststore.WithLogger[models.LaptopInfo](logger),
			liststore.WithFill(models.FillLaptopDefaults),
		), o.now),
		Servers: NewCollection("server-info", liststore.New(store, KeyServers, models.DefaultServers,
			liststore.WithLogger[models.ServerInfo](logger),
			liststore.WithFill(models.FillServerDefaults),
		), o.now),
		MouseLogs: NewCollection("mouse-service-logs", liststore.New(store, KeyMouseLogs, models.DefaultMouseLogs,
			liststore.WithLogger[models.PeripheralLog](logger),
		), o.now),
		KeyboardLogs: NewCollection("keyboard-service-logs", liststore.New(store, KeyKeyboardLogs, models.DefaultKeyboardLogs,
			liststore.WithLogger[models.PeripheralLog](logger),
		), o.now),
		SSDLogs: NewCollection("ssd-service-logs", liststore.New(store, KeySSDLogs, models.DefaultSSDLogs,
			liststore.WithLogger[models.PeripheralLog](logger),
		), o.now),
	}
}

// Snapshot reads every collection for the aggregation functions.
func (inv *Inventory) Snapshot(ctx context.Context) (report.Snapshot, error) {
	var (
		s   report.Snapshot
		err error
	)
	if s.PCs, err = inv.PCs.All(ctx); err != nil {
		return s, err
	}
	if s.Laptops, err = inv.Laptops.All(ctx); err != nil {
		return s, err
	}
	if s.Servers, err = inv.Servers.All(ctx); err != nil {
		return s, err
	}
	if s.MouseLogs, err = inv.MouseLogs.All(ctx); err != nil {
		return s, err
	}
	if s.KeyboardLogs, err = inv.KeyboardLogs.All(ctx); err != nil {
		return s, err
	}
	if s.SSDLogs, err = inv.SSDLogs.All(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// ParseFloor parses a floor filter value. It must be one of models.ValidFloors.
func ParseFloor(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !slices.Contains(models.ValidFloors, n) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFloor, s)
	}
	return n, nil
}

// FilterFloor keeps the PCs placed on floor, in order.
func FilterFloor(pcs []models.PCInfo, floor int) []models.PCInfo {
	out := make([]models.PCInfo, 0, len(pcs))
	for _, p := range pcs {
		if p.Floor == floor {
			out = append(out, p)
		}
	}
	return out
}

// FloorSuffix is the export file name suffix for a floor filter.
func FloorSuffix(floor int) string {
	return "floor-" + strconv.Itoa(floor)
}
