package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tphummel/it_inventory/internal/inventory"
	"github.com/tphummel/it_inventory/internal/kv"
	"github.com/tphummel/it_inventory/internal/metrics"
	"github.com/tphummel/it_inventory/internal/models"
	"github.com/tphummel/it_inventory/internal/nav"
	"github.com/tphummel/it_inventory/internal/report"
)

const maxBodyBytes = 64 * 1024

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	Inv     *inventory.Inventory
	Store   kv.Store
	Deletes *PendingDeletes
	Logger  *slog.Logger
	Version string
	Commit  string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// internalError logs err and answers 500 with msg.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger().Error(msg,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, msg)
}

// decodeBody reads a JSON request body into v, answering 400 or 413 on
// failure. It reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

// Health handles GET /healthz.
// Returns 503 if the storage backend is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.Version,
		"commit":  h.Commit,
	})
}

// Dashboard handles GET /api/v1/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, err := h.Inv.Snapshot(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to load inventory", err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildDashboard(s))
}

// Departments handles GET /api/v1/departments.
func (h *Handler) Departments(w http.ResponseWriter, r *http.Request) {
	s, err := h.Inv.Snapshot(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to load inventory", err)
		return
	}
	writeJSON(w, http.StatusOK, report.DepartmentRollup(s.PCs, s.Laptops, s.Servers))
}

type pageInfo struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Pages handles GET /api/v1/pages.
func (h *Handler) Pages(w http.ResponseWriter, r *http.Request) {
	pages := make([]pageInfo, 0, len(nav.Pages))
	for _, p := range nav.Pages {
		pages = append(pages, pageInfo{Title: p.String(), Slug: p.Slug()})
	}
	writeJSON(w, http.StatusOK, pages)
}

// CancelDelete handles DELETE /api/v1/delete-requests/{token}.
func (h *Handler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	if !h.Deletes.Cancel(r.PathValue("token")) {
		writeError(w, http.StatusNotFound, "delete request not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register adds every API route to mux. Each route is wrapped with the
// metrics middleware under its pattern.
func (h *Handler) Register(mux *http.ServeMux) {
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, metrics.Middleware(pattern, fn))
	}

	handle("GET /healthz", h.Health)
	handle("GET /openapi.yaml", OpenAPISpec)
	handle("GET /docs", Docs)

	handle("GET /api/v1/pages", h.Pages)
	handle("GET /api/v1/dashboard", h.Dashboard)
	handle("GET /api/v1/departments", h.Departments)
	handle("DELETE /api/v1/delete-requests/{token}", h.CancelDelete)

	registerCollection(handle, h, nav.PCInfo.Slug(), h.Inv.PCs, floorFilter)
	registerCollection(handle, h, nav.LaptopInfo.Slug(), h.Inv.Laptops, nil)
	registerCollection(handle, h, nav.ServerInfo.Slug(), h.Inv.Servers, nil)
	registerCollection(handle, h, nav.MouseLog.Slug(), h.Inv.MouseLogs, nil)
	registerCollection(handle, h, nav.KeyboardLog.Slug(), h.Inv.KeyboardLogs, nil)
	registerCollection(handle, h, nav.SSDLog.Slug(), h.Inv.SSDLogs, nil)
}

// extraFilter narrows a searched list using further query parameters. It
// returns the export file name suffix for the filter, or "" when none applies.
type extraFilter[T inventory.Record[T]] func(r *http.Request, items []T) ([]T, string, error)

// floorFilter applies the ?floor= parameter to PC lists.
func floorFilter(r *http.Request, pcs []models.PCInfo) ([]models.PCInfo, string, error) {
	v := r.URL.Query().Get("floor")
	if v == "" {
		return pcs, "", nil
	}
	floor, err := inventory.ParseFloor(v)
	if err != nil {
		return nil, "", err
	}
	return inventory.FilterFloor(pcs, floor), inventory.FloorSuffix(floor), nil
}

// collectionAPI serves the CRUD, search, delete-confirmation, and export
// routes of one collection.
type collectionAPI[T inventory.Record[T]] struct {
	h      *Handler
	slug   string
	coll   *inventory.Collection[T]
	filter extraFilter[T]
}

func registerCollection[T inventory.Record[T]](handle func(string, http.HandlerFunc), h *Handler, slug string, coll *inventory.Collection[T], filter extraFilter[T]) {
	c := &collectionAPI[T]{h: h, slug: slug, coll: coll, filter: filter}
	base := "/api/v1/" + slug

	handle("GET "+base, c.list)
	handle("POST "+base, c.create)
	handle("GET "+base+"/export", c.export)
	handle("GET "+base+"/{id}", c.get)
	handle("PUT "+base+"/{id}", c.update)
	handle("POST "+base+"/{id}/delete-request", c.requestDelete)
	handle("DELETE "+base+"/{id}", c.delete)
}

// search applies ?q= and any collection-specific filter.
func (c *collectionAPI[T]) search(w http.ResponseWriter, r *http.Request) ([]T, string, bool) {
	items, err := c.coll.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		c.h.internalError(w, r, "failed to list records", err)
		return nil, "", false
	}
	if c.filter == nil {
		return items, "", true
	}
	items, suffix, err := c.filter(r, items)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, "", false
	}
	return items, suffix, true
}

// list handles GET /api/v1/{slug} with an optional ?q= search.
func (c *collectionAPI[T]) list(w http.ResponseWriter, r *http.Request) {
	items, _, ok := c.search(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// create handles POST /api/v1/{slug}. Any id in the body is replaced.
func (c *collectionAPI[T]) create(w http.ResponseWriter, r *http.Request) {
	var rec T
	if !decodeBody(w, r, &rec) {
		return
	}
	created, err := c.coll.Create(r.Context(), rec)
	if err != nil {
		c.h.internalError(w, r, "failed to create record", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// get handles GET /api/v1/{slug}/{id}.
func (c *collectionAPI[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := c.coll.Get(r.Context(), id)
	if errors.Is(err, inventory.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		c.h.internalError(w, r, "failed to get record", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// update handles PUT /api/v1/{slug}/{id}. The body replaces the whole record.
func (c *collectionAPI[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var rec T
	if !decodeBody(w, r, &rec) {
		return
	}
	updated, err := c.coll.Update(r.Context(), id, rec)
	if errors.Is(err, inventory.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		c.h.internalError(w, r, "failed to update record", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type deleteRequest struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// requestDelete handles POST /api/v1/{slug}/{id}/delete-request, the first
// phase of a delete.
func (c *collectionAPI[T]) requestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if _, err := c.coll.Get(r.Context(), id); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		c.h.internalError(w, r, "failed to get record", err)
		return
	}
	token, expiresAt := c.h.Deletes.Request(c.slug, id)
	writeJSON(w, http.StatusAccepted, deleteRequest{Token: token, ExpiresAt: expiresAt})
}

// delete handles DELETE /api/v1/{slug}/{id}?confirm=<token>, the second
// phase of a delete.
func (c *collectionAPI[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	token := r.URL.Query().Get("confirm")
	if token == "" {
		writeError(w, http.StatusPreconditionRequired, "confirm token required; POST "+r.URL.Path+"/delete-request first")
		return
	}
	if !c.h.Deletes.Take(token, c.slug, id) {
		writeError(w, http.StatusConflict, "confirm token is unknown, expired, or for another record")
		return
	}

	err := c.coll.Delete(r.Context(), id)
	if errors.Is(err, inventory.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		c.h.internalError(w, r, "failed to delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// export handles GET /api/v1/{slug}/export, a CSV download of the same
// records list would return.
func (c *collectionAPI[T]) export(w http.ResponseWriter, r *http.Request) {
	items, suffix, ok := c.search(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", c.coll.ExportName(suffix)))
	w.WriteHeader(http.StatusOK)
	if err := c.coll.Export(w, items); err != nil {
		c.h.logger().Error("failed to write CSV export",
			"collection", c.slug,
			"error", err,
		)
	}
}
