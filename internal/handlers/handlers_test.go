package handlers_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tphummel/it_inventory/internal/db"
	"github.com/tphummel/it_inventory/internal/handlers"
	"github.com/tphummel/it_inventory/internal/inventory"
	"github.com/tphummel/it_inventory/internal/kv"
	"github.com/tphummel/it_inventory/internal/models"
	"github.com/tphummel/it_inventory/internal/report"
)

// newTestMux builds the same mux as main.go, backed by an in-memory DB.
// It returns both the mux (for serving requests) and the inventory (for
// pre-seeding).
func newTestMux(t *testing.T) (http.Handler, *inventory.Inventory) {
	t.Helper()
	d, err := db.New(":memory:")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return newTestMuxWithStore(t, d)
}

func newTestMuxWithStore(t *testing.T, store kv.Store) (http.Handler, *inventory.Inventory) {
	t.Helper()
	inv := inventory.Open(store, nil)
	h := &handlers.Handler{
		Inv:     inv,
		Store:   store,
		Deletes: handlers.NewPendingDeletes(time.Minute),
		Version: "test",
		Commit:  "abc123",
	}
	mux := http.NewServeMux()
	h.Register(mux)
	return mux, inv
}

// req builds a request with an optional JSON body.
func req(method, path string, body []byte) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// serve is a small helper that runs a request through the mux and returns the recorder.
func serve(mux http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

// decodeBody unmarshals a recorder's body into v.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response body: %v\nbody: %s", err, w.Body.String())
	}
}

// seedPCs replaces the PC collection.
func seedPCs(t *testing.T, inv *inventory.Inventory, pcs []models.PCInfo) {
	t.Helper()
	if err := inv.PCs.Set(context.Background(), pcs); err != nil {
		t.Fatalf("seed PCs: %v", err)
	}
}

// requestDelete runs phase one of a delete and returns the token.
func requestDelete(t *testing.T, mux http.Handler, path string) string {
	t.Helper()
	w := serve(mux, req(http.MethodPost, path+"/delete-request", nil))
	if w.Code != http.StatusAccepted {
		t.Fatalf("delete-request: got %d, want 202\nbody: %s", w.Code, w.Body.String())
	}
	var body struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	decodeBody(t, w, &body)
	if body.Token == "" {
		t.Fatal("delete-request: empty token")
	}
	if !body.ExpiresAt.After(time.Now()) {
		t.Errorf("expires_at %v is not in the future", body.ExpiresAt)
	}
	return body.Token
}

// --- Health ---

func TestHealth(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
	var body map[string]string
	decodeBody(t, w, &body)
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
	if body["version"] != "test" || body["commit"] != "abc123" {
		t.Errorf("version/commit: got %q/%q", body["version"], body["commit"])
	}
}

type downStore struct{ kv.Memory }

func (*downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth_BackendDown(t *testing.T) {
	mux, _ := newTestMuxWithStore(t, &downStore{})
	w := serve(mux, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", w.Code)
	}
}

// --- List / search ---

func TestList_AllCollectionsSeeded(t *testing.T) {
	mux, _ := newTestMux(t)

	tests := []struct {
		slug string
		want int
	}{
		{"pcs", len(models.DefaultPCs())},
		{"laptops", len(models.DefaultLaptops())},
		{"servers", len(models.DefaultServers())},
		{"mouse-logs", len(models.DefaultMouseLogs())},
		{"keyboard-logs", len(models.DefaultKeyboardLogs())},
		{"ssd-logs", len(models.DefaultSSDLogs())},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			w := serve(mux, req(http.MethodGet, "/api/v1/"+tt.slug, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type: got %q", ct)
			}
			var items []map[string]any
			decodeBody(t, w, &items)
			if len(items) != tt.want {
				t.Errorf("len: got %d, want %d", len(items), tt.want)
			}
		})
	}
}

func TestList_Search(t *testing.T) {
	mux, inv := newTestMux(t)
	seedPCs(t, inv, []models.PCInfo{
		{ID: 1, PCName: "ACC-01", Department: "Accounts", Floor: 7},
		{ID: 2, PCName: "HR-01", Department: "HR", Floor: 5},
	})

	w := serve(mux, req(http.MethodGet, "/api/v1/pcs?q=acc", nil))
	var pcs []models.PCInfo
	decodeBody(t, w, &pcs)
	if len(pcs) != 1 || pcs[0].ID != 1 {
		t.Errorf("q=acc: got %+v", pcs)
	}

	w = serve(mux, req(http.MethodGet, "/api/v1/pcs?q=zzz", nil))
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("no match: got %s, want []", w.Body.String())
	}
}

func TestList_FloorFilter(t *testing.T) {
	mux, inv := newTestMux(t)
	seedPCs(t, inv, []models.PCInfo{
		{ID: 1, Floor: 7},
		{ID: 2, Floor: 5},
		{ID: 3, Floor: 7},
	})

	w := serve(mux, req(http.MethodGet, "/api/v1/pcs?floor=7", nil))
	var pcs []models.PCInfo
	decodeBody(t, w, &pcs)
	if len(pcs) != 2 || pcs[0].ID != 1 || pcs[1].ID != 3 {
		t.Errorf("floor=7: got %+v", pcs)
	}

	for _, bad := range []string{"4", "x"} {
		w := serve(mux, req(http.MethodGet, "/api/v1/pcs?floor="+bad, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("floor=%s: got %d, want 400", bad, w.Code)
		}
	}
}

// --- Create ---

func TestCreate(t *testing.T) {
	mux, _ := newTestMux(t)

	body, _ := json.Marshal(map[string]any{
		"id":         7,
		"serverID":   "SRV-NEW",
		"brand":      "HPE",
		"totalCores": 32,
		"status":     "Maintenance",
	})
	w := serve(mux, req(http.MethodPost, "/api/v1/servers", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201\nbody: %s", w.Code, w.Body.String())
	}

	var s models.ServerInfo
	decodeBody(t, w, &s)
	if s.ID == 7 || s.ID == 0 {
		t.Errorf("ID: got %d, want a server-assigned id", s.ID)
	}
	if s.ServerID != "SRV-NEW" || s.TotalCores != 32 || s.Status != models.ServerMaintenance {
		t.Errorf("unexpected record: %+v", s)
	}

	w = serve(mux, req(http.MethodGet, fmt.Sprintf("/api/v1/servers/%d", s.ID), nil))
	if w.Code != http.StatusOK {
		t.Errorf("get created: got %d, want 200", w.Code)
	}
}

func TestCreate_OutOfSetEnumIsStored(t *testing.T) {
	mux, _ := newTestMux(t)
	body := []byte(`{"pcName":"X","status":"Unknown","floor":9}`)
	w := serve(mux, req(http.MethodPost, "/api/v1/pcs", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", w.Code)
	}
	var p models.PCInfo
	decodeBody(t, w, &p)
	if p.Status != "Unknown" || p.Floor != 9 {
		t.Errorf("got status %q floor %d", p.Status, p.Floor)
	}
}

func TestCreate_InvalidJSON(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, req(http.MethodPost, "/api/v1/laptops", []byte("not-json")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["error"] == "" {
		t.Error("expected non-empty error field")
	}
}

func TestCreate_BodyTooLarge(t *testing.T) {
	mux, _ := newTestMux(t)
	big := `{"comment":"` + strings.Repeat("a", 70*1024) + `"}`
	w := serve(mux, req(http.MethodPost, "/api/v1/mouse-logs", []byte(big)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", w.Code)
	}
}

// --- Get ---

func TestGet(t *testing.T) {
	mux, _ := newTestMux(t)

	w := serve(mux, req(http.MethodGet, "/api/v1/pcs/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var p models.PCInfo
	decodeBody(t, w, &p)
	if p.ID != 1 || p.PCName != models.DefaultPCs()[0].PCName {
		t.Errorf("got %+v", p)
	}
}

func TestGet_Errors(t *testing.T) {
	mux, _ := newTestMux(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/pcs/999999", http.StatusNotFound},
		{"/api/v1/pcs/abc", http.StatusBadRequest},
		{"/api/v1/ssd-logs/1.5", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(mux, req(http.MethodGet, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("status: got %d, want %d", w.Code, tt.want)
			}
		})
	}
}

// --- Update ---

func TestUpdate(t *testing.T) {
	mux, inv := newTestMux(t)
	seedPCs(t, inv, []models.PCInfo{
		{ID: 1, PCName: "A"},
		{ID: 2, PCName: "B"},
		{ID: 3, PCName: "C"},
	})

	body := []byte(`{"id":99,"pcName":"B2","department":"IT"}`)
	w := serve(mux, req(http.MethodPut, "/api/v1/pcs/2", body))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200\nbody: %s", w.Code, w.Body.String())
	}
	var p models.PCInfo
	decodeBody(t, w, &p)
	if p.ID != 2 || p.PCName != "B2" || p.Department != "IT" {
		t.Errorf("got %+v", p)
	}

	all, err := inv.PCs.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	names := []string{all[0].PCName, all[1].PCName, all[2].PCName}
	if strings.Join(names, ",") != "A,B2,C" {
		t.Errorf("order after update: %v", names)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, req(http.MethodPut, "/api/v1/laptops/424242", []byte(`{"pcName":"x"}`)))
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

// --- Two-phase delete ---

func TestDelete_TwoPhase(t *testing.T) {
	mux, _ := newTestMux(t)

	token := requestDelete(t, mux, "/api/v1/keyboard-logs/1")

	w := serve(mux, req(http.MethodDelete, "/api/v1/keyboard-logs/1?confirm="+token, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("confirm: got %d, want 204\nbody: %s", w.Code, w.Body.String())
	}

	w = serve(mux, req(http.MethodGet, "/api/v1/keyboard-logs/1", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("after delete: got %d, want 404", w.Code)
	}

	// Tokens are single use.
	w = serve(mux, req(http.MethodDelete, "/api/v1/keyboard-logs/1?confirm="+token, nil))
	if w.Code != http.StatusConflict {
		t.Errorf("reused token: got %d, want 409", w.Code)
	}
}

func TestDelete_RequiresToken(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, req(http.MethodDelete, "/api/v1/pcs/1", nil))
	if w.Code != http.StatusPreconditionRequired {
		t.Errorf("status: got %d, want 428", w.Code)
	}

	w = serve(mux, req(http.MethodGet, "/api/v1/pcs/1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("record should still exist, got %d", w.Code)
	}
}

func TestDelete_TokenMismatch(t *testing.T) {
	mux, _ := newTestMux(t)
	token := requestDelete(t, mux, "/api/v1/pcs/1")

	tests := []struct {
		name string
		path string
	}{
		{"unknown token", "/api/v1/pcs/1?confirm=not-a-token"},
		{"other record", "/api/v1/pcs/2?confirm=" + token},
		{"other collection", "/api/v1/laptops/1?confirm=" + token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(mux, req(http.MethodDelete, tt.path, nil))
			if w.Code != http.StatusConflict {
				t.Errorf("status: got %d, want 409", w.Code)
			}
		})
	}

	// The original token is still good for its own record.
	w := serve(mux, req(http.MethodDelete, "/api/v1/pcs/1?confirm="+token, nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("confirm: got %d, want 204", w.Code)
	}
}

func TestDelete_RequestForMissingRecord(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, req(http.MethodPost, "/api/v1/servers/123456/delete-request", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestDelete_RecordGoneBeforeConfirm(t *testing.T) {
	mux, inv := newTestMux(t)
	token := requestDelete(t, mux, "/api/v1/ssd-logs/1")

	if err := inv.SSDLogs.Delete(context.Background(), 1); err != nil {
		t.Fatalf("direct delete: %v", err)
	}
	w := serve(mux, req(http.MethodDelete, "/api/v1/ssd-logs/1?confirm="+token, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestDelete_Cancel(t *testing.T) {
	mux, _ := newTestMux(t)
	token := requestDelete(t, mux, "/api/v1/mouse-logs/1")

	w := serve(mux, req(http.MethodDelete, "/api/v1/delete-requests/"+token, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("cancel: got %d, want 204", w.Code)
	}

	w = serve(mux, req(http.MethodDelete, "/api/v1/mouse-logs/1?confirm="+token, nil))
	if w.Code != http.StatusConflict {
		t.Errorf("confirm after cancel: got %d, want 409", w.Code)
	}

	w = serve(mux, req(http.MethodDelete, "/api/v1/delete-requests/"+token, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("second cancel: got %d, want 404", w.Code)
	}
}

// --- Export ---

func TestExport(t *testing.T) {
	mux, inv := newTestMux(t)
	seedPCs(t, inv, []models.PCInfo{
		{ID: 1, PCName: "A, Inc", Floor: 7},
		{ID: 2, PCName: "B", Floor: 5},
	})

	w := serve(mux, req(http.MethodGet, "/api/v1/pcs/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type: got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="pc-info.csv"` {
		t.Errorf("Content-Disposition: got %q", cd)
	}

	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if rows[0][0] != "id" || rows[1][3] != "A, Inc" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestExport_FloorFileName(t *testing.T) {
	mux, inv := newTestMux(t)
	seedPCs(t, inv, []models.PCInfo{{ID: 1, Floor: 7}, {ID: 2, Floor: 5}})

	w := serve(mux, req(http.MethodGet, "/api/v1/pcs/export?floor=5", nil))
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="pc-info-floor-5.csv"` {
		t.Errorf("Content-Disposition: got %q", cd)
	}
	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][0] != "2" {
		t.Errorf("rows: %v", rows)
	}
}

func TestExport_FileNames(t *testing.T) {
	mux, _ := newTestMux(t)
	for slug, name := range map[string]string{
		"laptops":       "laptop-info.csv",
		"servers":       "server-info.csv",
		"mouse-logs":    "mouse-service-logs.csv",
		"keyboard-logs": "keyboard-service-logs.csv",
		"ssd-logs":      "ssd-service-logs.csv",
	} {
		w := serve(mux, req(http.MethodGet, "/api/v1/"+slug+"/export", nil))
		want := fmt.Sprintf("attachment; filename=%q", name)
		if cd := w.Header().Get("Content-Disposition"); cd != want {
			t.Errorf("%s: got %q, want %q", slug, cd, want)
		}
	}
}

// --- Reports ---

func TestDashboard(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, req(http.MethodGet, "/api/v1/dashboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var d report.Dashboard
	decodeBody(t, w, &d)
	if len(d.Assets) != 3 || d.Assets[0].Count != len(models.DefaultPCs()) {
		t.Errorf("assets: %+v", d.Assets)
	}
	if len(d.RecentActivity) > report.RecentActivityLimit {
		t.Errorf("recent activity: %d entries", len(d.RecentActivity))
	}
	if _, ok := d.Usage[report.CategoryMouse]; !ok {
		t.Error("usage missing Mouse")
	}
}

func TestDepartments(t *testing.T) {
	mux, inv := newTestMux(t)
	ctx := context.Background()
	seedPCs(t, inv, []models.PCInfo{{ID: 1, Department: "IT"}, {ID: 2, Department: "IT"}, {ID: 3}})
	if err := inv.Laptops.Set(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if err := inv.Servers.Set(ctx, nil); err != nil {
		t.Fatal(err)
	}

	w := serve(mux, req(http.MethodGet, "/api/v1/departments", nil))
	var r report.Rollup
	decodeBody(t, w, &r)
	if len(r.Departments) != 1 || r.Departments[0].Department != "IT" || r.Departments[0].Quantity != 2 {
		t.Errorf("departments: %+v", r.Departments)
	}
	if r.Total != 2 {
		t.Errorf("total: got %d, want 2", r.Total)
	}
}

func TestPages(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, req(http.MethodGet, "/api/v1/pages", nil))
	var pages []struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
	}
	decodeBody(t, w, &pages)
	if len(pages) != 8 || pages[0].Slug != "dashboard" || pages[1].Slug != "pcs" {
		t.Errorf("pages: %+v", pages)
	}
}
