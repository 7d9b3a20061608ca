package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
	"github.com/mamadbah2/dairyledger/internal/repository/mongodb"
	"github.com/mamadbah2/dairyledger/internal/server/handlers"
	"github.com/mamadbah2/dairyledger/internal/server/router"
	"github.com/mamadbah2/dairyledger/internal/service/export"
	"github.com/mamadbah2/dairyledger/internal/service/reporting"
)

type fakeMilkRepo struct {
	entries []models.MilkEntry
}

func (f *fakeMilkRepo) Create(_ context.Context, entry models.MilkEntry) (models.MilkEntry, error) {
	entry.ID = primitive.NewObjectID()
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeMilkRepo) FindAll(_ context.Context) ([]models.MilkEntry, error) {
	out := append([]models.MilkEntry{}, f.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeMilkRepo) FindByDate(_ context.Context, date string) ([]models.MilkEntry, error) {
	out := []models.MilkEntry{}
	for _, e := range f.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMilkRepo) FindByDateRange(_ context.Context, from, to string) ([]models.MilkEntry, error) {
	out := []models.MilkEntry{}
	for _, e := range f.entries {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeMilkRepo) Update(_ context.Context, id string, entry models.MilkEntry) (models.MilkEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.MilkEntry{}, mongodb.ErrInvalidID
	}
	for i, e := range f.entries {
		if e.ID == oid {
			entry.ID = oid
			f.entries[i] = entry
			return entry, nil
		}
	}
	return models.MilkEntry{}, mongodb.ErrNotFound
}

func (f *fakeMilkRepo) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongodb.ErrInvalidID
	}
	for i, e := range f.entries {
		if e.ID == oid {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return mongodb.ErrNotFound
}

func (f *fakeMilkRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if err := f.Delete(context.Background(), id); err == nil {
			deleted++
		}
	}
	return deleted, nil
}

type fakeHealthRepo struct {
	logs []models.CowHealthLog
}

func (f *fakeHealthRepo) Create(_ context.Context, log models.CowHealthLog) (models.CowHealthLog, error) {
	log.ID = primitive.NewObjectID()
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeHealthRepo) FindAll(_ context.Context) ([]models.CowHealthLog, error) {
	out := append([]models.CowHealthLog{}, f.logs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeHealthRepo) FindByDateRange(_ context.Context, from, to string) ([]models.CowHealthLog, error) {
	out := []models.CowHealthLog{}
	for _, l := range f.logs {
		if l.Date >= from && l.Date <= to {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeHealthRepo) Update(_ context.Context, id string, log models.CowHealthLog) (models.CowHealthLog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.CowHealthLog{}, mongodb.ErrInvalidID
	}
	for i, l := range f.logs {
		if l.ID == oid {
			log.ID = oid
			f.logs[i] = log
			return log, nil
		}
	}
	return models.CowHealthLog{}, mongodb.ErrNotFound
}

func (f *fakeHealthRepo) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongodb.ErrInvalidID
	}
	for i, l := range f.logs {
		if l.ID == oid {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return mongodb.ErrNotFound
}

func (f *fakeHealthRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if err := f.Delete(context.Background(), id); err == nil {
			deleted++
		}
	}
	return deleted, nil
}

func newTestRouter(milk *fakeMilkRepo, health *fakeHealthRepo) *gin.Engine {
	reportingSvc := reporting.NewService(milk, nil)
	exportSvc := export.NewService(nil)

	milkHandler := handlers.NewMilkHandler(milk, nil)
	healthHandler := handlers.NewHealthHandler(health, nil)
	reportHandler := handlers.NewReportHandler(reportingSvc, exportSvc, milk, health, nil)

	return router.New(milkHandler, healthHandler, reportHandler, nil)
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCreateMilkEntryComputesAmount(t *testing.T) {
	milk := &fakeMilkRepo{}
	r := newTestRouter(milk, &fakeHealthRepo{})

	// The payload's amount must be discarded and recomputed.
	body := `{"date":"2026-01-05","shift":"morning","qty":10,"fat":4.0,"snf":8.5,"clr":28,"rate_per_litre":35,"amount":999}`
	w := doJSON(t, r, http.MethodPost, "/milk-entry", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	created := decode[models.MilkEntry](t, w)
	if created.Amount != 350.0 {
		t.Errorf("Amount = %v, want 350", created.Amount)
	}
	if created.ID.IsZero() {
		t.Error("created entry should carry a generated id")
	}
	if len(milk.entries) != 1 {
		t.Fatalf("store has %d entries, want 1", len(milk.entries))
	}
}

func TestCreateMilkEntryMissingRequiredField(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing qty", `{"date":"2026-01-05","shift":"morning","rate_per_litre":35}`, "qty"},
		{"missing rate", `{"date":"2026-01-05","shift":"morning","qty":10}`, "rate_per_litre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			milk := &fakeMilkRepo{}
			r := newTestRouter(milk, &fakeHealthRepo{})

			w := doJSON(t, r, http.MethodPost, "/milk-entry", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}

			resp := decode[map[string]string](t, w)
			if !strings.Contains(resp["error"], tt.wantField) {
				t.Errorf("error = %q, should name %q", resp["error"], tt.wantField)
			}
			if len(milk.entries) != 0 {
				t.Error("nothing should be persisted on validation failure")
			}
		})
	}
}

func TestUpdateMilkEntryRecomputesAmountAndKeepsID(t *testing.T) {
	milk := &fakeMilkRepo{}
	seeded, _ := milk.Create(context.Background(), models.MilkEntry{Date: "2026-01-05", Shift: "morning", Qty: 10, RatePerLitre: 35, Amount: 350})
	r := newTestRouter(milk, &fakeHealthRepo{})

	body := `{"date":"2026-01-05","shift":"morning","qty":12,"rate_per_litre":40}`
	w := doJSON(t, r, http.MethodPut, "/milk-entry/"+seeded.ID.Hex(), body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	updated := decode[models.MilkEntry](t, w)
	if updated.Amount != 480.0 {
		t.Errorf("Amount = %v, want 480", updated.Amount)
	}
	if updated.ID != seeded.ID {
		t.Errorf("id changed on update: %s -> %s", seeded.ID.Hex(), updated.ID.Hex())
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	r := newTestRouter(&fakeMilkRepo{}, &fakeHealthRepo{})

	body := `{"date":"2026-01-05","qty":12,"rate_per_litre":40}`
	w := doJSON(t, r, http.MethodPut, "/milk-entry/"+primitive.NewObjectID().Hex(), body)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMalformedIDReturnsBadRequest(t *testing.T) {
	milk := &fakeMilkRepo{}
	r := newTestRouter(milk, &fakeHealthRepo{})

	w := doJSON(t, r, http.MethodDelete, "/milk-entry/not-an-id", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("delete status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/milk-entry/not-an-id", `{"qty":1,"rate_per_litre":2}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("update status = %d, want 400", w.Code)
	}
}

func TestDeleteTwiceReportsNotFoundSecondTime(t *testing.T) {
	milk := &fakeMilkRepo{}
	seeded, _ := milk.Create(context.Background(), models.MilkEntry{Date: "2026-01-05", Qty: 10, RatePerLitre: 35})
	r := newTestRouter(milk, &fakeHealthRepo{})

	w := doJSON(t, r, http.MethodDelete, "/milk-entry/"+seeded.ID.Hex(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("first delete status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/milk-entry/"+seeded.ID.Hex(), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestBulkDeleteSkipsAlreadyDeletedIDs(t *testing.T) {
	milk := &fakeMilkRepo{}
	first, _ := milk.Create(context.Background(), models.MilkEntry{Date: "2026-01-05", Qty: 10, RatePerLitre: 35})
	second, _ := milk.Create(context.Background(), models.MilkEntry{Date: "2026-01-06", Qty: 8, RatePerLitre: 35})
	r := newTestRouter(milk, &fakeHealthRepo{})

	// Delete the second entry up front so the bulk request carries a stale id.
	if w := doJSON(t, r, http.MethodDelete, "/milk-entry/"+second.ID.Hex(), ""); w.Code != http.StatusOK {
		t.Fatalf("setup delete status = %d", w.Code)
	}

	body, _ := json.Marshal(models.BulkDeleteRequest{IDs: []string{first.ID.Hex(), second.ID.Hex()}})
	w := doJSON(t, r, http.MethodPost, "/milk-entry/bulk-delete", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("bulk delete status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/milk-entry", "")
	remaining := decode[[]models.MilkEntry](t, w)
	if len(remaining) != 0 {
		t.Errorf("list should be empty after bulk delete, got %d entries", len(remaining))
	}
}

func TestListByMonthValidatesParams(t *testing.T) {
	r := newTestRouter(&fakeMilkRepo{}, &fakeHealthRepo{})

	for _, path := range []string{"/milk-entry/by-month/2026/13", "/milk-entry/by-month/twenty/1", "/milk-entry/by-month/2026/0"} {
		w := doJSON(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

func TestListByDateValidatesDate(t *testing.T) {
	r := newTestRouter(&fakeMilkRepo{}, &fakeHealthRepo{})

	w := doJSON(t, r, http.MethodGet, "/milk-entry/by-date/05-01-2026", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDailyTotalAndChartScenario(t *testing.T) {
	milk := &fakeMilkRepo{}
	r := newTestRouter(milk, &fakeHealthRepo{})

	entries := []string{
		`{"date":"2026-01-05","shift":"morning","qty":10,"fat":4.0,"snf":8.5,"clr":28,"rate_per_litre":35}`,
		`{"date":"2026-01-05","shift":"evening","qty":8,"fat":3.8,"snf":8.2,"clr":27,"rate_per_litre":35}`,
	}
	for _, body := range entries {
		if w := doJSON(t, r, http.MethodPost, "/milk-entry", body); w.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/reports/daily-total/2026-01-05", "")
	if w.Code != http.StatusOK {
		t.Fatalf("daily total status = %d", w.Code)
	}
	total := decode[models.DailyTotal](t, w)
	if total.TotalQty != 18 || total.TotalAmount != 630.0 {
		t.Errorf("daily total = %+v, want qty 18 amount 630", total)
	}

	w = doJSON(t, r, http.MethodGet, "/charts/daily/2026-01-05", "")
	if w.Code != http.StatusOK {
		t.Fatalf("daily chart status = %d", w.Code)
	}
	groups := decode[[]models.ShiftGroup](t, w)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	byShift := map[string]models.ShiftGroup{}
	for _, g := range groups {
		byShift[g.Shift] = g
	}
	if g := byShift["morning"]; g.Qty != 10 || g.Amount != 350.0 {
		t.Errorf("morning group = %+v, want qty 10 amount 350", g)
	}
	if g := byShift["evening"]; g.Qty != 8 || g.Amount != 280.0 {
		t.Errorf("evening group = %+v, want qty 8 amount 280", g)
	}
}

func TestCowHealthCreateMissingFieldNamesIt(t *testing.T) {
	health := &fakeHealthRepo{}
	r := newTestRouter(&fakeMilkRepo{}, health)

	body := `{"date":"2026-01-05","shift":"morning","cow_name":"Ganga","cow_temperature":38.6,"medicine_given":false}`
	w := doJSON(t, r, http.MethodPost, "/cow-health", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decode[map[string]string](t, w)
	if !strings.Contains(resp["error"], "milk_given") {
		t.Errorf("error = %q, should name milk_given", resp["error"])
	}
	if len(health.logs) != 0 {
		t.Error("nothing should be persisted on validation failure")
	}
}

func TestCowHealthCreateAcceptsFalseMedicineGiven(t *testing.T) {
	health := &fakeHealthRepo{}
	r := newTestRouter(&fakeMilkRepo{}, health)

	body := `{"date":"2026-01-05","shift":"morning","cow_name":"Ganga","cow_temperature":38.6,"milk_given":9.5,"medicine_given":false}`
	w := doJSON(t, r, http.MethodPost, "/cow-health", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	created := decode[models.CowHealthLog](t, w)
	if created.MedicineGiven {
		t.Error("MedicineGiven should be false")
	}
}

func TestExportEmptyMonthStillProducesDocument(t *testing.T) {
	r := newTestRouter(&fakeMilkRepo{}, &fakeHealthRepo{})

	w := doJSON(t, r, http.MethodGet, "/reports/export-excel/by-month/2026/03", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("content type = %q, want %q", ct, export.ContentType)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "milk_report_2026_03.xlsx") {
		t.Errorf("content disposition = %q, should carry the scoped filename", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("document body should not be empty")
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(&fakeMilkRepo{}, &fakeHealthRepo{})

	w := doJSON(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
