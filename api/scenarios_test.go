/*
scenarios_test.go - End-to-end scenarios against the SQLite store

PURPOSE:
	Runs the registration workflow through the HTTP router backed by the
	production SQLite store instead of the in-memory one:
	- Daily batch registration recomputes and persists lot forecasts
	- Manual overrides survive an admin recalculation
	- Photos attach to persisted events
	- Areas, events and rates survive closing and reopening the file

These double as integration tests for store/sqlite.
*/
package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/greenops/mowing-engine/schedule"
	"github.com/greenops/mowing-engine/store/sqlite"
)

func newSQLiteRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewRouter(NewHandler(store, schedule.NewCalendar()))
}

func createArea(t *testing.T, router http.Handler, body string) AreaDTO {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/areas", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Failed to create area: %d: %s", rec.Code, rec.Body.String())
	}
	return decode[AreaDTO](t, rec)
}

func TestScenario_DailyRound(t *testing.T) {
	// GIVEN: Two lot-1 areas and one lot-2 area in SQLite
	// WHEN: A daily batch completes both lot-1 areas on Monday 2025-01-06
	// THEN: Both get persisted forecasts 45 days out; lot 2 is untouched

	router := newSQLiteRouter(t)

	a1 := createArea(t, router, `{"address":"Av. Saul Elkind, 100","district":"Cinco Conjuntos","lot":1}`)
	a2 := createArea(t, router, `{"address":"R. Serra da Graciosa, 55","district":"Cinco Conjuntos","lot":1}`)
	b1 := createArea(t, router, `{"address":"Av. Inglaterra, 900","district":"Igapo","lot":2}`)

	rec := doRequest(t, router, http.MethodPost, "/api/areas/register-daily",
		fmt.Sprintf(`{"area_ids":[%d,%d],"date":"2025-01-06","registered_by":"fiscal"}`, a1.ID, a2.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	batch := decode[struct {
		Registered int        `json:"registered"`
		Events     []EventDTO `json:"events"`
	}](t, rec)
	if batch.Registered != 2 {
		t.Errorf("expected 2 registrations, got %d", batch.Registered)
	}
	for _, e := range batch.Events {
		if e.Kind != "completed" || e.Date != "2025-01-06" {
			t.Errorf("unexpected event: %+v", e)
		}
	}

	for _, id := range []int64{a1.ID, a2.ID} {
		area := decode[AreaDTO](t, doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/areas/%d", id), ""))
		if area.LastCompletion != "2025-01-06" {
			t.Errorf("area %d: expected last_completion 2025-01-06, got %q", id, area.LastCompletion)
		}
		if area.NextForecast != "2025-02-20" {
			t.Errorf("area %d: expected next_forecast 2025-02-20, got %q", id, area.NextForecast)
		}
		if area.Status != "done" {
			t.Errorf("area %d: expected status done, got %q", id, area.Status)
		}
		if len(area.History) != 1 {
			t.Errorf("area %d: expected 1 history entry, got %d", id, len(area.History))
		}
	}

	other := decode[AreaDTO](t, doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/areas/%d", b1.ID), ""))
	if other.NextForecast != "" || other.Status != "pending" {
		t.Errorf("lot-2 area should be untouched, got %+v", other)
	}
}

func TestScenario_ManualOverrideSurvivesRecalculate(t *testing.T) {
	// GIVEN: A completed area whose forecast is then pinned by hand
	// WHEN: An admin recalculation runs
	// THEN: The pinned date stands and the area is not counted

	router := newSQLiteRouter(t)
	a := createArea(t, router, `{"address":"Av. Duque de Caxias, 635","lot":1}`)

	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/areas/%d/register", a.ID),
		`{"date":"2025-01-06","registered_by":"fiscal"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/areas/%d/manual-forecast", a.ID),
		`{"next_forecast":"2025-06-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/api/admin/recalculate", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := decode[RecalculateResultDTO](t, rec)
	if result.Calculated != 0 {
		t.Errorf("overridden area should not be recalculated, got %d", result.Calculated)
	}

	area := decode[AreaDTO](t, doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/areas/%d", a.ID), ""))
	if !area.ManualOverride {
		t.Error("expected manual_override to persist")
	}
	if area.NextForecast != "2025-06-01" {
		t.Errorf("expected pinned 2025-06-01, got %q", area.NextForecast)
	}
}

func TestScenario_EventPhotos(t *testing.T) {
	// Photos attach to a persisted event and list back in order.

	router := newSQLiteRouter(t)
	a := createArea(t, router, `{"address":"Praca Sete de Setembro","lot":1}`)

	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/areas/%d/register", a.ID),
		`{"date":"2025-01-06","registered_by":"fiscal"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	event := decode[EventDTO](t, rec)

	for _, body := range []string{
		`{"kind":"before","storage_path":"mowing/1/before.jpg","uploaded_by":"fiscal"}`,
		`{"kind":"after","storage_path":"mowing/1/after.jpg","uploaded_by":"fiscal"}`,
	} {
		rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/events/%d/photos", event.ID), body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	photos := decode[[]PhotoDTO](t, doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/events/%d/photos", event.ID), ""))
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	if photos[0].Kind != "before" || photos[1].Kind != "after" {
		t.Errorf("unexpected photo order: %+v", photos)
	}
}

func TestScenario_ReopenDatabaseFile(t *testing.T) {
	// GIVEN: A file-backed store with an area, a completion and a rate change
	// WHEN: The store is closed and reopened
	// THEN: Everything reads back

	path := filepath.Join(t.TempDir(), "mowing.db")

	store, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	router := NewRouter(NewHandler(store, schedule.NewCalendar()))

	a := createArea(t, router, `{"address":"Av. Higienopolis, 10","lot":1}`)
	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/areas/%d/register", a.ID),
		`{"date":"2025-01-06","observation":"full cut","registered_by":"fiscal"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, router, http.MethodPatch, "/api/config", `{"production_rates":{"3":18000}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	reopened, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })
	router = NewRouter(NewHandler(reopened, schedule.NewCalendar()))

	area := decode[AreaDTO](t, doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/areas/%d", a.ID), ""))
	if area.LastCompletion != "2025-01-06" || area.NextForecast != "2025-02-20" {
		t.Errorf("dates did not survive reopen: %+v", area)
	}
	if len(area.History) != 1 || area.History[0].Observation != "full cut" {
		t.Errorf("history did not survive reopen: %+v", area.History)
	}

	events := decode[[]EventDTO](t, doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/areas/%d/history", a.ID), ""))
	if len(events) != 1 || events[0].Observation != "full cut" {
		t.Errorf("events did not survive reopen: %+v", events)
	}

	cfg := decode[ConfigDTO](t, doRequest(t, router, http.MethodGet, "/api/config", ""))
	if cfg.ProductionRates["1"] != 25000 {
		t.Errorf("expected seeded default rate for lot 1, got %v", cfg.ProductionRates["1"])
	}
	if cfg.ProductionRates["3"] != 18000 {
		t.Errorf("expected updated rate for lot 3, got %v", cfg.ProductionRates["3"])
	}
}
