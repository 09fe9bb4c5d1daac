// Package store provides an in-memory Repository implementation for
// development and tests.
package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenops/mowing-engine/schedule"
)

// =============================================================================
// MEMORY REPOSITORY - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	areas  map[schedule.AreaID]*schedule.ServiceArea
	events []schedule.MowingEvent
	photos []schedule.EventPhoto
	teams  map[schedule.TeamID]*schedule.Team
	config schedule.Config

	nextAreaID  schedule.AreaID
	nextEventID schedule.EventID
	nextPhotoID schedule.PhotoID
}

func NewMemory() *Memory {
	return &Memory{
		areas:       make(map[schedule.AreaID]*schedule.ServiceArea),
		teams:       make(map[schedule.TeamID]*schedule.Team),
		config:      schedule.DefaultConfig(),
		nextAreaID:  1,
		nextEventID: 1,
		nextPhotoID: 1,
	}
}

// copyArea returns a detached copy so callers can't mutate stored state.
func copyArea(a *schedule.ServiceArea) schedule.ServiceArea {
	out := *a
	out.History = append([]schedule.HistoryEntry(nil), a.History...)
	out.Polygon = append([]schedule.LatLng(nil), a.Polygon...)
	return out
}

// =============================================================================
// AREAS
// =============================================================================

func (m *Memory) ListAreas(_ context.Context, service schedule.ServiceKind) ([]schedule.ServiceArea, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(service), nil
}

func (m *Memory) listLocked(service schedule.ServiceKind) []schedule.ServiceArea {
	var out []schedule.ServiceArea
	for _, a := range m.areas {
		if service == "" || a.Service == service {
			out = append(out, copyArea(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memory) GetArea(_ context.Context, id schedule.AreaID) (schedule.ServiceArea, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.areas[id]
	if !ok {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	return copyArea(a), nil
}

func (m *Memory) SearchAreas(_ context.Context, query string, service schedule.ServiceKind, limit int) ([]schedule.ServiceArea, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	needle := strings.ToLower(query)

	var out []schedule.ServiceArea
	for _, a := range m.listLocked(service) {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(a.Address), needle) ||
			strings.Contains(strings.ToLower(a.District), needle) ||
			strings.Contains(strconv.Itoa(int(a.Lot)), needle) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *Memory) CreateArea(_ context.Context, area schedule.ServiceArea) (schedule.ServiceArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if area.ID == 0 {
		area.ID = m.nextAreaID
	}
	if area.ID >= m.nextAreaID {
		m.nextAreaID = area.ID + 1
	}
	if area.Service == "" {
		area.Service = schedule.ServiceMowing
	}
	if area.Status == "" {
		area.Status = schedule.StatusPending
	}

	stored := copyArea(&area)
	m.areas[area.ID] = &stored
	return copyArea(&stored), nil
}

func (m *Memory) UpdateStatus(_ context.Context, id schedule.AreaID, status schedule.AreaStatus) (schedule.ServiceArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.areas[id]
	if !ok {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	a.Status = status
	a.History = append(a.History, schedule.HistoryEntry{
		Date:   schedule.Today(),
		Status: string(status),
	})
	return copyArea(a), nil
}

func (m *Memory) UpdatePolygon(_ context.Context, id schedule.AreaID, polygon []schedule.LatLng) (schedule.ServiceArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.areas[id]
	if !ok {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	a.Polygon = append([]schedule.LatLng(nil), polygon...)
	return copyArea(a), nil
}

func (m *Memory) UpdatePosition(_ context.Context, id schedule.AreaID, lat, lng float64) (schedule.ServiceArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.areas[id]
	if !ok {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	a.Lat, a.Lng = lat, lng
	return copyArea(a), nil
}

func (m *Memory) AppendHistory(_ context.Context, id schedule.AreaID, entry schedule.HistoryEntry) (schedule.ServiceArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.areas[id]
	if !ok {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	a.History = append(a.History, entry)
	return copyArea(a), nil
}

func (m *Memory) SetManualForecast(_ context.Context, id schedule.AreaID, next schedule.Date) (schedule.ServiceArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.areas[id]
	if !ok {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	a.NextForecast = next
	a.ManualOverride = true
	return copyArea(a), nil
}

// =============================================================================
// COMPLETION REGISTRATION
// =============================================================================

// RegisterCompletions records events and, for completions, recomputes
// forecasts for the affected lots. The whole read-recompute-write
// sequence runs under the store lock, which is the serialization the
// core's concurrency contract requires.
func (m *Memory) RegisterCompletions(_ context.Context, ids []schedule.AreaID, date schedule.Date, kind schedule.EventKind, observation, registeredBy string) ([]schedule.MowingEvent, error) {
	if len(ids) == 0 {
		return nil, schedule.ErrNoAreasSelected
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	status := "forecast"
	if kind == schedule.EventCompleted {
		status = string(schedule.StatusDone)
	}
	if observation == "" {
		observation = "mowing forecast"
		if kind == schedule.EventCompleted {
			observation = "mowing completed"
		}
	}

	var created []schedule.MowingEvent
	for _, id := range ids {
		a, ok := m.areas[id]
		if !ok {
			continue
		}

		if kind == schedule.EventCompleted {
			a.LastCompletion = date
			a.Status = schedule.StatusDone
			// Completion re-enters the area into the automatic cycle.
			a.ManualOverride = false
		}
		a.History = append(a.History, schedule.HistoryEntry{
			Date:        date,
			Status:      status,
			Kind:        kind,
			Observation: observation,
		})

		event := schedule.MowingEvent{
			ID:           m.nextEventID,
			AreaID:       id,
			Date:         date,
			Kind:         kind,
			Status:       status,
			Observation:  observation,
			RegisteredBy: registeredBy,
			RegisteredAt: time.Now(),
		}
		m.events = append(m.events, event)
		created = append(created, event)
		m.nextEventID++
	}

	// Forecast annotations never trigger recomputation.
	if kind != schedule.EventCompleted {
		return created, nil
	}

	snapshot := m.listLocked(schedule.ServiceMowing)
	results := schedule.RecalculateAfterCompletion(snapshot, ids, m.config)
	m.applyForecastsLocked(results)
	return created, nil
}

func (m *Memory) applyForecastsLocked(results []schedule.ForecastResult) {
	for _, r := range results {
		a, ok := m.areas[r.AreaID]
		if !ok || a.ManualOverride {
			continue
		}
		a.NextForecast = r.NextForecast
		a.DaysToComplete = r.DaysToComplete
	}
}

func (m *Memory) UpdateForecasts(_ context.Context, results []schedule.ForecastResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyForecastsLocked(results)
	return nil
}

// =============================================================================
// EVENTS AND PHOTOS
// =============================================================================

func (m *Memory) CreateEvent(_ context.Context, event schedule.MowingEvent) (schedule.MowingEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.areas[event.AreaID]; !ok {
		return schedule.MowingEvent{}, schedule.ErrAreaNotFound
	}
	event.ID = m.nextEventID
	m.nextEventID++
	if event.RegisteredAt.IsZero() {
		event.RegisteredAt = time.Now()
	}
	m.events = append(m.events, event)
	return event, nil
}

func (m *Memory) ListEvents(_ context.Context, areaID schedule.AreaID, filter schedule.EventFilter) ([]schedule.MowingEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []schedule.MowingEvent
	for _, e := range m.events {
		if e.AreaID != areaID {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		items = append(items, e)
	}

	// Newest first; same-day ties break by id so paging matches the
	// sqlite store's ORDER BY date DESC, id DESC.
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date.Equal(items[j].Date) {
			return items[i].ID > items[j].ID
		}
		return items[i].Date.After(items[j].Date)
	})

	page, size := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil, nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}

func (m *Memory) AddEventPhoto(_ context.Context, photo schedule.EventPhoto) (schedule.EventPhoto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	for _, e := range m.events {
		if e.ID == photo.EventID {
			found = true
			break
		}
	}
	if !found {
		return schedule.EventPhoto{}, schedule.ErrEventNotFound
	}

	photo.ID = m.nextPhotoID
	m.nextPhotoID++
	m.photos = append(m.photos, photo)
	return photo, nil
}

func (m *Memory) ListEventPhotos(_ context.Context, eventID schedule.EventID) ([]schedule.EventPhoto, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []schedule.EventPhoto
	for _, p := range m.photos {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

// =============================================================================
// TEAMS
// =============================================================================

func (m *Memory) ListTeams(_ context.Context) ([]schedule.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []schedule.Team
	for _, t := range m.teams {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) AssignTeam(_ context.Context, teamID schedule.TeamID, areaID schedule.AreaID) (schedule.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.teams[teamID]
	if !ok {
		return schedule.Team{}, schedule.ErrTeamNotFound
	}
	if _, ok := m.areas[areaID]; !ok {
		return schedule.Team{}, schedule.ErrAreaNotFound
	}
	t.CurrentArea = areaID
	t.Status = schedule.TeamAssigned
	return *t, nil
}

// =============================================================================
// CONFIG
// =============================================================================

func (m *Memory) GetConfig(_ context.Context) (schedule.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyConfig(m.config), nil
}

// UpdateConfig merges the given rates: only lots present in the update change.
func (m *Memory) UpdateConfig(_ context.Context, cfg schedule.Config) (schedule.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	merged := copyConfig(m.config)
	for lot, rate := range cfg.ProductionRates {
		merged.ProductionRates[lot] = rate
	}
	m.config = merged
	return copyConfig(m.config), nil
}

func copyConfig(cfg schedule.Config) schedule.Config {
	out := schedule.Config{ProductionRates: make(map[schedule.Lot]decimal.Decimal, len(cfg.ProductionRates))}
	for lot, rate := range cfg.ProductionRates {
		out.ProductionRates[lot] = rate
	}
	return out
}
