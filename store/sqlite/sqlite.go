/*
Package sqlite provides a SQLite-backed implementation of the
schedule.Repository interface.

PURPOSE:
  Production persistence for service areas, mowing events, photos,
  teams and per-lot configuration. The same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  areas:     Service area records (history kept as a JSON column)
  events:    Completion/forecast event log per area
  photos:    Photo references attached to events
  teams:     Field crews
  lot_rates: Legacy per-lot production rates

DATES:
  Calendar days are stored as 'YYYY-MM-DD' TEXT, NULL when absent.
  Timestamps are RFC3339 TEXT.

CONCURRENCY:
  RegisterCompletions runs the whole read-recompute-write sequence
  inside a mutex plus a database transaction. That satisfies the
  scheduling core's contract: recompute-and-write is serialized by the
  persistence layer, never by the core.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  repo, err := sqlite.New("./data/mowing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer repo.Close()

SEE ALSO:
  - schedule/repository.go: Interface definition and contract
  - schedule/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/greenops/mowing-engine/schedule"
)

// Store implements schedule.Repository using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex // serializes recompute-and-write batches
}

// New creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS areas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ord INTEGER NOT NULL DEFAULT 0,
		type TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		district TEXT NOT NULL DEFAULT '',
		surface_m2 TEXT NOT NULL DEFAULT '0',
		lat REAL NOT NULL DEFAULT 0,
		lng REAL NOT NULL DEFAULT 0,
		polygon_json TEXT,
		lot INTEGER NOT NULL DEFAULT 0,
		service TEXT NOT NULL DEFAULT 'mowing',
		status TEXT NOT NULL DEFAULT 'pending',
		scheduled_date TEXT,
		last_completion TEXT,
		next_forecast TEXT,
		manual_override INTEGER NOT NULL DEFAULT 0,
		days_to_complete INTEGER NOT NULL DEFAULT 0,
		registered_by TEXT NOT NULL DEFAULT '',
		registered_at TEXT,
		history_json TEXT NOT NULL DEFAULT '[]'
	);

	-- Cohort selection (lot + service) is the recompute hot path
	CREATE INDEX IF NOT EXISTS idx_areas_service_lot
		ON areas(service, lot);
	CREATE INDEX IF NOT EXISTS idx_areas_next_forecast
		ON areas(next_forecast) WHERE next_forecast IS NOT NULL;

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		area_id INTEGER NOT NULL REFERENCES areas(id),
		date TEXT NOT NULL,
		kind TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT '',
		observation TEXT NOT NULL DEFAULT '',
		registered_by TEXT NOT NULL DEFAULT '',
		registered_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_area_date
		ON events(area_id, date DESC);

	CREATE TABLE IF NOT EXISTS photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL REFERENCES events(id),
		kind TEXT NOT NULL,
		storage_path TEXT NOT NULL,
		taken_at TEXT,
		uploaded_by TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_photos_event
		ON photos(event_id);

	CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		service TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		lot INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'idle',
		current_area INTEGER NOT NULL DEFAULT 0,
		lat REAL NOT NULL DEFAULT 0,
		lng REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS lot_rates (
		lot INTEGER PRIMARY KEY,
		rate TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return err
	}

	// Seed default rates on first run only.
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM lot_rates`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for lot, rate := range schedule.DefaultConfig().ProductionRates {
			if _, err := s.db.Exec(`INSERT INTO lot_rates (lot, rate) VALUES (?, ?)`, int(lot), rate.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// =============================================================================
// SCAN/ARG HELPERS
// =============================================================================

// querier abstracts *sql.DB and *sql.Tx so the area helpers work in both.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func dateArg(d schedule.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func scanDate(ns sql.NullString) (schedule.Date, error) {
	if !ns.Valid || ns.String == "" {
		return schedule.Date{}, nil
	}
	return schedule.ParseDate(ns.String)
}

func timeArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func scanTime(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolArg(b bool) int {
	if b {
		return 1
	}
	return 0
}

const areaColumns = `id, ord, type, address, district, surface_m2, lat, lng,
	polygon_json, lot, service, status, scheduled_date, last_completion,
	next_forecast, manual_override, days_to_complete, registered_by,
	registered_at, history_json`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArea(row rowScanner) (schedule.ServiceArea, error) {
	var (
		a                                      schedule.ServiceArea
		surface                                string
		polygonJSON, historyJSON               sql.NullString
		scheduled, lastCompletion, next, regAt sql.NullString
		override                               int
	)

	err := row.Scan(&a.ID, &a.Order, &a.Type, &a.Address, &a.District,
		&surface, &a.Lat, &a.Lng, &polygonJSON, &a.Lot, &a.Service,
		&a.Status, &scheduled, &lastCompletion, &next, &override,
		&a.DaysToComplete, &a.RegisteredBy, &regAt, &historyJSON)
	if err != nil {
		return schedule.ServiceArea{}, err
	}

	if a.SurfaceM2, err = decimal.NewFromString(surface); err != nil {
		return schedule.ServiceArea{}, fmt.Errorf("area %d: bad surface: %w", a.ID, err)
	}
	if a.ScheduledDate, err = scanDate(scheduled); err != nil {
		return schedule.ServiceArea{}, err
	}
	if a.LastCompletion, err = scanDate(lastCompletion); err != nil {
		return schedule.ServiceArea{}, err
	}
	if a.NextForecast, err = scanDate(next); err != nil {
		return schedule.ServiceArea{}, err
	}
	a.ManualOverride = override != 0
	a.RegisteredAt = scanTime(regAt)

	if polygonJSON.Valid && polygonJSON.String != "" {
		if err := json.Unmarshal([]byte(polygonJSON.String), &a.Polygon); err != nil {
			return schedule.ServiceArea{}, fmt.Errorf("area %d: bad polygon: %w", a.ID, err)
		}
	}
	if historyJSON.Valid && historyJSON.String != "" {
		if err := json.Unmarshal([]byte(historyJSON.String), &a.History); err != nil {
			return schedule.ServiceArea{}, fmt.Errorf("area %d: bad history: %w", a.ID, err)
		}
	}
	return a, nil
}

func getArea(ctx context.Context, q querier, id schedule.AreaID) (schedule.ServiceArea, error) {
	row := q.QueryRowContext(ctx, `SELECT `+areaColumns+` FROM areas WHERE id = ?`, int64(id))
	area, err := scanArea(row)
	if err == sql.ErrNoRows {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	return area, err
}

func listAreas(ctx context.Context, q querier, service schedule.ServiceKind) ([]schedule.ServiceArea, error) {
	query := `SELECT ` + areaColumns + ` FROM areas`
	var args []any
	if service != "" {
		query += ` WHERE service = ?`
		args = append(args, string(service))
	}
	query += ` ORDER BY id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.ServiceArea
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, area)
	}
	return out, rows.Err()
}

func appendHistory(ctx context.Context, q querier, id schedule.AreaID, entry schedule.HistoryEntry) error {
	var historyJSON string
	err := q.QueryRowContext(ctx, `SELECT history_json FROM areas WHERE id = ?`, int64(id)).Scan(&historyJSON)
	if err == sql.ErrNoRows {
		return schedule.ErrAreaNotFound
	}
	if err != nil {
		return err
	}

	var history []schedule.HistoryEntry
	if historyJSON != "" {
		if err := json.Unmarshal([]byte(historyJSON), &history); err != nil {
			return fmt.Errorf("area %d: bad history: %w", id, err)
		}
	}
	history = append(history, entry)

	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `UPDATE areas SET history_json = ? WHERE id = ?`, string(raw), int64(id))
	return err
}

// =============================================================================
// AREAS
// =============================================================================

func (s *Store) ListAreas(ctx context.Context, service schedule.ServiceKind) ([]schedule.ServiceArea, error) {
	return listAreas(ctx, s.db, service)
}

func (s *Store) GetArea(ctx context.Context, id schedule.AreaID) (schedule.ServiceArea, error) {
	return getArea(ctx, s.db, id)
}

func (s *Store) SearchAreas(ctx context.Context, query string, service schedule.ServiceKind, limit int) ([]schedule.ServiceArea, error) {
	if limit <= 0 {
		limit = 50
	}
	needle := "%" + strings.ToLower(query) + "%"

	sqlQuery := `SELECT ` + areaColumns + ` FROM areas
		WHERE (LOWER(address) LIKE ? OR LOWER(district) LIKE ? OR CAST(lot AS TEXT) LIKE ?)`
	args := []any{needle, needle, needle}
	if service != "" {
		sqlQuery += ` AND service = ?`
		args = append(args, string(service))
	}
	sqlQuery += ` ORDER BY id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.ServiceArea
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, area)
	}
	return out, rows.Err()
}

func (s *Store) CreateArea(ctx context.Context, area schedule.ServiceArea) (schedule.ServiceArea, error) {
	if area.Service == "" {
		area.Service = schedule.ServiceMowing
	}
	if area.Status == "" {
		area.Status = schedule.StatusPending
	}

	polygonJSON, err := json.Marshal(area.Polygon)
	if err != nil {
		return schedule.ServiceArea{}, err
	}
	historyJSON, err := json.Marshal(area.History)
	if err != nil {
		return schedule.ServiceArea{}, err
	}

	var idArg any
	if area.ID != 0 {
		idArg = int64(area.ID)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO areas (id, ord, type, address, district, surface_m2, lat, lng,
			polygon_json, lot, service, status, scheduled_date, last_completion,
			next_forecast, manual_override, days_to_complete, registered_by,
			registered_at, history_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		idArg, area.Order, area.Type, area.Address, area.District,
		area.SurfaceM2.String(), area.Lat, area.Lng, string(polygonJSON),
		int(area.Lot), string(area.Service), string(area.Status),
		dateArg(area.ScheduledDate), dateArg(area.LastCompletion),
		dateArg(area.NextForecast), boolArg(area.ManualOverride),
		area.DaysToComplete, area.RegisteredBy, timeArg(area.RegisteredAt),
		string(historyJSON))
	if err != nil {
		return schedule.ServiceArea{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return schedule.ServiceArea{}, err
	}
	return getArea(ctx, s.db, schedule.AreaID(id))
}

func (s *Store) UpdateStatus(ctx context.Context, id schedule.AreaID, status schedule.AreaStatus) (schedule.ServiceArea, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE areas SET status = ? WHERE id = ?`, string(status), int64(id))
	if err != nil {
		return schedule.ServiceArea{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	if err := appendHistory(ctx, s.db, id, schedule.HistoryEntry{Date: schedule.Today(), Status: string(status)}); err != nil {
		return schedule.ServiceArea{}, err
	}
	return getArea(ctx, s.db, id)
}

func (s *Store) UpdatePolygon(ctx context.Context, id schedule.AreaID, polygon []schedule.LatLng) (schedule.ServiceArea, error) {
	raw, err := json.Marshal(polygon)
	if err != nil {
		return schedule.ServiceArea{}, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE areas SET polygon_json = ? WHERE id = ?`, string(raw), int64(id))
	if err != nil {
		return schedule.ServiceArea{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	return getArea(ctx, s.db, id)
}

func (s *Store) UpdatePosition(ctx context.Context, id schedule.AreaID, lat, lng float64) (schedule.ServiceArea, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE areas SET lat = ?, lng = ? WHERE id = ?`, lat, lng, int64(id))
	if err != nil {
		return schedule.ServiceArea{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	return getArea(ctx, s.db, id)
}

func (s *Store) AppendHistory(ctx context.Context, id schedule.AreaID, entry schedule.HistoryEntry) (schedule.ServiceArea, error) {
	if err := appendHistory(ctx, s.db, id, entry); err != nil {
		return schedule.ServiceArea{}, err
	}
	return getArea(ctx, s.db, id)
}

func (s *Store) SetManualForecast(ctx context.Context, id schedule.AreaID, next schedule.Date) (schedule.ServiceArea, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE areas SET next_forecast = ?, manual_override = 1 WHERE id = ?`,
		dateArg(next), int64(id))
	if err != nil {
		return schedule.ServiceArea{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.ServiceArea{}, schedule.ErrAreaNotFound
	}
	return getArea(ctx, s.db, id)
}

// =============================================================================
// COMPLETION REGISTRATION
// =============================================================================

// RegisterCompletions records events and, for completions, recomputes
// forecasts for the affected lots inside one transaction. The store
// mutex serializes concurrent batches so the recompute engine always
// sees a consistent snapshot.
func (s *Store) RegisterCompletions(ctx context.Context, ids []schedule.AreaID, date schedule.Date, kind schedule.EventKind, observation, registeredBy string) ([]schedule.MowingEvent, error) {
	if len(ids) == 0 {
		return nil, schedule.ErrNoAreasSelected
	}
	if observation == "" {
		observation = "mowing forecast"
		if kind == schedule.EventCompleted {
			observation = "mowing completed"
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	var created []schedule.MowingEvent
	for _, id := range ids {
		// Unknown ids are skipped, not errors; data consistency is the
		// ingestion pipeline's problem.
		if _, err := getArea(ctx, tx, id); err != nil {
			if err == schedule.ErrAreaNotFound {
				continue
			}
			return nil, err
		}

		entry := schedule.HistoryEntry{Date: date, Kind: kind, Observation: observation}
		if kind == schedule.EventCompleted {
			entry.Status = string(schedule.StatusDone)
			_, err = tx.ExecContext(ctx, `
				UPDATE areas SET last_completion = ?, status = ?, manual_override = 0
				WHERE id = ?`,
				dateArg(date), string(schedule.StatusDone), int64(id))
			if err != nil {
				return nil, err
			}
		} else {
			entry.Status = "forecast"
		}

		if err := appendHistory(ctx, tx, id, entry); err != nil {
			return nil, err
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO events (area_id, date, kind, status, observation, registered_by, registered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			int64(id), date.String(), string(kind), entry.Status, entry.Observation,
			registeredBy, now.UTC().Format(time.RFC3339))
		if err != nil {
			return nil, err
		}
		eventID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		created = append(created, schedule.MowingEvent{
			ID:           schedule.EventID(eventID),
			AreaID:       id,
			Date:         date,
			Kind:         kind,
			Status:       entry.Status,
			Observation:  entry.Observation,
			RegisteredBy: registeredBy,
			RegisteredAt: now,
		})
	}

	// Forecast annotations never trigger recomputation.
	if kind == schedule.EventCompleted {
		snapshot, err := listAreas(ctx, tx, schedule.ServiceMowing)
		if err != nil {
			return nil, err
		}
		cfg, err := getConfig(ctx, tx)
		if err != nil {
			return nil, err
		}
		results := schedule.RecalculateAfterCompletion(snapshot, ids, cfg)
		if err := applyForecasts(ctx, tx, results); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func applyForecasts(ctx context.Context, q querier, results []schedule.ForecastResult) error {
	for _, r := range results {
		_, err := q.ExecContext(ctx, `
			UPDATE areas SET next_forecast = ?, days_to_complete = ?
			WHERE id = ? AND manual_override = 0`,
			dateArg(r.NextForecast), r.DaysToComplete, int64(r.AreaID))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) UpdateForecasts(ctx context.Context, results []schedule.ForecastResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := applyForecasts(ctx, tx, results); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// EVENTS AND PHOTOS
// =============================================================================

func (s *Store) CreateEvent(ctx context.Context, event schedule.MowingEvent) (schedule.MowingEvent, error) {
	if _, err := getArea(ctx, s.db, event.AreaID); err != nil {
		return schedule.MowingEvent{}, err
	}
	if event.RegisteredAt.IsZero() {
		event.RegisteredAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO events (area_id, date, kind, status, observation, registered_by, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		int64(event.AreaID), event.Date.String(), string(event.Kind), event.Status,
		event.Observation, event.RegisteredBy, event.RegisteredAt.UTC().Format(time.RFC3339))
	if err != nil {
		return schedule.MowingEvent{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return schedule.MowingEvent{}, err
	}
	event.ID = schedule.EventID(id)
	return event, nil
}

func (s *Store) ListEvents(ctx context.Context, areaID schedule.AreaID, filter schedule.EventFilter) ([]schedule.MowingEvent, error) {
	query := `SELECT id, area_id, date, kind, status, observation, registered_by, registered_at
		FROM events WHERE area_id = ?`
	args := []any{int64(areaID)}

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	if !filter.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, filter.From.String())
	}
	if !filter.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, filter.To.String())
	}

	page, size := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	query += ` ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, size, (page-1)*size)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.MowingEvent
	for rows.Next() {
		var (
			e       schedule.MowingEvent
			dateStr string
			regAt   sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.AreaID, &dateStr, &e.Kind, &e.Status, &e.Observation, &e.RegisteredBy, &regAt); err != nil {
			return nil, err
		}
		if e.Date, err = schedule.ParseDate(dateStr); err != nil {
			return nil, err
		}
		e.RegisteredAt = scanTime(regAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) AddEventPhoto(ctx context.Context, photo schedule.EventPhoto) (schedule.EventPhoto, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE id = ?`, int64(photo.EventID)).Scan(&exists)
	if err != nil {
		return schedule.EventPhoto{}, err
	}
	if exists == 0 {
		return schedule.EventPhoto{}, schedule.ErrEventNotFound
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (event_id, kind, storage_path, taken_at, uploaded_by)
		VALUES (?, ?, ?, ?, ?)`,
		int64(photo.EventID), string(photo.Kind), photo.StoragePath,
		timeArg(photo.TakenAt), photo.UploadedBy)
	if err != nil {
		return schedule.EventPhoto{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return schedule.EventPhoto{}, err
	}
	photo.ID = schedule.PhotoID(id)
	return photo, nil
}

func (s *Store) ListEventPhotos(ctx context.Context, eventID schedule.EventID) ([]schedule.EventPhoto, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, kind, storage_path, taken_at, uploaded_by
		FROM photos WHERE event_id = ? ORDER BY id`, int64(eventID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.EventPhoto
	for rows.Next() {
		var (
			p       schedule.EventPhoto
			takenAt sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.EventID, &p.Kind, &p.StoragePath, &takenAt, &p.UploadedBy); err != nil {
			return nil, err
		}
		p.TakenAt = scanTime(takenAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// =============================================================================
// TEAMS
// =============================================================================

func (s *Store) ListTeams(ctx context.Context) ([]schedule.Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, service, type, lot, status, current_area, lat, lng
		FROM teams ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Team
	for rows.Next() {
		var t schedule.Team
		if err := rows.Scan(&t.ID, &t.Service, &t.Type, &t.Lot, &t.Status, &t.CurrentArea, &t.Location.Lat, &t.Location.Lng); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) AssignTeam(ctx context.Context, teamID schedule.TeamID, areaID schedule.AreaID) (schedule.Team, error) {
	if _, err := getArea(ctx, s.db, areaID); err != nil {
		return schedule.Team{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE teams SET current_area = ?, status = ? WHERE id = ?`,
		int64(areaID), string(schedule.TeamAssigned), int64(teamID))
	if err != nil {
		return schedule.Team{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.Team{}, schedule.ErrTeamNotFound
	}

	var t schedule.Team
	row := s.db.QueryRowContext(ctx, `
		SELECT id, service, type, lot, status, current_area, lat, lng
		FROM teams WHERE id = ?`, int64(teamID))
	if err := row.Scan(&t.ID, &t.Service, &t.Type, &t.Lot, &t.Status, &t.CurrentArea, &t.Location.Lat, &t.Location.Lng); err != nil {
		return schedule.Team{}, err
	}
	return t, nil
}

// =============================================================================
// CONFIG
// =============================================================================

func getConfig(ctx context.Context, q querier) (schedule.Config, error) {
	rows, err := q.QueryContext(ctx, `SELECT lot, rate FROM lot_rates`)
	if err != nil {
		return schedule.Config{}, err
	}
	defer rows.Close()

	cfg := schedule.Config{ProductionRates: make(map[schedule.Lot]decimal.Decimal)}
	for rows.Next() {
		var (
			lot  int
			rate string
		)
		if err := rows.Scan(&lot, &rate); err != nil {
			return schedule.Config{}, err
		}
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return schedule.Config{}, fmt.Errorf("lot %d: bad rate: %w", lot, err)
		}
		cfg.ProductionRates[schedule.Lot(lot)] = d
	}
	return cfg, rows.Err()
}

func (s *Store) GetConfig(ctx context.Context) (schedule.Config, error) {
	return getConfig(ctx, s.db)
}

func (s *Store) UpdateConfig(ctx context.Context, cfg schedule.Config) (schedule.Config, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return schedule.Config{}, err
	}
	defer tx.Rollback()

	for lot, rate := range cfg.ProductionRates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO lot_rates (lot, rate) VALUES (?, ?)
			ON CONFLICT(lot) DO UPDATE SET rate = excluded.rate`,
			int(lot), rate.String())
		if err != nil {
			return schedule.Config{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return schedule.Config{}, err
	}
	return getConfig(ctx, s.db)
}
