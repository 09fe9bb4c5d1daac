/*
repository.go - Persistence contract for service areas and events

PURPOSE:
  Defines the interface between the scheduling core/API and storage.
  The core never touches a database: it is handed snapshots and returns
  results. Implementations decide storage technology and transactional
  semantics.

CONCURRENCY CONTRACT:
  Two completion batches for the same lot processed concurrently could
  each read a stale snapshot and overwrite the other's forecasts. The
  core is stateless, so serialization is the repository's job:
  RegisterCompletions must read the snapshot, run the recompute engine
  and persist the resulting forecasts under a single lock or
  transaction. Both shipped implementations do exactly that.

IMPLEMENTATIONS:
  - schedule/store: In-memory, for development and tests
  - store/sqlite:   SQLite, for production

SEE ALSO:
  - recompute.go: The engine RegisterCompletions invokes
*/
package schedule

import "context"

// EventFilter narrows per-area event history queries. Zero values mean
// "no filter"; Page is 1-based.
type EventFilter struct {
	Kind     EventKind
	From     Date
	To       Date
	Page     int
	PageSize int
}

// Repository is the storage contract the scheduler and API depend on.
type Repository interface {
	// Areas
	ListAreas(ctx context.Context, service ServiceKind) ([]ServiceArea, error)
	GetArea(ctx context.Context, id AreaID) (ServiceArea, error)
	SearchAreas(ctx context.Context, query string, service ServiceKind, limit int) ([]ServiceArea, error)
	CreateArea(ctx context.Context, area ServiceArea) (ServiceArea, error)

	UpdateStatus(ctx context.Context, id AreaID, status AreaStatus) (ServiceArea, error)
	UpdatePolygon(ctx context.Context, id AreaID, polygon []LatLng) (ServiceArea, error)
	UpdatePosition(ctx context.Context, id AreaID, lat, lng float64) (ServiceArea, error)
	AppendHistory(ctx context.Context, id AreaID, entry HistoryEntry) (ServiceArea, error)

	// SetManualForecast stores a human-chosen forecast date and flags the
	// area so automatic recomputation leaves it alone.
	SetManualForecast(ctx context.Context, id AreaID, next Date) (ServiceArea, error)

	// RegisterCompletions records a completion (or forecast annotation)
	// event for each area and returns the created events. For completed
	// events it also updates LastCompletion, clears any manual override,
	// appends history, runs the recompute engine over a consistent
	// snapshot and persists the resulting forecasts - all serialized
	// within the implementation. Forecast-kind registrations only log;
	// they never trigger recompute. Unknown ids are skipped. An empty
	// observation gets a default text for the kind.
	RegisterCompletions(ctx context.Context, ids []AreaID, date Date, kind EventKind, observation, registeredBy string) ([]MowingEvent, error)

	// UpdateForecasts persists calculator output. Areas flagged with a
	// manual override are left untouched regardless of input.
	UpdateForecasts(ctx context.Context, results []ForecastResult) error

	// Events and photos
	CreateEvent(ctx context.Context, event MowingEvent) (MowingEvent, error)
	ListEvents(ctx context.Context, areaID AreaID, filter EventFilter) ([]MowingEvent, error)
	AddEventPhoto(ctx context.Context, photo EventPhoto) (EventPhoto, error)
	ListEventPhotos(ctx context.Context, eventID EventID) ([]EventPhoto, error)

	// Teams
	ListTeams(ctx context.Context) ([]Team, error)
	AssignTeam(ctx context.Context, teamID TeamID, areaID AreaID) (Team, error)

	// Config
	GetConfig(ctx context.Context) (Config, error)
	UpdateConfig(ctx context.Context, cfg Config) (Config, error)
}
