/*
Package schedule is the core of the municipal mowing scheduling engine.

PURPOSE:
  Tracks service areas of public land grouped into lots, computes the
  next mowing forecast under a fixed 45-calendar-day cycle, and
  recomputes forecasts incrementally as completion events arrive. A
  business-day calendar (weekends plus national and municipal holidays)
  supports completion-date validation and date arithmetic for the UI.

KEY CONCEPTS IN THIS FILE (types.go):
  - ServiceArea: A polygon/point of land under recurring maintenance
  - Lot: Operational partition used to bound recompute cost
  - MowingEvent / EventPhoto: Completion log with photo attachments
  - Team: Field crew (dispatch itself is out of scope)
  - Config: Per-lot production rates (legacy, not used by the forecast)

DESIGN PRINCIPLES:
  1. The engine is pure: it reads a snapshot, returns results, does no I/O
  2. Manual overrides always win over automatic recomputation
  3. One canonical date type (Date, see time.go) everywhere
  4. decimal.Decimal for surface and rate figures to avoid float drift

SEE ALSO:
  - calculator.go: Fixed-cycle forecast calculation
  - recompute.go: Batch recomputation after completions
  - calendar.go: Business-day and holiday logic
  - repository.go: Persistence contract
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type AreaID int64
type EventID int64
type PhotoID int64
type TeamID int64

// Lot partitions service areas operationally. A completion event only
// triggers recomputation for areas in the same lot. Zero means unassigned.
type Lot int

// =============================================================================
// ENUMS
// =============================================================================

// ServiceKind tags which recurring service an area belongs to. Only
// mowing areas participate in the fixed-cycle forecast.
type ServiceKind string

const (
	ServiceMowing  ServiceKind = "mowing"
	ServiceGardens ServiceKind = "gardens"
)

// AreaStatus is the operational state of an area.
type AreaStatus string

const (
	StatusPending    AreaStatus = "pending"
	StatusInProgress AreaStatus = "in_progress"
	StatusDone       AreaStatus = "done"
)

// EventKind distinguishes recorded completions from forecast annotations.
// Only completed events trigger forecast recomputation.
type EventKind string

const (
	EventCompleted EventKind = "completed"
	EventForecast  EventKind = "forecast"
)

// PhotoKind classifies event photos.
type PhotoKind string

const (
	PhotoBefore PhotoKind = "before"
	PhotoAfter  PhotoKind = "after"
	PhotoExtra  PhotoKind = "extra"
)

// TeamStatus is the dispatch state of a field crew.
type TeamStatus string

const (
	TeamIdle     TeamStatus = "idle"
	TeamAssigned TeamStatus = "assigned"
	TeamWorking  TeamStatus = "working"
)

// =============================================================================
// SERVICE AREA
// =============================================================================

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HistoryEntry is one line of an area's append-only status log.
// Informational only; the forecast calculation never reads it.
type HistoryEntry struct {
	Date        Date      `json:"date"`
	Status      string    `json:"status"`
	Kind        EventKind `json:"kind,omitempty"`
	Observation string    `json:"observation,omitempty"`
}

// ServiceArea is a tract of public land under recurring maintenance.
//
// LastCompletion and NextForecast use the zero Date for "absent". An
// area that was never serviced has no computable forecast. When
// ManualOverride is set, NextForecast belongs to a human and the
// recompute engine must leave it alone.
type ServiceArea struct {
	ID       AreaID
	Order    int    // registration order within the lot
	Type     string // e.g. "praça", "canteiro", "area publica", "rotatória"
	Address  string
	District string

	SurfaceM2 decimal.Decimal
	Lat       float64
	Lng       float64
	Polygon   []LatLng

	Lot     Lot
	Service ServiceKind
	Status  AreaStatus

	ScheduledDate  Date // explicit one-off appointment, if any
	LastCompletion Date
	NextForecast   Date
	ManualOverride bool
	DaysToComplete int // single-visit execution estimate, not the cycle

	RegisteredBy string
	RegisteredAt time.Time

	History []HistoryEntry
}

// =============================================================================
// EVENTS AND PHOTOS
// =============================================================================

// MowingEvent is one recorded completion or forecast annotation for an area.
type MowingEvent struct {
	ID           EventID
	AreaID       AreaID
	Date         Date
	Kind         EventKind
	Status       string
	Observation  string
	RegisteredBy string
	RegisteredAt time.Time
}

// EventPhoto references a photo stored outside this system (object
// storage is an external collaborator; only the path lives here).
type EventPhoto struct {
	ID          PhotoID
	EventID     EventID
	Kind        PhotoKind
	StoragePath string
	TakenAt     time.Time
	UploadedBy  string
}

// =============================================================================
// TEAMS
// =============================================================================

// Team is a field crew. Routing and dispatch are out of scope; the
// record exists so the UI can show who is where.
type Team struct {
	ID          TeamID
	Service     ServiceKind
	Type        string // e.g. "Giro Zero", "Acabamento", "Coleta"
	Lot         Lot
	Status      TeamStatus
	CurrentArea AreaID // zero when unassigned
	Location    LatLng
}

// =============================================================================
// CONFIG
// =============================================================================

// Config carries per-lot mowing production rates in m²/day.
//
// The rates are a holdover from the production-rate scheduling model.
// The fixed 45-day cycle replaced that model, so the forecast
// calculation ignores them; they remain editable for the efficiency
// dashboard and for schema compatibility.
type Config struct {
	ProductionRates map[Lot]decimal.Decimal
}

// DefaultConfig returns the rates the system shipped with.
func DefaultConfig() Config {
	return Config{
		ProductionRates: map[Lot]decimal.Decimal{
			1: decimal.NewFromInt(25000),
			2: decimal.NewFromInt(20000),
		},
	}
}

// ProductionRate returns the configured rate for a lot, zero if unset.
func (c Config) ProductionRate(lot Lot) decimal.Decimal {
	if c.ProductionRates == nil {
		return decimal.Zero
	}
	return c.ProductionRates[lot]
}
