/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All dates cross the wire as "YYYY-MM-DD" strings; empty string means
  absent. Parsing happens in handlers so malformed input fails with 400
  before it ever reaches the scheduling core.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/types.go: Domain model these map from
*/
package api

import (
	"strconv"
	"time"

	"github.com/greenops/mowing-engine/schedule"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// AreaDTO represents a service area in API responses.
type AreaDTO struct {
	ID             int64              `json:"id"`
	Order          int                `json:"order,omitempty"`
	Type           string             `json:"type"`
	Address        string             `json:"address"`
	District       string             `json:"district,omitempty"`
	SurfaceM2      float64            `json:"surface_m2,omitempty"`
	Lat            float64            `json:"lat"`
	Lng            float64            `json:"lng"`
	Polygon        []schedule.LatLng  `json:"polygon,omitempty"`
	Lot            int                `json:"lot,omitempty"`
	Service        string             `json:"service"`
	Status         string             `json:"status"`
	ScheduledDate  string             `json:"scheduled_date,omitempty"`
	LastCompletion string             `json:"last_completion,omitempty"`
	NextForecast   string             `json:"next_forecast,omitempty"`
	ManualOverride bool               `json:"manual_override"`
	DaysToComplete int                `json:"days_to_complete,omitempty"`
	RegisteredBy   string             `json:"registered_by,omitempty"`
	History        []HistoryEntryDTO  `json:"history"`
}

// HistoryEntryDTO is one line of an area's status log.
type HistoryEntryDTO struct {
	Date        string `json:"date"`
	Status      string `json:"status"`
	Kind        string `json:"kind,omitempty"`
	Observation string `json:"observation,omitempty"`
}

// CreateAreaRequest registers a new service area.
type CreateAreaRequest struct {
	Order        int               `json:"order,omitempty"`
	Type         string            `json:"type,omitempty"`
	Address      string            `json:"address"`
	District     string            `json:"district,omitempty"`
	SurfaceM2    float64           `json:"surface_m2,omitempty"`
	Lat          float64           `json:"lat"`
	Lng          float64           `json:"lng"`
	Polygon      []schedule.LatLng `json:"polygon,omitempty"`
	Lot          int               `json:"lot,omitempty"`
	Service      string            `json:"service,omitempty"` // defaults to "mowing"
	RegisteredBy string            `json:"registered_by,omitempty"`
}

// UpdateStatusRequest changes an area's operational status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePolygonRequest replaces an area's polygon.
type UpdatePolygonRequest struct {
	Polygon []schedule.LatLng `json:"polygon"`
}

// UpdatePositionRequest moves an area's marker.
type UpdatePositionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ManualForecastRequest pins an area's forecast to a human-chosen date.
type ManualForecastRequest struct {
	NextForecast string `json:"next_forecast"`
}

// RegisterEventRequest records a single completion or forecast event.
type RegisterEventRequest struct {
	Date         string `json:"date"`
	Kind         string `json:"kind"`
	Observation  string `json:"observation,omitempty"`
	RegisteredBy string `json:"registered_by,omitempty"`
}

// RegisterDailyRequest records a batch of completions for one day.
type RegisterDailyRequest struct {
	AreaIDs      []int64 `json:"area_ids"`
	Date         string  `json:"date"`
	Kind         string  `json:"kind,omitempty"` // defaults to "completed"
	RegisteredBy string  `json:"registered_by,omitempty"`
}

// EventDTO represents a mowing event in API responses.
type EventDTO struct {
	ID           int64  `json:"id"`
	AreaID       int64  `json:"area_id"`
	Date         string `json:"date"`
	Kind         string `json:"kind"`
	Status       string `json:"status"`
	Observation  string `json:"observation,omitempty"`
	RegisteredBy string `json:"registered_by,omitempty"`
	RegisteredAt string `json:"registered_at,omitempty"`
}

// AddPhotoRequest attaches a photo reference to an event.
type AddPhotoRequest struct {
	Kind        string `json:"kind"`
	StoragePath string `json:"storage_path"`
	TakenAt     string `json:"taken_at,omitempty"`
	UploadedBy  string `json:"uploaded_by,omitempty"`
}

// PhotoDTO represents an event photo reference.
type PhotoDTO struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	Kind        string `json:"kind"`
	StoragePath string `json:"storage_path"`
	TakenAt     string `json:"taken_at,omitempty"`
	UploadedBy  string `json:"uploaded_by,omitempty"`
}

// TeamDTO represents a field crew.
type TeamDTO struct {
	ID          int64           `json:"id"`
	Service     string          `json:"service"`
	Type        string          `json:"type"`
	Lot         int             `json:"lot,omitempty"`
	Status      string          `json:"status"`
	CurrentArea int64           `json:"current_area,omitempty"`
	Location    schedule.LatLng `json:"location"`
}

// AssignTeamRequest dispatches a team to an area.
type AssignTeamRequest struct {
	AreaID int64 `json:"area_id"`
}

// ConfigDTO carries the legacy per-lot production rates.
type ConfigDTO struct {
	ProductionRates map[string]float64 `json:"production_rates"` // lot -> m²/day
}

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// BusinessDayDTO answers a business-day query for one date.
type BusinessDayDTO struct {
	Date            string `json:"date"`
	BusinessDay     bool   `json:"business_day"`
	Weekend         bool   `json:"weekend"`
	Holiday         bool   `json:"holiday"`
	HolidayName     string `json:"holiday_name,omitempty"`
	NextBusinessDay string `json:"next_business_day"`
}

// RecalculateResultDTO summarizes a full forecast refresh.
type RecalculateResultDTO struct {
	Calculated int `json:"calculated"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toAreaDTO(a schedule.ServiceArea) AreaDTO {
	surface, _ := a.SurfaceM2.Float64()
	history := make([]HistoryEntryDTO, len(a.History))
	for i, h := range a.History {
		history[i] = HistoryEntryDTO{
			Date:        h.Date.String(),
			Status:      h.Status,
			Kind:        string(h.Kind),
			Observation: h.Observation,
		}
	}
	return AreaDTO{
		ID:             int64(a.ID),
		Order:          a.Order,
		Type:           a.Type,
		Address:        a.Address,
		District:       a.District,
		SurfaceM2:      surface,
		Lat:            a.Lat,
		Lng:            a.Lng,
		Polygon:        a.Polygon,
		Lot:            int(a.Lot),
		Service:        string(a.Service),
		Status:         string(a.Status),
		ScheduledDate:  a.ScheduledDate.String(),
		LastCompletion: a.LastCompletion.String(),
		NextForecast:   a.NextForecast.String(),
		ManualOverride: a.ManualOverride,
		DaysToComplete: a.DaysToComplete,
		RegisteredBy:   a.RegisteredBy,
		History:        history,
	}
}

func toAreaDTOs(areas []schedule.ServiceArea) []AreaDTO {
	dtos := make([]AreaDTO, len(areas))
	for i, a := range areas {
		dtos[i] = toAreaDTO(a)
	}
	return dtos
}

func toEventDTO(e schedule.MowingEvent) EventDTO {
	registeredAt := ""
	if !e.RegisteredAt.IsZero() {
		registeredAt = e.RegisteredAt.UTC().Format(time.RFC3339)
	}
	return EventDTO{
		ID:           int64(e.ID),
		AreaID:       int64(e.AreaID),
		Date:         e.Date.String(),
		Kind:         string(e.Kind),
		Status:       e.Status,
		Observation:  e.Observation,
		RegisteredBy: e.RegisteredBy,
		RegisteredAt: registeredAt,
	}
}

func toPhotoDTO(p schedule.EventPhoto) PhotoDTO {
	takenAt := ""
	if !p.TakenAt.IsZero() {
		takenAt = p.TakenAt.UTC().Format(time.RFC3339)
	}
	return PhotoDTO{
		ID:          int64(p.ID),
		EventID:     int64(p.EventID),
		Kind:        string(p.Kind),
		StoragePath: p.StoragePath,
		TakenAt:     takenAt,
		UploadedBy:  p.UploadedBy,
	}
}

func toTeamDTO(t schedule.Team) TeamDTO {
	return TeamDTO{
		ID:          int64(t.ID),
		Service:     string(t.Service),
		Type:        t.Type,
		Lot:         int(t.Lot),
		Status:      string(t.Status),
		CurrentArea: int64(t.CurrentArea),
		Location:    t.Location,
	}
}

func toConfigDTO(cfg schedule.Config) ConfigDTO {
	rates := make(map[string]float64, len(cfg.ProductionRates))
	for lot, rate := range cfg.ProductionRates {
		f, _ := rate.Float64()
		rates[lotKey(lot)] = f
	}
	return ConfigDTO{ProductionRates: rates}
}

func lotKey(lot schedule.Lot) string {
	return strconv.Itoa(int(lot))
}
