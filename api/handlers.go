/*
handlers.go - HTTP API handlers for the mowing scheduling engine

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Areas:
    GET    /api/areas                     List areas (?service=)
    POST   /api/areas                     Register a new area
    GET    /api/areas/search              Search by address/district/lot
    GET    /api/areas/{id}                Get area details
    PATCH  /api/areas/{id}/status         Change operational status
    PATCH  /api/areas/{id}/polygon        Replace polygon
    PATCH  /api/areas/{id}/position       Move marker
    PATCH  /api/areas/{id}/manual-forecast Pin forecast to a chosen date
    POST   /api/areas/{id}/register       Record one completion/forecast event
    GET    /api/areas/{id}/history        Paged event history
    POST   /api/areas/register-daily      Batch completion registration

  Events:
    POST   /api/events/{id}/photos        Attach photo reference
    GET    /api/events/{id}/photos        List photo references

  Teams:
    GET    /api/teams                     List field crews
    PATCH  /api/teams/{id}/assign         Dispatch crew to an area

  Config:
    GET    /api/config                    Per-lot production rates
    PATCH  /api/config                    Update rates (merge)

  Calendar:
    GET    /api/holidays                  Holidays for a year (?year=)
    GET    /api/calendar/business-day     Classify one date (?date=)
    GET    /api/calendar/add-business-days  (?date=&days=)
    GET    /api/calendar/business-days-between (?from=&to=)

  Admin:
    POST   /api/admin/recalculate         Full forecast refresh across lots

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (dates parse fast; malformed never means "absent")
  3. Call repository / scheduling core
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid dates, non-business completion dates
  - 404: Area/event/team not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - schedule/repository.go: The storage contract handlers call into
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/greenops/mowing-engine/schedule"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Repo     schedule.Repository
	Calendar *schedule.Calendar
}

// NewHandler creates a new handler with the given repository and calendar.
func NewHandler(repo schedule.Repository, cal *schedule.Calendar) *Handler {
	return &Handler{Repo: repo, Calendar: cal}
}

// =============================================================================
// AREA HANDLERS
// =============================================================================

// ListAreas returns all areas, optionally filtered by service.
func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	service, ok := serviceParam(r.URL.Query().Get("service"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid service (use mowing or gardens)", nil)
		return
	}

	areas, err := h.Repo.ListAreas(r.Context(), service)
	if err != nil {
		respondError(w, "Failed to list areas", err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaDTOs(areas))
}

// SearchAreas searches areas by address, district or lot number.
func (h *Handler) SearchAreas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	service, ok := serviceParam(q.Get("service"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid service (use mowing or gardens)", nil)
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	areas, err := h.Repo.SearchAreas(r.Context(), q.Get("q"), service, limit)
	if err != nil {
		respondError(w, "Failed to search areas", err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaDTOs(areas))
}

// GetArea returns a single area.
func (h *Handler) GetArea(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid area id", err)
		return
	}

	area, err := h.Repo.GetArea(r.Context(), schedule.AreaID(id))
	if err != nil {
		respondError(w, "Failed to get area", err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaDTO(area))
}

// CreateArea registers a new service area.
func (h *Handler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var req CreateAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Address == "" {
		writeError(w, http.StatusBadRequest, "Address is required", nil)
		return
	}
	service, ok := serviceParam(req.Service)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid service (use mowing or gardens)", nil)
		return
	}
	if service == "" {
		service = schedule.ServiceMowing
	}

	area := schedule.ServiceArea{
		Order:        req.Order,
		Type:         req.Type,
		Address:      req.Address,
		District:     req.District,
		SurfaceM2:    decimal.NewFromFloat(req.SurfaceM2),
		Lat:          req.Lat,
		Lng:          req.Lng,
		Polygon:      req.Polygon,
		Lot:          schedule.Lot(req.Lot),
		Service:      service,
		Status:       schedule.StatusPending,
		RegisteredBy: req.RegisteredBy,
		RegisteredAt: time.Now(),
	}

	created, err := h.Repo.CreateArea(r.Context(), area)
	if err != nil {
		respondError(w, "Failed to create area", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAreaDTO(created))
}

// UpdateStatus changes an area's operational status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid area id", err)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	status := schedule.AreaStatus(req.Status)
	switch status {
	case schedule.StatusPending, schedule.StatusInProgress, schedule.StatusDone:
	default:
		writeError(w, http.StatusBadRequest, "Invalid status (use pending, in_progress or done)", nil)
		return
	}

	area, err := h.Repo.UpdateStatus(r.Context(), schedule.AreaID(id), status)
	if err != nil {
		respondError(w, "Failed to update status", err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaDTO(area))
}

// UpdatePolygon replaces an area's polygon.
func (h *Handler) UpdatePolygon(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid area id", err)
		return
	}

	var req UpdatePolygonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	area, err := h.Repo.UpdatePolygon(r.Context(), schedule.AreaID(id), req.Polygon)
	if err != nil {
		respondError(w, "Failed to update polygon", err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaDTO(area))
}

// UpdatePosition moves an area's marker.
func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid area id", err)
		return
	}

	var req UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	area, err := h.Repo.UpdatePosition(r.Context(), schedule.AreaID(id), req.Lat, req.Lng)
	if err != nil {
		respondError(w, "Failed to update position", err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaDTO(area))
}

// SetManualForecast pins an area's forecast to a human-chosen date.
// Automatic recomputation leaves the area alone until the next
// completion clears the override.
func (h *Handler) SetManualForecast(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid area id", err)
		return
	}

	var req ManualForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	next, err := schedule.ParseDate(req.NextForecast)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid next_forecast date (use YYYY-MM-DD)", err)
		return
	}

	area, err := h.Repo.SetManualForecast(r.Context(), schedule.AreaID(id), next)
	if err != nil {
		respondError(w, "Failed to set manual forecast", err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaDTO(area))
}

// =============================================================================
// EVENT REGISTRATION
// =============================================================================

// RegisterEvent records a single completion or forecast event for an
// area. Completions update LastCompletion and trigger forecast
// recomputation for the area's lot.
func (h *Handler) RegisterEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid area id", err)
		return
	}

	var req RegisterEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, kind, err := parseEventInput(req.Date, req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event", err)
		return
	}
	if kind == schedule.EventCompleted {
		if err := h.checkBusinessDay(date); err != nil {
			writeError(w, http.StatusBadRequest, "Completion date is not a business day", err)
			return
		}
	}

	events, err := h.Repo.RegisterCompletions(r.Context(), []schedule.AreaID{schedule.AreaID(id)}, date, kind, req.Observation, req.RegisteredBy)
	if err != nil {
		respondError(w, "Failed to register event", err)
		return
	}
	if len(events) == 0 {
		writeError(w, http.StatusNotFound, "Area not found", nil)
		return
	}
	writeJSON(w, http.StatusCreated, toEventDTO(events[0]))
}

// RegisterDaily records a batch of events for one day, typically the
// field report of everything mowed. One recompute pass covers all
// affected lots.
func (h *Handler) RegisterDaily(w http.ResponseWriter, r *http.Request) {
	var req RegisterDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, kind, err := parseEventInput(req.Date, req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid registration", err)
		return
	}
	if kind == schedule.EventCompleted {
		if err := h.checkBusinessDay(date); err != nil {
			writeError(w, http.StatusBadRequest, "Completion date is not a business day", err)
			return
		}
	}

	ids := make([]schedule.AreaID, len(req.AreaIDs))
	for i, raw := range req.AreaIDs {
		ids[i] = schedule.AreaID(raw)
	}

	events, err := h.Repo.RegisterCompletions(r.Context(), ids, date, kind, "", req.RegisteredBy)
	if err != nil {
		respondError(w, "Failed to register events", err)
		return
	}

	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = toEventDTO(e)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"registered": len(events),
		"events":     dtos,
	})
}

// ListAreaHistory returns an area's event history, newest first.
func (h *Handler) ListAreaHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid area id", err)
		return
	}

	// 404 for unknown areas, not an empty page.
	if _, err := h.Repo.GetArea(r.Context(), schedule.AreaID(id)); err != nil {
		respondError(w, "Failed to get area", err)
		return
	}

	q := r.URL.Query()
	var filter schedule.EventFilter

	switch kind := schedule.EventKind(q.Get("kind")); kind {
	case "", schedule.EventCompleted, schedule.EventForecast:
		filter.Kind = kind
	default:
		writeError(w, http.StatusBadRequest, "Invalid kind (use completed or forecast)", nil)
		return
	}

	if raw := q.Get("from"); raw != "" {
		d, err := schedule.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
		filter.From = d
	}
	if raw := q.Get("to"); raw != "" {
		d, err := schedule.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
			return
		}
		filter.To = d
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PageSize, _ = strconv.Atoi(q.Get("page_size"))

	events, err := h.Repo.ListEvents(r.Context(), schedule.AreaID(id), filter)
	if err != nil {
		respondError(w, "Failed to list events", err)
		return
	}

	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = toEventDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PHOTO HANDLERS
// =============================================================================

// AddEventPhoto attaches a photo reference to an event. The photo bytes
// live in object storage; only the path is recorded here.
func (h *Handler) AddEventPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	var req AddPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StoragePath == "" {
		writeError(w, http.StatusBadRequest, "storage_path is required", nil)
		return
	}

	kind := schedule.PhotoKind(req.Kind)
	switch kind {
	case "":
		kind = schedule.PhotoExtra
	case schedule.PhotoBefore, schedule.PhotoAfter, schedule.PhotoExtra:
	default:
		writeError(w, http.StatusBadRequest, "Invalid kind (use before, after or extra)", nil)
		return
	}

	var takenAt time.Time
	if req.TakenAt != "" {
		t, err := time.Parse(time.RFC3339, req.TakenAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid taken_at (use RFC3339)", err)
			return
		}
		takenAt = t
	}

	photo, err := h.Repo.AddEventPhoto(r.Context(), schedule.EventPhoto{
		EventID:     schedule.EventID(id),
		Kind:        kind,
		StoragePath: req.StoragePath,
		TakenAt:     takenAt,
		UploadedBy:  req.UploadedBy,
	})
	if err != nil {
		respondError(w, "Failed to add photo", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPhotoDTO(photo))
}

// ListEventPhotos returns the photo references of an event.
func (h *Handler) ListEventPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event id", err)
		return
	}

	photos, err := h.Repo.ListEventPhotos(r.Context(), schedule.EventID(id))
	if err != nil {
		respondError(w, "Failed to list photos", err)
		return
	}

	dtos := make([]PhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = toPhotoDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// TEAM HANDLERS
// =============================================================================

// ListTeams returns all field crews.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Repo.ListTeams(r.Context())
	if err != nil {
		respondError(w, "Failed to list teams", err)
		return
	}

	dtos := make([]TeamDTO, len(teams))
	for i, t := range teams {
		dtos[i] = toTeamDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// AssignTeam dispatches a crew to an area.
func (h *Handler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid team id", err)
		return
	}

	var req AssignTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	team, err := h.Repo.AssignTeam(r.Context(), schedule.TeamID(id), schedule.AreaID(req.AreaID))
	if err != nil {
		respondError(w, "Failed to assign team", err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamDTO(team))
}

// =============================================================================
// CONFIG HANDLERS
// =============================================================================

// GetConfig returns the per-lot production rates.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Repo.GetConfig(r.Context())
	if err != nil {
		respondError(w, "Failed to get config", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(cfg))
}

// UpdateConfig merges production-rate updates. Only lots present in the
// request change.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rates := make(map[schedule.Lot]decimal.Decimal, len(req.ProductionRates))
	for key, rate := range req.ProductionRates {
		lot, err := strconv.Atoi(key)
		if err != nil || lot <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid lot number", err)
			return
		}
		if rate < 0 {
			writeError(w, http.StatusBadRequest, "Production rate must be non-negative", nil)
			return
		}
		rates[schedule.Lot(lot)] = decimal.NewFromFloat(rate)
	}

	cfg, err := h.Repo.UpdateConfig(r.Context(), schedule.Config{ProductionRates: rates})
	if err != nil {
		respondError(w, "Failed to update config", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(cfg))
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListHolidays returns all holidays of a year.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := schedule.Today().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}

	holidays := h.Calendar.HolidaysForYear(year)
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{
			Date: hol.Date.String(),
			Name: hol.Name,
			Kind: string(hol.Kind),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "holidays": dtos})
}

// BusinessDay classifies one date.
func (h *Handler) BusinessDay(w http.ResponseWriter, r *http.Request) {
	date, err := schedule.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	dto := BusinessDayDTO{
		Date:            date.String(),
		BusinessDay:     h.Calendar.IsBusinessDay(date),
		Weekend:         date.IsWeekend(),
		NextBusinessDay: h.Calendar.NextBusinessDay(date).String(),
	}
	if hol, ok := h.Calendar.HolidayOn(date); ok {
		dto.Holiday = true
		dto.HolidayName = hol.Name
	}
	writeJSON(w, http.StatusOK, dto)
}

// AddBusinessDays walks forward over the calendar.
func (h *Handler) AddBusinessDays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := schedule.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}
	days, err := strconv.Atoi(q.Get("days"))
	if err != nil || days < 0 {
		writeError(w, http.StatusBadRequest, "Invalid days", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":   date.String(),
		"days":   days,
		"result": h.Calendar.AddBusinessDays(date, days).String(),
	})
}

// BusinessDaysBetween counts business days in an inclusive range.
func (h *Handler) BusinessDaysBetween(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := schedule.ParseDate(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
		return
	}
	to, err := schedule.ParseDate(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"from":          from.String(),
		"to":            to.String(),
		"business_days": h.Calendar.BusinessDaysBetween(from, to),
	})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// RecalculateAll refreshes the forecast of every mowing area across all
// lots. The nightly scheduler runs the same pass; this endpoint exists
// for after data imports and config changes.
func (h *Handler) RecalculateAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	areas, err := h.Repo.ListAreas(ctx, schedule.ServiceMowing)
	if err != nil {
		respondError(w, "Failed to list areas", err)
		return
	}
	cfg, err := h.Repo.GetConfig(ctx)
	if err != nil {
		respondError(w, "Failed to get config", err)
		return
	}

	lots := make(map[schedule.Lot]struct{})
	for _, a := range areas {
		if a.Lot != 0 {
			lots[a.Lot] = struct{}{}
		}
	}

	var results []schedule.ForecastResult
	for lot := range lots {
		results = append(results, schedule.CalculateLotSchedule(areas, lot, cfg.ProductionRate(lot))...)
	}

	if err := h.Repo.UpdateForecasts(ctx, results); err != nil {
		respondError(w, "Failed to update forecasts", err)
		return
	}
	writeJSON(w, http.StatusOK, RecalculateResultDTO{Calculated: len(results)})
}

// =============================================================================
// HELPERS
// =============================================================================

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// serviceParam validates the optional service filter. Empty means all.
func serviceParam(raw string) (schedule.ServiceKind, bool) {
	switch kind := schedule.ServiceKind(raw); kind {
	case "", schedule.ServiceMowing, schedule.ServiceGardens:
		return kind, true
	default:
		return "", false
	}
}

// parseEventInput validates the shared date/kind pair of the register
// endpoints. Kind defaults to completed.
func parseEventInput(rawDate, rawKind string) (schedule.Date, schedule.EventKind, error) {
	date, err := schedule.ParseDate(rawDate)
	if err != nil {
		return schedule.Date{}, "", err
	}

	kind := schedule.EventKind(rawKind)
	switch kind {
	case "":
		kind = schedule.EventCompleted
	case schedule.EventCompleted, schedule.EventForecast:
	default:
		return schedule.Date{}, "", fmt.Errorf("invalid kind %q (use completed or forecast)", rawKind)
	}
	return date, kind, nil
}

func (h *Handler) checkBusinessDay(d schedule.Date) error {
	if h.Calendar.IsBusinessDay(d) {
		return nil
	}
	e := &schedule.NotBusinessDayError{Date: d}
	if hol, ok := h.Calendar.HolidayOn(d); ok {
		e.Holiday = hol.Name
	}
	return e
}

func respondError(w http.ResponseWriter, message string, err error) {
	switch {
	case schedule.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case schedule.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
