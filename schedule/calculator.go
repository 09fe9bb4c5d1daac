/*
calculator.go - Fixed-cycle forecast calculation for a single area

PURPOSE:
  Computes when an area is next due for mowing. The policy is a fixed
  cycle: next service = last completion + 45 calendar days, regardless
  of area size or crew throughput. Business-day adjustment is NOT
  applied to the forecast; the calendar's predicate is only used
  elsewhere (completion-date validation, UI date math).

WHY FIXED CYCLE:
  An earlier model derived schedules from per-lot production rates
  (m²/day). The fixed cycle replaced it to keep forecasts predictable
  and independent of workload estimates. The rate fields survive in
  Config for compatibility but are never read here.

SEE ALSO:
  - recompute.go: Batch recomputation across affected lots
  - types.go: ServiceArea invariants
*/
package schedule

// FixedCycleDays is the mowing recurrence interval in calendar days.
const FixedCycleDays = 45

// singleVisitDays is the execution estimate attached to every forecast:
// each area's service is one visit, distinct from the 45-day recurrence.
const singleVisitDays = 1

// ForecastResult is the outcome of a forecast calculation for one area.
type ForecastResult struct {
	AreaID         AreaID
	NextForecast   Date
	DaysToComplete int
}

// CalculateNextService computes an area's next due date.
//
// Returns ok=false, producing no forecast, when:
//   - the area has a manual override (the human-set forecast must stand), or
//   - the area was never serviced (nothing to anchor the cycle on).
//
// Pure function: the caller persists the result.
func CalculateNextService(area ServiceArea) (ForecastResult, bool) {
	if area.ManualOverride {
		return ForecastResult{}, false
	}
	if area.LastCompletion.IsZero() {
		return ForecastResult{}, false
	}

	return ForecastResult{
		AreaID:         area.ID,
		NextForecast:   area.LastCompletion.AddDays(FixedCycleDays),
		DaysToComplete: singleVisitDays,
	}, true
}
