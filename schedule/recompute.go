/*
recompute.go - Batch forecast recomputation after completion events

PURPOSE:
  When one or more completions land, forecasts must be refreshed for
  every eligible area in the affected lots - and only those lots. The
  engine is synchronous and pure: it reads a snapshot of areas, returns
  results, and leaves persistence and transactional semantics to the
  caller. The persistence layer is responsible for serializing
  recompute-and-write per lot (see repository.go).

TRIGGER MODEL:
  Completed events trigger recomputation. Forecast annotations, status
  changes, polygon edits, photo uploads and config updates must not.

SEE ALSO:
  - calculator.go: Per-area calculation
  - repository.go: RegisterCompletions, where recompute is invoked
*/
package schedule

import (
	"github.com/shopspring/decimal"
)

// RecalculateAfterCompletion refreshes forecasts for every lot touched
// by the completed areas.
//
// Ids not present in allAreas are skipped: that is a data-consistency
// concern for the repository, not an error here. Areas with a manual
// override or without a completion history produce no result (see
// CalculateNextService). Result order is unspecified; each eligible
// area appears at most once per invocation.
func RecalculateAfterCompletion(allAreas []ServiceArea, completedAreaIDs []AreaID, cfg Config) []ForecastResult {
	byID := make(map[AreaID]ServiceArea, len(allAreas))
	for _, a := range allAreas {
		byID[a.ID] = a
	}

	// Distinct lots touched by this batch. Local to the call: no state
	// survives between invocations.
	affected := make(map[Lot]struct{})
	for _, id := range completedAreaIDs {
		area, ok := byID[id]
		if !ok || area.Lot == 0 {
			continue
		}
		affected[area.Lot] = struct{}{}
	}

	var results []ForecastResult
	for lot := range affected {
		results = append(results, CalculateLotSchedule(allAreas, lot, cfg.ProductionRate(lot))...)
	}
	return results
}

// CalculateLotSchedule computes forecasts for one lot's cohort: every
// mowing area in the lot, excluding manual overrides (the calculator
// skips those itself).
//
// The rate argument is the lot's legacy production rate; the fixed-cycle
// policy ignores it, the parameter remains for the stats path and the
// admin full-recalculation endpoint that share this signature.
func CalculateLotSchedule(areas []ServiceArea, lot Lot, rate decimal.Decimal) []ForecastResult {
	_ = rate

	var results []ForecastResult
	for _, area := range areas {
		if area.Lot != lot || area.Service != ServiceMowing {
			continue
		}
		if result, ok := CalculateNextService(area); ok {
			results = append(results, result)
		}
	}
	return results
}

// LotScheduleStats summarizes one lot's computed schedule for the
// efficiency dashboard.
type LotScheduleStats struct {
	TotalAreas         int
	TotalDaysEstimated int
	CompletionDate     Date
	AreasPerDay        decimal.Decimal
}

// LotStats computes scheduling statistics for a lot. Legacy reporting:
// AreasPerDay echoes the configured production rate, which the forecast
// itself does not use.
func LotStats(areas []ServiceArea, lot Lot, rate decimal.Decimal) LotScheduleStats {
	var cohort []ServiceArea
	for _, area := range areas {
		if area.Lot == lot && area.Service == ServiceMowing && !area.ManualOverride {
			cohort = append(cohort, area)
		}
	}

	results := CalculateLotSchedule(cohort, lot, rate)
	if len(results) == 0 {
		return LotScheduleStats{}
	}

	totalDays := 0
	for _, r := range results {
		totalDays += r.DaysToComplete
	}

	return LotScheduleStats{
		TotalAreas:         len(cohort),
		TotalDaysEstimated: totalDays,
		CompletionDate:     results[len(results)-1].NextForecast,
		AreasPerDay:        rate,
	}
}
