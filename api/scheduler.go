/*
scheduler.go - Automated forecast refresh scheduler

PURPOSE:
  Periodically recomputes the mowing forecast for every lot. Completion
  registrations already recompute their own lot synchronously; the
  background pass exists to pick up out-of-band data changes (imports,
  manual database edits, config updates) without waiting for the next
  completion event.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each pass takes one snapshot and writes one batch of forecasts
  - Manual overrides are respected by the repository, not here

CONFIGURATION:
  - CheckInterval: How often to refresh (default: 1 hour)
  - Enabled: Whether the scheduler is active (default: true)

USAGE:
  refresher := NewForecastRefresher(repo)
  refresher.Start()
  // ... later
  refresher.Stop()

SEE ALSO:
  - handlers.go: RecalculateAll endpoint (manual refresh)
  - schedule/recompute.go: CalculateLotSchedule
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/greenops/mowing-engine/schedule"
)

// ForecastRefresher recomputes forecasts for all lots on a timer.
type ForecastRefresher struct {
	Repo          schedule.Repository
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewForecastRefresher creates a new refresher.
func NewForecastRefresher(repo schedule.Repository) *ForecastRefresher {
	return &ForecastRefresher{
		Repo:          repo,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the refresher.
func (fr *ForecastRefresher) Start() {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if !fr.Enabled {
		log.Println("[Refresher] Disabled, not starting")
		return
	}

	fr.ticker = time.NewTicker(fr.CheckInterval)
	fr.wg.Add(1)

	go fr.run()

	log.Printf("[Refresher] Started with check interval: %v", fr.CheckInterval)
}

// Stop stops the refresher.
func (fr *ForecastRefresher) Stop() {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.ticker != nil {
		fr.ticker.Stop()
		close(fr.stop)
		fr.wg.Wait()
		// Clear the ticker so a second Stop is a no-op instead of
		// closing the stop channel again.
		fr.ticker = nil
		log.Println("[Refresher] Stopped")
	}
}

func (fr *ForecastRefresher) run() {
	defer fr.wg.Done()

	// Run immediately on start
	fr.refresh()

	for {
		select {
		case <-fr.ticker.C:
			fr.refresh()
		case <-fr.stop:
			return
		}
	}
}

func (fr *ForecastRefresher) refresh() {
	ctx := context.Background()

	areas, err := fr.Repo.ListAreas(ctx, schedule.ServiceMowing)
	if err != nil {
		log.Printf("[Refresher] Error listing areas: %v", err)
		return
	}
	cfg, err := fr.Repo.GetConfig(ctx)
	if err != nil {
		log.Printf("[Refresher] Error loading config: %v", err)
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

	if len(results) == 0 {
		return
	}
	if err := fr.Repo.UpdateForecasts(ctx, results); err != nil {
		log.Printf("[Refresher] Error updating forecasts: %v", err)
		return
	}
	log.Printf("[Refresher] Refreshed %d forecasts across %d lots", len(results), len(lots))
}

// RunNow triggers an immediate refresh (for testing/admin).
func (fr *ForecastRefresher) RunNow() {
	fr.refresh()
}
