package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenops/mowing-engine/schedule"
)

func seeded(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory()
	require.NoError(t, SeedDemo(m))
	return m
}

func TestRegisterCompletions_UpdatesAreaAndRecomputesLot(t *testing.T) {
	// GIVEN: Seeded demo data, no completions yet
	// WHEN: Area 1 (lot 1) is registered as completed
	// THEN: The area flips to done with LastCompletion set, lot-1 peers
	//       with a completion history get fresh forecasts, lot 2 stays idle

	m := seeded(t)
	ctx := context.Background()
	jan6 := schedule.NewDate(2025, time.January, 6)

	events, err := m.RegisterCompletions(ctx, []schedule.AreaID{1}, jan6, schedule.EventCompleted, "", "fiscal")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, schedule.AreaID(1), events[0].AreaID)
	assert.Equal(t, schedule.EventCompleted, events[0].Kind)
	assert.Equal(t, "mowing completed", events[0].Observation)
	assert.NotZero(t, events[0].ID)

	area, err := m.GetArea(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusDone, area.Status)
	assert.True(t, area.LastCompletion.Equal(jan6))
	assert.True(t, area.NextForecast.Equal(jan6.AddDays(schedule.FixedCycleDays)))
	assert.Equal(t, 1, area.DaysToComplete)
	require.NotEmpty(t, area.History)
	assert.Equal(t, "done", area.History[len(area.History)-1].Status)

	// Lot-1 peer without any completion keeps an empty forecast.
	peer, err := m.GetArea(ctx, 2)
	require.NoError(t, err)
	assert.True(t, peer.NextForecast.IsZero())

	// Lot 2 untouched.
	other, err := m.GetArea(ctx, 101)
	require.NoError(t, err)
	assert.True(t, other.NextForecast.IsZero())
	assert.Equal(t, schedule.StatusPending, other.Status)
}

func TestRegisterCompletions_ClearsManualOverride(t *testing.T) {
	// A completion returns the area to the automatic cycle.
	m := seeded(t)
	ctx := context.Background()

	pinned := schedule.NewDate(2025, time.May, 1)
	_, err := m.SetManualForecast(ctx, 1, pinned)
	require.NoError(t, err)

	jan6 := schedule.NewDate(2025, time.January, 6)
	_, err = m.RegisterCompletions(ctx, []schedule.AreaID{1}, jan6, schedule.EventCompleted, "", "fiscal")
	require.NoError(t, err)

	area, err := m.GetArea(ctx, 1)
	require.NoError(t, err)
	assert.False(t, area.ManualOverride)
	assert.True(t, area.NextForecast.Equal(jan6.AddDays(schedule.FixedCycleDays)),
		"forecast should be recomputed, not the pinned date")
	assert.False(t, area.NextForecast.Equal(pinned))
}

func TestRegisterCompletions_ManualOverridePeerSurvivesRecompute(t *testing.T) {
	// GIVEN: Lot-1 peer with a pinned forecast and a completion history
	// WHEN: Another lot-1 area completes
	// THEN: The pinned peer keeps its date

	m := seeded(t)
	ctx := context.Background()

	jan2 := schedule.NewDate(2025, time.January, 2)
	_, err := m.RegisterCompletions(ctx, []schedule.AreaID{2}, jan2, schedule.EventCompleted, "", "fiscal")
	require.NoError(t, err)

	pinned := schedule.NewDate(2025, time.July, 1)
	_, err = m.SetManualForecast(ctx, 2, pinned)
	require.NoError(t, err)

	jan6 := schedule.NewDate(2025, time.January, 6)
	_, err = m.RegisterCompletions(ctx, []schedule.AreaID{1}, jan6, schedule.EventCompleted, "", "fiscal")
	require.NoError(t, err)

	peer, err := m.GetArea(ctx, 2)
	require.NoError(t, err)
	assert.True(t, peer.ManualOverride)
	assert.True(t, peer.NextForecast.Equal(pinned))
}

func TestRegisterCompletions_ForecastKindOnlyLogs(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()
	jan6 := schedule.NewDate(2025, time.January, 6)

	events, err := m.RegisterCompletions(ctx, []schedule.AreaID{1}, jan6, schedule.EventForecast, "scheduled pass", "fiscal")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "scheduled pass", events[0].Observation)

	area, err := m.GetArea(ctx, 1)
	require.NoError(t, err)
	assert.True(t, area.LastCompletion.IsZero(), "forecast annotation must not record a completion")
	assert.True(t, area.NextForecast.IsZero(), "forecast annotation must not trigger recompute")
	assert.Equal(t, schedule.StatusPending, area.Status)
	require.Len(t, area.History, 1)
	assert.Equal(t, schedule.EventForecast, area.History[0].Kind)
}

func TestRegisterCompletions_SkipsUnknownIDs(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()
	jan6 := schedule.NewDate(2025, time.January, 6)

	events, err := m.RegisterCompletions(ctx, []schedule.AreaID{1, 9999}, jan6, schedule.EventCompleted, "", "fiscal")
	require.NoError(t, err)
	assert.Len(t, events, 1, "unknown id should be skipped, not an error")
}

func TestRegisterCompletions_EmptyBatch(t *testing.T) {
	m := seeded(t)

	_, err := m.RegisterCompletions(context.Background(), nil, schedule.Today(), schedule.EventCompleted, "", "")
	assert.ErrorIs(t, err, schedule.ErrNoAreasSelected)
}

func TestListEvents_FilterAndPaging(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()

	dates := []schedule.Date{
		schedule.NewDate(2025, time.January, 6),
		schedule.NewDate(2025, time.January, 7),
		schedule.NewDate(2025, time.January, 8),
	}
	for _, d := range dates {
		_, err := m.RegisterCompletions(ctx, []schedule.AreaID{1}, d, schedule.EventCompleted, "", "fiscal")
		require.NoError(t, err)
	}
	_, err := m.RegisterCompletions(ctx, []schedule.AreaID{1}, schedule.NewDate(2025, time.January, 9), schedule.EventForecast, "", "fiscal")
	require.NoError(t, err)

	// Kind filter
	completed, err := m.ListEvents(ctx, 1, schedule.EventFilter{Kind: schedule.EventCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 3)

	// Date range
	ranged, err := m.ListEvents(ctx, 1, schedule.EventFilter{
		From: schedule.NewDate(2025, time.January, 7),
		To:   schedule.NewDate(2025, time.January, 8),
	})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	// Paging, newest first
	page1, err := m.ListEvents(ctx, 1, schedule.EventFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.True(t, page1[0].Date.Equal(schedule.NewDate(2025, time.January, 9)))

	page3, err := m.ListEvents(ctx, 1, schedule.EventFilter{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestListEvents_SameDayTiesBreakByID(t *testing.T) {
	// Two events on the same date must page back newest id first, the
	// same order the sqlite store produces.
	m := seeded(t)
	ctx := context.Background()
	jan6 := schedule.NewDate(2025, time.January, 6)

	_, err := m.RegisterCompletions(ctx, []schedule.AreaID{1}, jan6, schedule.EventCompleted, "", "fiscal")
	require.NoError(t, err)
	_, err = m.RegisterCompletions(ctx, []schedule.AreaID{1}, jan6, schedule.EventForecast, "second pass", "fiscal")
	require.NoError(t, err)

	events, err := m.ListEvents(ctx, 1, schedule.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Greater(t, events[0].ID, events[1].ID)
	assert.Equal(t, schedule.EventForecast, events[0].Kind)
}

func TestEventPhotos(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()

	events, err := m.RegisterCompletions(ctx, []schedule.AreaID{1}, schedule.NewDate(2025, time.January, 6), schedule.EventCompleted, "", "fiscal")
	require.NoError(t, err)
	eventID := events[0].ID

	photo, err := m.AddEventPhoto(ctx, schedule.EventPhoto{
		EventID:     eventID,
		Kind:        schedule.PhotoAfter,
		StoragePath: "mowing/1/after.jpg",
		UploadedBy:  "fiscal",
	})
	require.NoError(t, err)
	assert.NotZero(t, photo.ID)

	photos, err := m.ListEventPhotos(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, schedule.PhotoAfter, photos[0].Kind)

	_, err = m.AddEventPhoto(ctx, schedule.EventPhoto{EventID: 9999, StoragePath: "x.jpg"})
	assert.ErrorIs(t, err, schedule.ErrEventNotFound)
}

func TestSearchAreas(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()

	byAddress, err := m.SearchAreas(ctx, "casoni", schedule.ServiceMowing, 0)
	require.NoError(t, err)
	require.NotEmpty(t, byAddress)
	assert.Equal(t, schedule.AreaID(1), byAddress[0].ID)

	limited, err := m.SearchAreas(ctx, "", schedule.ServiceMowing, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestAssignTeam(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()

	team, err := m.AssignTeam(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, schedule.TeamAssigned, team.Status)
	assert.Equal(t, schedule.AreaID(2), team.CurrentArea)

	_, err = m.AssignTeam(ctx, 99, 1)
	assert.ErrorIs(t, err, schedule.ErrTeamNotFound)

	_, err = m.AssignTeam(ctx, 1, 9999)
	assert.ErrorIs(t, err, schedule.ErrAreaNotFound)
}

func TestUpdateConfig_MergesRates(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()

	updated, err := m.UpdateConfig(ctx, schedule.Config{
		ProductionRates: map[schedule.Lot]decimal.Decimal{
			2: decimal.NewFromInt(30000),
			3: decimal.NewFromInt(18000),
		},
	})
	require.NoError(t, err)

	assert.True(t, updated.ProductionRate(1).Equal(decimal.NewFromInt(25000)), "untouched lot keeps its rate")
	assert.True(t, updated.ProductionRate(2).Equal(decimal.NewFromInt(30000)))
	assert.True(t, updated.ProductionRate(3).Equal(decimal.NewFromInt(18000)))
}

func TestGetArea_CopiesAreDetached(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()

	a, err := m.GetArea(ctx, 1)
	require.NoError(t, err)
	a.Status = schedule.StatusDone
	a.History = append(a.History, schedule.HistoryEntry{Status: "tampered"})

	fresh, err := m.GetArea(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusPending, fresh.Status)
	assert.Empty(t, fresh.History)
}
