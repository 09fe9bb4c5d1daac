package schedule_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/greenops/mowing-engine/schedule"
)

func TestParseDate_Valid(t *testing.T) {
	d, err := schedule.ParseDate("2025-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.January || d.Day() != 1 {
		t.Errorf("expected 2025-01-01, got %s", d)
	}
	if d.Weekday() != time.Wednesday {
		t.Errorf("2025-01-01 is a Wednesday, got %v", d.Weekday())
	}
}

func TestParseDate_MalformedIsNotAbsent(t *testing.T) {
	// GIVEN: Malformed date strings
	// WHEN: Parsing
	// THEN: Each fails with ErrInvalidDate; none becomes the zero Date

	for _, input := range []string{"", "not-a-date", "2025-13-01", "01/02/2025", "2025-02-30"} {
		_, err := schedule.ParseDate(input)
		if err == nil {
			t.Errorf("ParseDate(%q): expected error, got nil", input)
			continue
		}
		if !errors.Is(err, schedule.ErrInvalidDate) {
			t.Errorf("ParseDate(%q): error should wrap ErrInvalidDate, got %v", input, err)
		}
	}
}

func TestDate_AddDaysCrossesMonthAndYear(t *testing.T) {
	d := schedule.NewDate(2025, time.December, 20)
	got := d.AddDays(45)
	want := schedule.NewDate(2026, time.February, 3)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}

	if back := got.AddDays(-45); !back.Equal(d) {
		t.Errorf("expected %s, got %s", d, back)
	}
}

func TestDate_DaysUntil(t *testing.T) {
	a := schedule.NewDate(2025, time.January, 1)
	b := schedule.NewDate(2025, time.February, 15)
	if got := a.DaysUntil(b); got != 45 {
		t.Errorf("expected 45 days, got %d", got)
	}
	if got := b.DaysUntil(a); got != -45 {
		t.Errorf("expected -45 days, got %d", got)
	}
}

func TestDate_ZeroMeansAbsent(t *testing.T) {
	var d schedule.Date
	if !d.IsZero() {
		t.Error("zero Date should report IsZero")
	}
	if d.String() != "" {
		t.Errorf("zero Date should render empty, got %q", d.String())
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	// History entries are persisted as JSON; absent dates must survive too.
	type record struct {
		Done schedule.Date `json:"done"`
		Next schedule.Date `json:"next"`
	}

	in := record{Done: schedule.NewDate(2025, time.March, 10)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"done":"2025-03-10","next":null}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var out record
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Done.Equal(in.Done) || !out.Next.IsZero() {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
