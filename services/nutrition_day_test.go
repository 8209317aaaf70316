package services

import (
	"errors"
	"testing"
	"time"
)

func TestResolveDay(t *testing.T) {
	cases := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"evening meal stays on its date", time.Date(2024, 1, 1, 20, 0, 0, 0, time.Local), "2024-01-01"},
		{"morning after cutover stays on its date", time.Date(2024, 1, 1, 5, 0, 0, 0, time.Local), "2024-01-01"},
		{"one second before cutover rolls back", time.Date(2024, 1, 1, 4, 59, 59, 0, time.Local), "2023-12-31"},
		{"midnight snack rolls back", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), "2023-12-31"},
		{"rollback crosses month boundary", time.Date(2024, 3, 1, 2, 30, 0, 0, time.Local), "2024-02-29"},
		{"rollback crosses year boundary", time.Date(2025, 1, 1, 3, 0, 0, 0, time.Local), "2024-12-31"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveDay(tc.ts); got != tc.want {
				t.Errorf("ResolveDay(%v) = %q, want %q", tc.ts, got, tc.want)
			}
		})
	}
}

func TestDayRange(t *testing.T) {
	start, end, err := DayRange("2024-01-01")
	if err != nil {
		t.Fatalf("DayRange returned error: %v", err)
	}

	wantStart := time.Date(2024, 1, 1, 5, 0, 0, 0, time.Local)
	wantEnd := time.Date(2024, 1, 2, 5, 0, 0, 0, time.Local)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("window length = %v, want 24h", end.Sub(start))
	}
}

func TestDayRange_BoundaryMembership(t *testing.T) {
	start, end, err := DayRange("2024-01-01")
	if err != nil {
		t.Fatalf("DayRange returned error: %v", err)
	}

	cases := []struct {
		name string
		ts   time.Time
		in   bool
	}{
		{"exactly 05:00:00 is inside", time.Date(2024, 1, 1, 5, 0, 0, 0, time.Local), true},
		{"04:59:59 is outside", time.Date(2024, 1, 1, 4, 59, 59, 0, time.Local), false},
		{"next day 04:59:59 is inside", time.Date(2024, 1, 2, 4, 59, 59, 0, time.Local), true},
		{"next day 05:00:00 is outside", time.Date(2024, 1, 2, 5, 0, 0, 0, time.Local), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := !tc.ts.Before(start) && tc.ts.Before(end)
			if in != tc.in {
				t.Errorf("membership of %v = %v, want %v", tc.ts, in, tc.in)
			}
		})
	}
}

func TestDayRange_InvalidDate(t *testing.T) {
	for _, date := range []string{"", "not-a-date", "2024-13-01", "01/02/2024", "2024-1-1"} {
		t.Run(date, func(t *testing.T) {
			_, _, err := DayRange(date)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("DayRange(%q) error = %v, want ErrInvalidDate", date, err)
			}
		})
	}
}

// ResolveDay and DayRange must agree: a timestamp always falls inside the
// range of the day it resolves to.
func TestResolveDayMatchesDayRange(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		ts := time.Date(2024, 6, 15, hour, 30, 0, 0, time.Local)
		day := ResolveDay(ts)
		start, end, err := DayRange(day)
		if err != nil {
			t.Fatalf("DayRange(%q) error: %v", day, err)
		}
		if ts.Before(start) || !ts.Before(end) {
			t.Errorf("hour %d: %v resolved to %q but is outside [%v, %v)", hour, ts, day, start, end)
		}
	}
}
