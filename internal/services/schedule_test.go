package services

import (
	"testing"
	"time"
)

func TestResolveRange(t *testing.T) {
	// Wednesday, September 16 2026.
	anchor := time.Date(2026, time.September, 16, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		view     string
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "day",
			view:     ScheduleViewDay,
			wantFrom: time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, time.September, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "week starts monday",
			view:     ScheduleViewWeek,
			wantFrom: time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, time.September, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "month",
			view:     ScheduleViewMonth,
			wantFrom: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			from, to, err := resolveRange(tc.view, anchor)
			if err != nil {
				t.Fatalf("resolveRange: %v", err)
			}
			if !from.Equal(tc.wantFrom) {
				t.Errorf("from = %v, want %v", from, tc.wantFrom)
			}
			if !to.Equal(tc.wantTo) {
				t.Errorf("to = %v, want %v", to, tc.wantTo)
			}
		})
	}
}

func TestResolveRangeSundayBelongsToPriorWeek(t *testing.T) {
	// Sunday, September 20 2026 sits at the end of the week that
	// started Monday the 14th.
	sunday := time.Date(2026, time.September, 20, 8, 0, 0, 0, time.UTC)
	from, to, err := resolveRange(ScheduleViewWeek, sunday)
	if err != nil {
		t.Fatalf("resolveRange: %v", err)
	}
	if !from.Equal(time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2026, time.September, 21, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v", to)
	}
}

func TestResolveRangeUnknownView(t *testing.T) {
	if _, _, err := resolveRange("fortnight", time.Now()); err == nil {
		t.Fatal("expected error for unknown view")
	}
}
