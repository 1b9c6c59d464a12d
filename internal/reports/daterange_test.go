package reports

import (
	"testing"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePreset(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		preset    DateRangePreset
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "this_month",
			preset:    PresetThisMonth,
			now:       now,
			wantStart: day(2024, time.March, 1),
			wantEnd:   day(2024, time.March, 31),
		},
		{
			name:      "last_month",
			preset:    PresetLastMonth,
			now:       now,
			wantStart: day(2024, time.February, 1),
			wantEnd:   day(2024, time.February, 29),
		},
		{
			name:      "last_30_days_includes_today",
			preset:    PresetLast30Days,
			now:       now,
			wantStart: day(2024, time.February, 15),
			wantEnd:   day(2024, time.March, 15),
		},
		{
			name:      "this_year",
			preset:    PresetThisYear,
			now:       now,
			wantStart: day(2024, time.January, 1),
			wantEnd:   day(2024, time.December, 31),
		},
		{
			name:      "financial_year_before_april",
			preset:    PresetThisFinancialYear,
			now:       time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			wantStart: day(2023, time.April, 1),
			wantEnd:   day(2024, time.March, 31),
		},
		{
			name:      "financial_year_from_april",
			preset:    PresetThisFinancialYear,
			now:       time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			wantStart: day(2024, time.April, 1),
			wantEnd:   day(2025, time.March, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ResolvePreset(tt.preset, tt.now)
			if !ok {
				t.Fatalf("expected preset %s to resolve", tt.preset)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("expected start %s, got %s", tt.wantStart.Format("2006-01-02"), start.Format("2006-01-02"))
			}
			if end.Year() != tt.wantEnd.Year() || end.Month() != tt.wantEnd.Month() || end.Day() != tt.wantEnd.Day() {
				t.Errorf("expected end on %s, got %s", tt.wantEnd.Format("2006-01-02"), end.Format("2006-01-02"))
			}
			// The end bound must cover timestamps late in its final day.
			lateOnEnd := time.Date(tt.wantEnd.Year(), tt.wantEnd.Month(), tt.wantEnd.Day(), 23, 0, 0, 0, time.UTC)
			if end.Before(lateOnEnd) {
				t.Error("expected end bound to reach the end of its day")
			}
		})
	}

	t.Run("all_time_is_unbounded", func(t *testing.T) {
		start, end, ok := ResolvePreset(PresetAllTime, now)
		if !ok {
			t.Fatal("expected all_time to resolve")
		}
		if !start.IsZero() {
			t.Errorf("expected zero start, got %s", start)
		}
		if end.Year() != 9999 {
			t.Errorf("expected far-future end, got %s", end)
		}
	})

	t.Run("unknown_preset", func(t *testing.T) {
		_, _, ok := ResolvePreset("next_week", now)
		if ok {
			t.Error("expected unknown preset to not resolve")
		}
	})
}
