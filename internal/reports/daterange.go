// Package reports provides pure, in-memory filtering and aggregation over
// transactions fetched from the store. Nothing in this package touches the
// database; callers load the rows and pass them in.
package reports

import "time"

// DateRangePreset names a shortcut date range resolved against a reference
// time.
type DateRangePreset string

const (
	PresetThisMonth         DateRangePreset = "this_month"
	PresetLastMonth         DateRangePreset = "last_month"
	PresetLast30Days        DateRangePreset = "last_30_days"
	PresetLast90Days        DateRangePreset = "last_90_days"
	PresetThisYear          DateRangePreset = "this_year"
	PresetThisFinancialYear DateRangePreset = "this_financial_year"
	PresetAllTime           DateRangePreset = "all_time"
)

// ResolvePreset converts a preset into concrete inclusive start/end bounds.
// The financial year starts on April 1. Returns false for unknown presets.
// all_time resolves to an unbounded range (zero start, far future end).
func ResolvePreset(preset DateRangePreset, now time.Time) (start, end time.Time, ok bool) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch preset {
	case PresetThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, -1)
	case PresetLastMonth:
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		start = firstOfThis.AddDate(0, -1, 0)
		end = firstOfThis.AddDate(0, 0, -1)
	case PresetLast30Days:
		start = today.AddDate(0, 0, -29)
		end = today
	case PresetLast90Days:
		start = today.AddDate(0, 0, -89)
		end = today
	case PresetThisYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		end = time.Date(now.Year(), 12, 31, 0, 0, 0, 0, loc)
	case PresetThisFinancialYear:
		year := now.Year()
		if now.Month() < time.April {
			year--
		}
		start = time.Date(year, time.April, 1, 0, 0, 0, 0, loc)
		end = time.Date(year+1, time.March, 31, 0, 0, 0, 0, loc)
	case PresetAllTime:
		start = time.Time{}
		end = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, time.Time{}, false
	}
	return start, endOfDay(end), true
}

// endOfDay pushes a date to the last instant of its day so inclusive
// comparisons cover timestamps within the final day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
