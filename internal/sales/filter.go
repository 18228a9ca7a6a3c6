package sales

import "time"

type FilterType string

const (
	FilterAll   FilterType = "all"
	FilterWeek  FilterType = "week"
	FilterMonth FilterType = "month"
	FilterRange FilterType = "range"
)

// DateFilter restricts which delivered orders a report covers. The
// zero value means no restriction.
type DateFilter struct {
	Type  FilterType
	Year  int        // month filter
	Month time.Month // month filter
	Start time.Time  // range filter
	End   time.Time  // range filter
}

// Bounds resolves the filter to inclusive [start, end] instants.
// ok is false when the filter does not restrict anything.
func (f DateFilter) Bounds(now time.Time) (start, end time.Time, ok bool) {
	switch f.Type {
	case FilterWeek:
		// Monday 00:00:00.000 through Sunday 23:59:59.999 of the week
		// containing now.
		offset := (int(now.Weekday()) + 6) % 7
		monday := startOfDay(now).AddDate(0, 0, -offset)
		return monday, endOfDay(monday.AddDate(0, 0, 6)), true
	case FilterMonth:
		first := time.Date(f.Year, f.Month, 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, 0).Add(-time.Millisecond), true
	case FilterRange:
		if f.Start.IsZero() || f.End.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		s, e := f.Start, f.End
		if s.After(e) {
			s, e = e, s
		}
		return startOfDay(s), endOfDay(e), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

func (f DateFilter) contains(t time.Time, now time.Time) bool {
	start, end, ok := f.Bounds(now)
	if !ok {
		return true
	}
	return !t.Before(start) && !t.After(end)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
