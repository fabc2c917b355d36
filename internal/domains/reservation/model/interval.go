package model

import "time"

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether Start is strictly before End.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether a and b share at least one instant.
// Intervals that only touch at an endpoint do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// DayInterval covers the calendar day of date in loc, from midnight to the next midnight.
func DayInterval(date time.Time, loc *time.Location) Interval {
	local := date.In(loc)
	year, month, day := local.Date()

	return Interval{
		Start: time.Date(year, month, day, 0, 0, 0, 0, loc),
		End:   time.Date(year, month, day+1, 0, 0, 0, 0, loc),
	}
}
