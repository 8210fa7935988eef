// Package timefmt formats message timestamps for list display.
package timefmt

import "time"

// Formatter renders epoch milliseconds relative to the current day: the time
// of day for today, month and day for earlier this year, and a numeric date
// otherwise.
type Formatter struct {
	loc *time.Location
	now func() time.Time
}

// New creates a Formatter for loc. A nil loc means time.Local.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc, now: time.Now}
}

// Format renders epochMillis.
func (f *Formatter) Format(epochMillis int64) string {
	t := time.UnixMilli(epochMillis).In(f.loc)
	now := f.now().In(f.loc)

	switch {
	case t.Year() == now.Year() && t.YearDay() == now.YearDay():
		return t.Format("3:04 PM")
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("1/2/2006")
	}
}
