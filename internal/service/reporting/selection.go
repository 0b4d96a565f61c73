package reporting

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Validate fails with ErrInvalidRange when End precedes Start.
func (w Window) Validate() error {
	if w.End.Before(w.Start) {
		return fmt.Errorf("%w: end %s is before start %s", models.ErrInvalidRange,
			w.End.Format(time.RFC3339), w.Start.Format(time.RFC3339))
	}
	return nil
}

// SameDay reports whether both bounds fall on the same calendar day in loc.
func (w Window) SameDay(loc *time.Location) bool {
	sy, sm, sd := w.Start.In(loc).Date()
	ey, em, ed := w.End.In(loc).Date()
	return sy == ey && sm == em && sd == ed
}

// DayWindow stretches start to 00:00:00.000 and end to 23:59:59.999 of their
// calendar days in loc.
func DayWindow(start, end time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	s := start.In(loc)
	e := end.In(loc)
	return Window{
		Start: time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(999*time.Millisecond), loc),
	}
}

// YearWindow covers the whole calendar year in loc.
func YearWindow(year int, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	return DayWindow(
		time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		time.Date(year, time.December, 31, 0, 0, 0, 0, loc),
		loc,
	)
}

// ParseWindow reads epoch millisecond bounds as sent by the report endpoint.
// An empty end defaults to now. The result is day-normalized in loc.
func ParseWindow(startRaw, endRaw string, now time.Time, loc *time.Location) (Window, error) {
	startRaw = strings.TrimSpace(startRaw)
	if startRaw == "" {
		return Window{}, fmt.Errorf("%w: start timestamp must be provided", models.ErrInvalidRange)
	}

	start, err := parseMillis(startRaw)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start timestamp must be a number", models.ErrInvalidRange)
	}

	end := now
	if endRaw = strings.TrimSpace(endRaw); endRaw != "" {
		if end, err = parseMillis(endRaw); err != nil {
			return Window{}, fmt.Errorf("%w: end timestamp must be a number", models.ErrInvalidRange)
		}
	}

	if err := (Window{Start: start, End: end}).Validate(); err != nil {
		return Window{}, err
	}

	return DayWindow(start, end, loc), nil
}

func parseMillis(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// SelectReceivings keeps receivings with start <= timestamp <= end, optionally
// only those referencing clientID, ordered by timestamp and then by
// case-insensitive client name. The input slice is left untouched.
func SelectReceivings(receivings []models.Receiving, start, end time.Time, clientID string) ([]models.Receiving, error) {
	window := Window{Start: start, End: end}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	selected := make([]models.Receiving, 0, len(receivings))
	for _, receiving := range receivings {
		if !window.Contains(receiving.Timestamp) {
			continue
		}
		if clientID != "" && receiving.ClientID != clientID {
			continue
		}
		selected = append(selected, receiving)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return strings.ToLower(a.ClientName()) < strings.ToLower(b.ClientName())
	})

	return selected, nil
}

// SelectSales keeps sales within the inclusive window ordered by timestamp.
func SelectSales(sales []models.Sale, start, end time.Time) ([]models.Sale, error) {
	window := Window{Start: start, End: end}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	selected := make([]models.Sale, 0, len(sales))
	for _, sale := range sales {
		if window.Contains(sale.Timestamp) {
			selected = append(selected, sale)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Timestamp.Before(selected[j].Timestamp)
	})

	return selected, nil
}
