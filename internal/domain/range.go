package domain

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days in local time.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ResolveRange turns CLI inputs into a range. Rules, checked in order:
// an explicit range and a days count together are contradictory and
// rejected; days=N means [today-(N-1), today]; an explicit start without an
// end means that single day; no inputs means today only.
func ResolveRange(startStr, endStr string, days int, now time.Time) (DateRange, error) {
	today := truncateDay(now)

	if days > 0 {
		if startStr != "" || endStr != "" {
			return DateRange{}, errors.Wrap(ErrInvalidRange, "cannot combine days with an explicit start/end date")
		}
		return DateRange{Start: today.AddDate(0, 0, -(days - 1)), End: today}, nil
	}

	start := today
	if startStr != "" {
		parsed, err := time.ParseInLocation(dateLayout, startStr, now.Location())
		if err != nil {
			return DateRange{}, errors.Wrapf(ErrInvalidRange, "bad start date %q", startStr)
		}
		start = parsed
	}
	end := start
	if endStr != "" {
		parsed, err := time.ParseInLocation(dateLayout, endStr, now.Location())
		if err != nil {
			return DateRange{}, errors.Wrapf(ErrInvalidRange, "bad end date %q", endStr)
		}
		end = parsed
	}
	if start.After(end) {
		return DateRange{}, errors.Wrapf(ErrInvalidRange, "start %s is after end %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return DateRange{Start: start, End: end}, nil
}

// FromTo converts the inclusive day range into half-open timestamps for the
// source query: start-of-first-day to start-of-day-after-last.
func (r DateRange) FromTo() (time.Time, time.Time) {
	return r.Start, r.End.AddDate(0, 0, 1)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(dateLayout), r.End.Format(dateLayout))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
