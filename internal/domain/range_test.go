package domain

import (
	"testing"
	"time"

	"github.com/pkg/errors"
)

var now = time.Date(2025, 4, 10, 15, 30, 0, 0, time.Local)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		days       int
		want       DateRange
		wantErr    bool
	}{
		{
			name: "defaults to today",
			want: DateRange{Start: day(2025, 4, 10), End: day(2025, 4, 10)},
		},
		{
			name: "days counts back from today inclusive",
			days: 7,
			want: DateRange{Start: day(2025, 4, 4), End: day(2025, 4, 10)},
		},
		{
			name:  "explicit range",
			start: "2025-04-01",
			end:   "2025-04-07",
			want:  DateRange{Start: day(2025, 4, 1), End: day(2025, 4, 7)},
		},
		{
			name:  "start without end is a single day",
			start: "2025-04-03",
			want:  DateRange{Start: day(2025, 4, 3), End: day(2025, 4, 3)},
		},
		{
			name:    "days with explicit start is contradictory",
			start:   "2025-04-01",
			days:    7,
			wantErr: true,
		},
		{
			name:    "days with explicit end is contradictory",
			end:     "2025-04-07",
			days:    3,
			wantErr: true,
		},
		{
			name:    "start after end",
			start:   "2025-04-07",
			end:     "2025-04-01",
			wantErr: true,
		},
		{
			name:    "unparseable start",
			start:   "last tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRange(tt.start, tt.end, tt.days, now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("want ErrInvalidRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Start.Equal(tt.want.Start) || !got.End.Equal(tt.want.End) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateRangeFromTo(t *testing.T) {
	rng := DateRange{Start: day(2025, 4, 1), End: day(2025, 4, 7)}
	from, to := rng.FromTo()
	if !from.Equal(day(2025, 4, 1)) {
		t.Errorf("from = %v", from)
	}
	// Half-open upper bound: start of the day after the last included day.
	if !to.Equal(day(2025, 4, 8)) {
		t.Errorf("to = %v", to)
	}
}
