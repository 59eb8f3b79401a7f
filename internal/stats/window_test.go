package stats

import (
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "leap_february",
			now:       time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "plain_february",
			now:       time.Date(2023, 2, 28, 23, 0, 0, 0, time.UTC),
			wantStart: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 2, 28, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "thirty_one_day_month",
			now:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "thirty_day_month",
			now:       time.Date(2024, 4, 17, 12, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "december_rolls_into_next_year",
			now:       time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MonthWindow(tc.now)
			if !got.Start.Equal(tc.wantStart) || !got.End.Equal(tc.wantEnd) {
				t.Fatalf("MonthWindow=[%v, %v], want [%v, %v]", got.Start, got.End, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestPrevMonthWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	got := PrevMonthWindow(now)
	wantStart := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	if !got.Start.Equal(wantStart) || !got.End.Equal(wantEnd) {
		t.Fatalf("PrevMonthWindow=[%v, %v], want [%v, %v]", got.Start, got.End, wantStart, wantEnd)
	}

	// January's previous month crosses the year boundary.
	got = PrevMonthWindow(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	wantStart = time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	wantEnd = time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	if !got.Start.Equal(wantStart) || !got.End.Equal(wantEnd) {
		t.Fatalf("PrevMonthWindow=[%v, %v], want [%v, %v]", got.Start, got.End, wantStart, wantEnd)
	}
}

func TestUpcomingWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	w := UpcomingWindow(now)
	if !w.Contains(now) {
		t.Fatalf("upcoming window must include now")
	}
	if !w.Contains(now.AddDate(0, 0, 7)) {
		t.Fatalf("upcoming window must include now+7d")
	}
	if w.Contains(now.Add(-time.Second)) || w.Contains(now.AddDate(0, 0, 7).Add(time.Second)) {
		t.Fatalf("upcoming window bounds are [now, now+7d]")
	}
}
