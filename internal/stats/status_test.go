package stats

import (
	"testing"
	"time"

	"github.com/prevenio/prevenio-backend/internal/types"
)

func mkTodos(pending, resolved int) []types.TodoItem {
	todos := make([]types.TodoItem, 0, pending+resolved)
	for i := 0; i < pending; i++ {
		todos = append(todos, types.TodoItem{Status: types.TodoPending})
	}
	for i := 0; i < resolved; i++ {
		todos = append(todos, types.TodoItem{Status: types.TodoDone})
	}
	return todos
}

func at(t time.Time) *time.Time { return &t }

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		todos     []types.TodoItem
		scheduled *time.Time
		want      Status
	}{
		{
			name:      "no_todos_pending",
			todos:     nil,
			scheduled: at(now.Add(48 * time.Hour)),
			want:      StatusPending,
		},
		{
			name:      "untouched_todos_pending",
			todos:     mkTodos(3, 0),
			scheduled: at(now.Add(48 * time.Hour)),
			want:      StatusPending,
		},
		{
			name:      "all_resolved_done",
			todos:     mkTodos(0, 3),
			scheduled: at(now.Add(48 * time.Hour)),
			want:      StatusDone,
		},
		{
			name:      "skipped_counts_as_resolved",
			todos:     []types.TodoItem{{Status: types.TodoSkipped}, {Status: types.TodoDone}},
			scheduled: nil,
			want:      StatusDone,
		},
		{
			name:      "partial_in_progress",
			todos:     mkTodos(1, 2),
			scheduled: at(now.Add(48 * time.Hour)),
			want:      StatusInProgress,
		},
		{
			name:      "past_grace_missed_despite_completion",
			todos:     mkTodos(0, 3),
			scheduled: at(now.Add(-25 * time.Hour)),
			want:      StatusMissed,
		},
		{
			name:      "inside_grace_still_done",
			todos:     mkTodos(0, 3),
			scheduled: at(now.Add(-23 * time.Hour)),
			want:      StatusDone,
		},
		{
			name:      "no_schedule_never_missed",
			todos:     mkTodos(2, 0),
			scheduled: nil,
			want:      StatusPending,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.todos, tc.scheduled, now)
			if got != tc.want {
				t.Fatalf("DeriveStatus=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestCanEnterReview(t *testing.T) {
	cases := []struct {
		name  string
		todos []types.TodoItem
		want  bool
	}{
		{name: "empty_set_allowed", todos: nil, want: true},
		{name: "all_resolved_allowed", todos: mkTodos(0, 2), want: true},
		{name: "one_pending_blocks", todos: mkTodos(1, 4), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanEnterReview(tc.todos); got != tc.want {
				t.Fatalf("CanEnterReview=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompletedOnTime(t *testing.T) {
	scheduled := time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		finished   *time.Time
		wantOnTime bool
		wantJudged bool
	}{
		{name: "finished_before_deadline", finished: at(scheduled.Add(-time.Hour)), wantOnTime: true, wantJudged: true},
		{name: "finished_exactly_at_deadline", finished: at(scheduled), wantOnTime: true, wantJudged: true},
		{name: "finished_after_deadline", finished: at(scheduled.Add(time.Minute)), wantOnTime: false, wantJudged: true},
		{name: "no_finished_date_unjudged", finished: nil, wantOnTime: false, wantJudged: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			onTime, judged := CompletedOnTime(&scheduled, tc.finished)
			if onTime != tc.wantOnTime || judged != tc.wantJudged {
				t.Fatalf("CompletedOnTime=(%v,%v), want (%v,%v)", onTime, judged, tc.wantOnTime, tc.wantJudged)
			}
		})
	}
}

func TestOverdueHasNoGrace(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	justPast := at(now.Add(-time.Minute))

	if !Overdue(StatusPending, justPast, now) {
		t.Fatalf("a not-done activity one minute past deadline must be overdue")
	}
	if Overdue(StatusDone, justPast, now) {
		t.Fatalf("a done activity is never overdue")
	}
	if Overdue(StatusPending, nil, now) {
		t.Fatalf("an unscheduled activity is never overdue")
	}
	// Within the 24h grace window the activity is overdue but not missed.
	within := at(now.Add(-23 * time.Hour))
	if Missed(within, now) {
		t.Fatalf("23h past deadline must not be missed yet")
	}
	if !Overdue(StatusPending, within, now) {
		t.Fatalf("23h past deadline must already be overdue")
	}
}
