package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prevenio/prevenio-backend/internal/types"
)

func assigned(supervisor *types.User, scheduled, finished *time.Time, pending, resolved int) *types.Activity {
	a := mkActivity(scheduled, pending, resolved)
	a.AssignedToID = supervisor.ID
	a.AssignedTo = supervisor
	a.FinishedDate = finished
	return a
}

// Preventionist P supervises S1 (three activities this month, all done and
// finished on time) and S2 (one missed, one pending and not yet due).
func TestComputeSupervisorRollupScenario(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s1 := &types.User{ID: uuid.New(), Username: "s1", Role: types.RoleSupervisor}
	s2 := &types.User{ID: uuid.New(), Username: "s2", Role: types.RoleSupervisor}

	deadline := now.AddDate(0, 0, 3)
	finished := deadline.Add(-2 * time.Hour)

	activities := []*types.Activity{
		assigned(s1, at(deadline), at(finished), 0, 2),
		assigned(s1, at(deadline), at(finished), 0, 1),
		assigned(s1, at(deadline), at(finished), 0, 3),
		assigned(s2, at(now.Add(-30*time.Hour)), nil, 1, 0),
		assigned(s2, at(now.AddDate(0, 0, 2)), nil, 1, 0),
	}

	got := ComputeSupervisorRollup(activities, []*types.User{s1, s2}, now)

	if len(got.Supervisors) != 2 {
		t.Fatalf("buckets=%d, want 2", len(got.Supervisors))
	}
	b1, b2 := got.Supervisors[0], got.Supervisors[1]

	if b1.Assigned != 3 || b1.Completed != 3 || b1.CompletedOnTime != 3 || b1.CompletedLate != 0 || b1.Overdue != 0 {
		t.Fatalf("s1 bucket=%+v, want assigned:3 completed:3 on_time:3 late:0 overdue:0", b1)
	}
	if b2.Assigned != 2 || b2.Completed != 0 || b2.CompletedOnTime != 0 || b2.CompletedLate != 0 || b2.Overdue != 1 {
		t.Fatalf("s2 bucket=%+v, want assigned:2 completed:0 on_time:0 late:0 overdue:1", b2)
	}

	wantCounts := StatusCounts{Pending: 1, InProgress: 0, Done: 3, Missed: 1}
	if got.General.StatusDistribution != wantCounts {
		t.Fatalf("aggregate distribution=%+v, want %+v", got.General.StatusDistribution, wantCounts)
	}
	if got.General.CompletionRate != 60.0 {
		t.Fatalf("completion rate=%v, want 60.0", got.General.CompletionRate)
	}
}

func TestComputeSupervisorRollupLateAndUnjudged(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s := &types.User{ID: uuid.New(), Username: "s", Role: types.RoleSupervisor}

	deadline := now.Add(20 * time.Hour)
	activities := []*types.Activity{
		// done but finished after the deadline
		assigned(s, at(now.Add(-20*time.Hour)), at(now.Add(-10*time.Hour)), 0, 1),
		// done with no finished date: completed, but neither on time nor late
		assigned(s, at(deadline), nil, 0, 1),
	}
	got := ComputeSupervisorRollup(activities, []*types.User{s}, now)
	b := got.Supervisors[0]
	if b.Completed != 2 || b.CompletedOnTime != 0 || b.CompletedLate != 1 {
		t.Fatalf("bucket=%+v, want completed:2 on_time:0 late:1", b)
	}
}

func TestComputeSupervisorRollupSkipsUnknownAssignee(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s := &types.User{ID: uuid.New(), Username: "s", Role: types.RoleSupervisor}
	ghost := &types.User{ID: uuid.New(), Username: "gone", Role: types.RoleSupervisor}

	activities := []*types.Activity{
		assigned(s, at(now.AddDate(0, 0, 1)), nil, 1, 0),
		// assignee no longer in the roster: skipped, not fatal
		assigned(ghost, at(now.AddDate(0, 0, 1)), nil, 1, 0),
	}
	got := ComputeSupervisorRollup(activities, []*types.User{s}, now)
	if len(got.Supervisors) != 1 || got.Supervisors[0].Assigned != 1 {
		t.Fatalf("rollup=%+v, want one bucket with assigned:1", got.Supervisors)
	}
	// The shared aggregate still covers the full set.
	if got.General.TotalActivities != 2 {
		t.Fatalf("aggregate total=%d, want 2", got.General.TotalActivities)
	}
}

func TestComputeSupervisorRollupBucketsScopedToCurrentMonth(t *testing.T) {
	now := time.Date(2024, 3, 29, 12, 0, 0, 0, time.UTC)
	s := &types.User{ID: uuid.New(), Username: "s", Role: types.RoleSupervisor}

	prevMonth := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	nextMonth := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)

	activities := []*types.Activity{
		// last month, fully resolved on time: feeds the trend only
		assigned(s, at(prevMonth), at(prevMonth.Add(-time.Hour)), 0, 2),
		// next month but inside the seven-day horizon: upcoming only
		assigned(s, at(nextMonth), nil, 1, 0),
		// unscheduled: never part of a month
		assigned(s, nil, nil, 1, 0),
		// the one activity the bucket should see
		assigned(s, at(now.AddDate(0, 0, 1)), nil, 1, 0),
	}
	got := ComputeSupervisorRollup(activities, []*types.User{s}, now)

	b := got.Supervisors[0]
	if b.Assigned != 1 || b.Completed != 0 || b.CompletedOnTime != 0 || b.CompletedLate != 0 || b.Overdue != 0 {
		t.Fatalf("bucket=%+v, want assigned:1 and everything else zero", b)
	}
	// The out-of-month activities still reach the shared aggregate.
	if got.General.PrevCompletionRate != 100.0 {
		t.Fatalf("prev completion rate=%v, want 100.0", got.General.PrevCompletionRate)
	}
	if got.General.UpcomingActivities != 2 {
		t.Fatalf("upcoming=%d, want 2", got.General.UpcomingActivities)
	}
}

func TestComputeSupervisorRollupMissedIsAlsoOverdue(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s := &types.User{ID: uuid.New(), Username: "s", Role: types.RoleSupervisor}

	// 30h past deadline with resolved todos: missed in the aggregate (the
	// grace period has lapsed) yet not done, so the bucket counts it overdue.
	// The two signals are computed independently.
	a := assigned(s, at(now.Add(-30*time.Hour)), nil, 1, 1)
	got := ComputeSupervisorRollup([]*types.Activity{a}, []*types.User{s}, now)

	if got.General.StatusDistribution.Missed != 1 {
		t.Fatalf("aggregate missed=%d, want 1", got.General.StatusDistribution.Missed)
	}
	if got.Supervisors[0].Overdue != 1 {
		t.Fatalf("bucket overdue=%d, want 1", got.Supervisors[0].Overdue)
	}
}
