package stats

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prevenio/prevenio-backend/internal/types"
)

func named(name string, supervisor *types.User, scheduled time.Time) *types.Activity {
	return &types.Activity{
		ID:            uuid.New(),
		Name:          name,
		AssignedToID:  supervisor.ID,
		AssignedTo:    supervisor,
		ScheduledDate: &scheduled,
	}
}

func TestGroupByName(t *testing.T) {
	s1 := &types.User{ID: uuid.New(), Username: "s1", Role: types.RoleSupervisor}
	s2 := &types.User{ID: uuid.New(), Username: "s2", Role: types.RoleSupervisor}

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	extinguishers := []*types.Activity{
		named("extinguisher check", s1, base.AddDate(0, 0, 14)),
		named("extinguisher check", s2, base),
		named("extinguisher check", s1, base.AddDate(0, 0, 7)),
	}
	ladders := []*types.Activity{
		named("ladder audit", s2, base.AddDate(0, 0, 2)),
	}

	groups := GroupByName(append(extinguishers, ladders...))

	if len(groups) != 2 {
		t.Fatalf("groups=%d, want 2", len(groups))
	}
	ext := groups[0]
	if ext.ActivityName != "extinguisher check" {
		t.Fatalf("first group=%q, want first-encountered name", ext.ActivityName)
	}
	if ext.ActivityID != extinguishers[0].ID {
		t.Fatalf("representative id must be the first encountered activity")
	}
	if ext.SupervisorCount != 2 || len(ext.Supervisors) != 2 {
		t.Fatalf("supervisors=(%d,%d), want s1 and s2 once each", ext.SupervisorCount, len(ext.Supervisors))
	}
	if !sort.SliceIsSorted(ext.ScheduledDates, func(a, b int) bool {
		return ext.ScheduledDates[a].Before(ext.ScheduledDates[b])
	}) {
		t.Fatalf("scheduled dates must be ascending, got %v", ext.ScheduledDates)
	}
	if len(ext.ScheduledDates) != 3 {
		t.Fatalf("scheduled dates=%d, want all three kept", len(ext.ScheduledDates))
	}

	if groups[1].ActivityName != "ladder audit" || groups[1].SupervisorCount != 1 {
		t.Fatalf("second group=%+v, want ladder audit with one supervisor", groups[1])
	}
}

func TestGroupByNameDeduplicationBound(t *testing.T) {
	s1 := &types.User{ID: uuid.New(), Username: "s1", Role: types.RoleSupervisor}
	s2 := &types.User{ID: uuid.New(), Username: "s2", Role: types.RoleSupervisor}
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	var activities []*types.Activity
	for i := 0; i < 5; i++ {
		activities = append(activities, named("a", s1, base))
		activities = append(activities, named("a", s2, base))
		activities = append(activities, named("b", s1, base))
	}

	distinctPairs := map[string]bool{"a/s1": true, "a/s2": true, "b/s1": true}
	total := 0
	for _, g := range GroupByName(activities) {
		total += g.SupervisorCount
	}
	if total > len(distinctPairs) {
		t.Fatalf("summed supervisor counts=%d exceed distinct (name, supervisor) pairs=%d", total, len(distinctPairs))
	}
	if total != 3 {
		t.Fatalf("summed supervisor counts=%d, want exactly 3 after deduplication", total)
	}
}

func TestGroupByNameEmpty(t *testing.T) {
	if got := GroupByName(nil); len(got) != 0 {
		t.Fatalf("empty input must yield an empty slice, got %v", got)
	}
}

func TestGroupByNameMissingSupervisorRecord(t *testing.T) {
	// Relation not preloaded: the distinct id still counts, the record list
	// only carries resolvable users.
	a := &types.Activity{ID: uuid.New(), Name: "orphaned", AssignedToID: uuid.New()}
	groups := GroupByName([]*types.Activity{a})
	if groups[0].SupervisorCount != 1 || len(groups[0].Supervisors) != 0 {
		t.Fatalf("group=%+v, want count 1 with no records", groups[0])
	}
}
