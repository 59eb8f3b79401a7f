package stats

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/prevenio/prevenio-backend/internal/types"
)

type GroupedActivity struct {
	ActivityName    string        `json:"activity_name"`
	ActivityID      uuid.UUID     `json:"activity_id"`
	ScheduledDates  []time.Time   `json:"scheduled_dates"`
	SupervisorCount int           `json:"supervisor_count"`
	Supervisors     []*types.User `json:"supervisors"`
}

// GroupByName folds a preventionist's activities into one record per
// distinct name: a representative id (first encountered), every scheduled
// date sorted ascending, and the assigned supervisors deduplicated by id
// with the first-seen record winning. Groups keep first-encounter order.
func GroupByName(activities []*types.Activity) []GroupedActivity {
	groups := make([]GroupedActivity, 0)
	byName := make(map[string]int)
	seenSupervisors := make(map[string]map[uuid.UUID]bool)

	for _, activity := range activities {
		if activity == nil {
			continue
		}
		i, ok := byName[activity.Name]
		if !ok {
			i = len(groups)
			byName[activity.Name] = i
			groups = append(groups, GroupedActivity{
				ActivityName: activity.Name,
				ActivityID:   activity.ID,
			})
			seenSupervisors[activity.Name] = make(map[uuid.UUID]bool)
		}
		group := &groups[i]

		if activity.ScheduledDate != nil {
			group.ScheduledDates = append(group.ScheduledDates, *activity.ScheduledDate)
		}

		seen := seenSupervisors[activity.Name]
		if activity.AssignedToID != uuid.Nil && !seen[activity.AssignedToID] {
			seen[activity.AssignedToID] = true
			group.SupervisorCount++
			// The supervisor record can be absent when the relation was not
			// preloaded or the user is gone; the count still reflects the
			// distinct id.
			if activity.AssignedTo != nil {
				group.Supervisors = append(group.Supervisors, activity.AssignedTo)
			}
		}
	}

	for i := range groups {
		dates := groups[i].ScheduledDates
		sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b]) })
	}
	return groups
}
