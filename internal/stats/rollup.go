package stats

import (
	"time"

	"github.com/google/uuid"

	"github.com/prevenio/prevenio-backend/internal/types"
)

type SupervisorBucket struct {
	Supervisor      *types.User `json:"supervisor"`
	Assigned        int         `json:"assigned"`
	Completed       int         `json:"completed"`
	CompletedOnTime int         `json:"completed_on_time"`
	CompletedLate   int         `json:"completed_late"`
	Overdue         int         `json:"overdue"`
}

type RollupResult struct {
	Supervisors []SupervisorBucket `json:"supervisors"`
	General     DistributionResult `json:"general"`
}

// ComputeSupervisorRollup breaks a preventionist's activity snapshot down
// into one bucket per supervisor in the roster, alongside the shared general
// statistics over the full set. The buckets cover only activities scheduled
// inside the current calendar month; the snapshot may carry neighbouring
// months for the aggregate's trend and upcoming figures, and those flow into
// General without touching any bucket. Activities assigned to someone
// outside the roster are skipped rather than failing the rollup. Note that
// missed and overdue are independent signals: a missed activity still lands
// in the aggregate missed count and, being not done and past deadline, also
// in its supervisor's overdue bucket.
func ComputeSupervisorRollup(activities []*types.Activity, supervisors []*types.User, now time.Time) RollupResult {
	result := RollupResult{
		Supervisors: make([]SupervisorBucket, 0, len(supervisors)),
		General:     ComputeDistribution(activities, now),
	}
	month := MonthWindow(now)

	index := make(map[uuid.UUID]int, len(supervisors))
	for _, supervisor := range supervisors {
		if supervisor == nil {
			continue
		}
		index[supervisor.ID] = len(result.Supervisors)
		result.Supervisors = append(result.Supervisors, SupervisorBucket{Supervisor: supervisor})
	}

	for _, activity := range activities {
		if activity == nil {
			continue
		}
		if activity.ScheduledDate == nil || !month.Contains(*activity.ScheduledDate) {
			continue
		}
		i, ok := index[activity.AssignedToID]
		if !ok {
			continue
		}
		bucket := &result.Supervisors[i]
		bucket.Assigned++

		effective := DeriveStatus(activity.Todos, activity.ScheduledDate, now)
		if effective == StatusDone {
			bucket.Completed++
			if onTime, judged := CompletedOnTime(activity.ScheduledDate, activity.FinishedDate); judged {
				if onTime {
					bucket.CompletedOnTime++
				} else {
					bucket.CompletedLate++
				}
			}
		}
		if Overdue(effective, activity.ScheduledDate, now) {
			bucket.Overdue++
		}
	}
	return result
}
