package stats

import (
	"math"
	"time"

	"github.com/prevenio/prevenio-backend/internal/types"
)

type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	Missed     int `json:"missed"`
}

type DistributionResult struct {
	StatusDistribution StatusCounts `json:"status_distribution"`
	TotalActivities    int          `json:"total_activities"`
	UpcomingActivities int          `json:"upcoming_activities"`
	CompletionRate     float64      `json:"completion_rate"`
	PrevCompletionRate float64      `json:"prev_completion_rate"`
	CompletionTrend    float64      `json:"completion_trend"`
	AvgTaskCompletion  float64      `json:"avg_task_completion"`
	TotalTasks         int          `json:"total_tasks"`
	CompletedTasks     int          `json:"completed_tasks"`
}

// ComputeDistribution aggregates a snapshot of activities (already scoped to
// one assignee or one hierarchy) into the current-month status distribution,
// completion rate with previous-month trend, the upcoming count and the
// task-level completion ratio. Activities without a scheduled date cannot be
// placed in a calendar bucket and are ignored for the windowed figures.
func ComputeDistribution(activities []*types.Activity, now time.Time) DistributionResult {
	current := MonthWindow(now)
	previous := PrevMonthWindow(now)
	upcoming := UpcomingWindow(now)

	var result DistributionResult
	prevTotal, prevDone := 0, 0

	for _, activity := range activities {
		if activity == nil || activity.ScheduledDate == nil {
			continue
		}
		scheduled := *activity.ScheduledDate

		if upcoming.Contains(scheduled) {
			result.UpcomingActivities++
		}

		if previous.Contains(scheduled) {
			prevTotal++
			// The 24h missed rule cannot apply a month back; an activity
			// counts done for the trend iff its todo set is non-empty and
			// fully resolved.
			if len(activity.Todos) > 0 && countResolved(activity.Todos) == len(activity.Todos) {
				prevDone++
			}
			continue
		}

		if !current.Contains(scheduled) {
			continue
		}
		result.TotalActivities++

		switch DeriveStatus(activity.Todos, activity.ScheduledDate, now) {
		case StatusMissed:
			// Missed short-circuits: the activity's todos stay out of the
			// task-level ratio.
			result.StatusDistribution.Missed++
			continue
		case StatusPending:
			result.StatusDistribution.Pending++
		case StatusDone:
			result.StatusDistribution.Done++
		case StatusInProgress:
			result.StatusDistribution.InProgress++
		}

		result.TotalTasks += len(activity.Todos)
		result.CompletedTasks += countResolved(activity.Todos)
	}

	result.CompletionRate = ratio(result.StatusDistribution.Done, result.TotalActivities)
	result.PrevCompletionRate = ratio(prevDone, prevTotal)
	result.CompletionTrend = round1(result.CompletionRate - result.PrevCompletionRate)
	result.AvgTaskCompletion = ratio(result.CompletedTasks, result.TotalTasks)
	return result
}

// ratio is part/whole as a percentage rounded to one decimal, 0 for an empty
// denominator.
func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
