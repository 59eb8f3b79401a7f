// Package stats holds the completion and reporting core: effective status
// derivation, calendar windowing, distribution aggregation, the
// per-supervisor rollup and the grouped-by-name view. Everything in this
// package is a pure function over an already-materialized snapshot; callers
// inject the clock and the package holds no state.
package stats

import (
	"time"

	"github.com/prevenio/prevenio-backend/internal/types"
)

// Status is the effective activity status. It is always recomputed from the
// todo set and the schedule; the coarse tag persisted on Activity is a cache
// hint and is never consulted here.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusMissed     Status = "missed"
)

// MissedGrace is how far past its deadline an activity may run before it is
// classified missed rather than merely late.
const MissedGrace = 24 * time.Hour

// DeriveStatus computes the effective status of an activity from its todos
// and scheduled date. First match wins: missed short-circuits everything,
// then empty or untouched todo sets are pending, a fully resolved set is
// done, and anything in between is in progress.
func DeriveStatus(todos []types.TodoItem, scheduled *time.Time, now time.Time) Status {
	if Missed(scheduled, now) {
		return StatusMissed
	}
	total := len(todos)
	if total == 0 {
		return StatusPending
	}
	resolved := countResolved(todos)
	switch {
	case resolved == 0:
		return StatusPending
	case resolved == total:
		return StatusDone
	default:
		return StatusInProgress
	}
}

// Missed reports whether the deadline plus the 24h grace period has passed,
// regardless of todo completion.
func Missed(scheduled *time.Time, now time.Time) bool {
	return scheduled != nil && scheduled.Before(now.Add(-MissedGrace))
}

// Overdue reports whether a not-done activity is past its deadline. Unlike
// Missed there is no grace period; this is the companion signal used only in
// per-supervisor breakdowns and the two are intentionally not reconciled.
func Overdue(effective Status, scheduled *time.Time, now time.Time) bool {
	return effective != StatusDone && scheduled != nil && scheduled.Before(now)
}

// CompletedOnTime classifies a completed activity. judged is false when no
// finished date was recorded: the activity still counts as completed but no
// on-time/late call is made.
func CompletedOnTime(scheduled, finished *time.Time) (onTime, judged bool) {
	if finished == nil || scheduled == nil {
		return false, false
	}
	return !finished.After(*scheduled), true
}

// CanEnterReview is the review-transition guard: an activity may only be
// flagged in_review once every todo has left the pending state.
func CanEnterReview(todos []types.TodoItem) bool {
	for _, todo := range todos {
		if !todo.Resolved() {
			return false
		}
	}
	return true
}

func countResolved(todos []types.TodoItem) int {
	resolved := 0
	for _, todo := range todos {
		if todo.Resolved() {
			resolved++
		}
	}
	return resolved
}
