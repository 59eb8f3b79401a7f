package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/apierr"
	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/repos"
	"github.com/prevenio/prevenio-backend/internal/requestdata"
	"github.com/prevenio/prevenio-backend/internal/stats"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type StatsService interface {
	GetStatusStats(ctx context.Context, userID uuid.UUID) (stats.StatusCounts, error)
	GetDetailedStats(ctx context.Context, userID uuid.UUID) (stats.DistributionResult, error)
	GetSupervisorRollup(ctx context.Context) (stats.RollupResult, error)
	GroupActivities(ctx context.Context) ([]stats.GroupedActivity, error)
}

type statsService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	activityRepo   repos.ActivityRepo
	assignmentRepo repos.AssignmentRepo
	now            func() time.Time
}

func NewStatsService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	activityRepo repos.ActivityRepo,
	assignmentRepo repos.AssignmentRepo,
) StatsService {
	return &statsService{
		db:             db,
		log:            log.With("service", "StatsService"),
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		assignmentRepo: assignmentRepo,
		now:            time.Now,
	}
}

// authorizeStatsTarget decides whether the caller may read the target
// assignee's figures. Everyone reads their own; supervisors read nobody
// else's, while preventionists and admins may target any assignee.
func authorizeStatsTarget(ctx context.Context, target uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.Forbidden(fmt.Errorf("no authenticated user in context"))
	}
	if target == rd.UserID {
		return nil
	}
	switch rd.Role {
	case types.RolePreventionist, types.RoleAdmin:
		return nil
	case types.RoleSupervisor:
		return apierr.Forbidden(fmt.Errorf("supervisors may only read their own statistics"))
	default:
		return apierr.Forbidden(fmt.Errorf("unknown role"))
	}
}

// GetStatusStats is the assignee's current-month status distribution.
func (ss *statsService) GetStatusStats(ctx context.Context, userID uuid.UUID) (stats.StatusCounts, error) {
	if err := authorizeStatsTarget(ctx, userID); err != nil {
		return stats.StatusCounts{}, err
	}
	activities, err := ss.activityRepo.List(ctx, nil, repos.ActivityFilter{AssigneeID: &userID})
	if err != nil {
		return stats.StatusCounts{}, fmt.Errorf("list activities: %w", err)
	}
	return stats.ComputeDistribution(activities, ss.now()).StatusDistribution, nil
}

// GetDetailedStats is the assignee dashboard figure set: distribution,
// completion rate with previous-month trend, upcoming count and task ratio.
// The full snapshot for the assignee goes in; the engine does the windowing.
func (ss *statsService) GetDetailedStats(ctx context.Context, userID uuid.UUID) (stats.DistributionResult, error) {
	if err := authorizeStatsTarget(ctx, userID); err != nil {
		return stats.DistributionResult{}, err
	}
	activities, err := ss.activityRepo.List(ctx, nil, repos.ActivityFilter{AssigneeID: &userID})
	if err != nil {
		return stats.DistributionResult{}, fmt.Errorf("list activities: %w", err)
	}
	return stats.ComputeDistribution(activities, ss.now()), nil
}

// GetSupervisorRollup builds the preventionist dashboard: one bucket per
// supervisor plus the shared aggregate over every activity under the
// hierarchy this month.
func (ss *statsService) GetSupervisorRollup(ctx context.Context) (stats.RollupResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return stats.RollupResult{}, apierr.Forbidden(fmt.Errorf("no authenticated user in context"))
	}
	switch rd.Role {
	case types.RolePreventionist:
	case types.RoleSupervisor, types.RoleAdmin:
		return stats.RollupResult{}, apierr.Forbidden(fmt.Errorf("supervisor statistics require the preventionist role"))
	default:
		return stats.RollupResult{}, apierr.Forbidden(fmt.Errorf("unknown role"))
	}

	var (
		roster []*types.User
		caller []*types.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = ss.assignmentRepo.ListSupervisorsOf(gctx, nil, rd.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		caller, err = ss.userRepo.GetByIDs(gctx, nil, []uuid.UUID{rd.UserID})
		return err
	})
	if err := g.Wait(); err != nil {
		return stats.RollupResult{}, fmt.Errorf("load supervisor roster: %w", err)
	}
	// The token may outlive the account or a role change; re-check the row.
	if len(caller) == 0 || caller[0].Role != types.RolePreventionist {
		return stats.RollupResult{}, apierr.Forbidden(fmt.Errorf("supervisor statistics require the preventionist role"))
	}
	if len(roster) == 0 {
		// Nothing to roll up; skip the activity query entirely.
		return stats.RollupResult{Supervisors: []stats.SupervisorBucket{}}, nil
	}

	now := ss.now()
	// The aggregate needs last month for the trend and the next seven days
	// for the upcoming count, so the query spans both ends.
	from := stats.PrevMonthWindow(now).Start
	to := stats.MonthWindow(now).End
	if upcomingEnd := stats.UpcomingWindow(now).End; upcomingEnd.After(to) {
		to = upcomingEnd
	}
	supervisorIDs := make([]uuid.UUID, 0, len(roster))
	for _, supervisor := range roster {
		supervisorIDs = append(supervisorIDs, supervisor.ID)
	}
	activities, err := ss.activityRepo.List(ctx, nil, repos.ActivityFilter{
		AssigneeIDs:   supervisorIDs,
		ScheduledFrom: &from,
		ScheduledTo:   &to,
	})
	if err != nil {
		return stats.RollupResult{}, fmt.Errorf("list hierarchy activities: %w", err)
	}
	return stats.ComputeSupervisorRollup(activities, roster, now), nil
}

// GroupActivities folds everything the calling preventionist ever created
// into the grouped-by-name view.
func (ss *statsService) GroupActivities(ctx context.Context) ([]stats.GroupedActivity, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no authenticated user in context"))
	}
	switch rd.Role {
	case types.RolePreventionist:
	case types.RoleSupervisor, types.RoleAdmin:
		return nil, apierr.Forbidden(fmt.Errorf("the grouped view requires the preventionist role"))
	default:
		return nil, apierr.Forbidden(fmt.Errorf("unknown role"))
	}
	creator := rd.UserID
	activities, err := ss.activityRepo.List(ctx, nil, repos.ActivityFilter{CreatorID: &creator})
	if err != nil {
		return nil, fmt.Errorf("list created activities: %w", err)
	}
	return stats.GroupByName(activities), nil
}
