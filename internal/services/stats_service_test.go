package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/apierr"
	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/repos"
	"github.com/prevenio/prevenio-backend/internal/requestdata"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, tx *gorm.DB, role types.Role) ([]*types.User, error) {
	var out []*types.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	roster map[uuid.UUID][]*types.User
}

func (f *fakeAssignmentRepo) Upsert(ctx context.Context, tx *gorm.DB, assignment *types.SupervisorAssignment) (*types.SupervisorAssignment, error) {
	return assignment, nil
}

func (f *fakeAssignmentRepo) GetBySupervisorID(ctx context.Context, tx *gorm.DB, supervisorID uuid.UUID) (*types.SupervisorAssignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) ListSupervisorsOf(ctx context.Context, tx *gorm.DB, preventionistID uuid.UUID) ([]*types.User, error) {
	return f.roster[preventionistID], nil
}

func (f *fakeAssignmentRepo) ListSupervisorIDs(ctx context.Context, tx *gorm.DB, preventionistID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, u := range f.roster[preventionistID] {
		out = append(out, u.ID)
	}
	return out, nil
}

func (f *fakeAssignmentRepo) DeleteBySupervisorID(ctx context.Context, tx *gorm.DB, supervisorID uuid.UUID) error {
	return nil
}

type filteringActivityRepo struct {
	fakeActivityRepo
	activities []*types.Activity
	lastFilter repos.ActivityFilter
}

func (f *filteringActivityRepo) List(ctx context.Context, tx *gorm.DB, filter repos.ActivityFilter) ([]*types.Activity, error) {
	f.lastFilter = filter
	return f.activities, nil
}

func ctxWithRole(userID uuid.UUID, role types.Role) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: userID,
		Role:   role,
	})
}

func newTestStatsService(t *testing.T, userRepo repos.UserRepo, activityRepo repos.ActivityRepo, assignmentRepo repos.AssignmentRepo, now time.Time) StatsService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewStatsService(nil, log, userRepo, activityRepo, assignmentRepo)
	svc.(*statsService).now = func() time.Time { return now }
	return svc
}

func TestStatusStatsSupervisorCannotTargetOthers(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	activityRepo := &filteringActivityRepo{}
	svc := newTestStatsService(t, &fakeUserRepo{}, activityRepo, &fakeAssignmentRepo{}, now)

	_, err := svc.GetStatusStats(ctxWithRole(uuid.New(), types.RoleSupervisor), uuid.New())
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	apiErr, ok := apierr.From(err)
	if !ok || apiErr.Status != 403 {
		t.Fatalf("expected 403 apierr, got %v", err)
	}
	if activityRepo.lastFilter.AssigneeID != nil {
		t.Fatal("forbidden target must not query activities")
	}
}

func TestStatusStatsSupervisorReadsOwn(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	supID := uuid.New()
	activityRepo := &filteringActivityRepo{}
	svc := newTestStatsService(t, &fakeUserRepo{}, activityRepo, &fakeAssignmentRepo{}, now)

	if _, err := svc.GetStatusStats(ctxWithRole(supID, types.RoleSupervisor), supID); err != nil {
		t.Fatalf("GetStatusStats: %v", err)
	}
	if activityRepo.lastFilter.AssigneeID == nil || *activityRepo.lastFilter.AssigneeID != supID {
		t.Fatalf("query must scope to the caller, got %+v", activityRepo.lastFilter)
	}
}

func TestDetailedStatsPreventionistMayTargetAssignee(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	supID := uuid.New()
	activityRepo := &filteringActivityRepo{}
	svc := newTestStatsService(t, &fakeUserRepo{}, activityRepo, &fakeAssignmentRepo{}, now)

	if _, err := svc.GetDetailedStats(ctxWithRole(uuid.New(), types.RolePreventionist), supID); err != nil {
		t.Fatalf("GetDetailedStats: %v", err)
	}
	if activityRepo.lastFilter.AssigneeID == nil || *activityRepo.lastFilter.AssigneeID != supID {
		t.Fatalf("query must scope to the target, got %+v", activityRepo.lastFilter)
	}
}

func TestSupervisorRollupForbiddenForSupervisor(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestStatsService(t, &fakeUserRepo{}, &filteringActivityRepo{}, &fakeAssignmentRepo{}, now)

	_, err := svc.GetSupervisorRollup(ctxWithRole(uuid.New(), types.RoleSupervisor))
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	apiErr, ok := apierr.From(err)
	if !ok || apiErr.Status != 403 {
		t.Fatalf("expected 403 apierr, got %v", err)
	}
}

func TestSupervisorRollupForbiddenWithoutContext(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestStatsService(t, &fakeUserRepo{}, &filteringActivityRepo{}, &fakeAssignmentRepo{}, now)

	_, err := svc.GetSupervisorRollup(context.Background())
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	apiErr, ok := apierr.From(err)
	if !ok || apiErr.Status != 403 {
		t.Fatalf("expected 403 apierr, got %v", err)
	}
}

// A stale token for a user whose row changed role (or is gone) must not
// pass the context check alone.
func TestSupervisorRollupRechecksStoredRole(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	prevID := uuid.New()
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*types.User{
		prevID: {ID: prevID, Role: types.RoleSupervisor},
	}}
	svc := newTestStatsService(t, userRepo, &filteringActivityRepo{}, &fakeAssignmentRepo{}, now)

	_, err := svc.GetSupervisorRollup(ctxWithRole(prevID, types.RolePreventionist))
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	apiErr, ok := apierr.From(err)
	if !ok || apiErr.Status != 403 {
		t.Fatalf("expected 403 apierr, got %v", err)
	}
}

func TestSupervisorRollupEmptyRoster(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	prevID := uuid.New()
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*types.User{
		prevID: {ID: prevID, Role: types.RolePreventionist},
	}}
	activityRepo := &filteringActivityRepo{}
	svc := newTestStatsService(t, userRepo, activityRepo, &fakeAssignmentRepo{}, now)

	result, err := svc.GetSupervisorRollup(ctxWithRole(prevID, types.RolePreventionist))
	if err != nil {
		t.Fatalf("GetSupervisorRollup: %v", err)
	}
	if len(result.Supervisors) != 0 {
		t.Fatalf("expected no buckets, got %d", len(result.Supervisors))
	}
	if result.General.TotalActivities != 0 {
		t.Fatalf("expected zeroed aggregate, got %+v", result.General)
	}
	if activityRepo.lastFilter.AssigneeIDs != nil {
		t.Fatal("empty roster must not query activities")
	}
}

func TestSupervisorRollupQueryWindowSpansTrendAndUpcoming(t *testing.T) {
	now := time.Date(2024, 3, 29, 12, 0, 0, 0, time.UTC)
	prevID := uuid.New()
	supID := uuid.New()
	supervisor := &types.User{ID: supID, Username: "sup_0", Role: types.RoleSupervisor}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*types.User{
		prevID: {ID: prevID, Role: types.RolePreventionist},
		supID:  supervisor,
	}}
	assignmentRepo := &fakeAssignmentRepo{roster: map[uuid.UUID][]*types.User{
		prevID: {supervisor},
	}}
	activityRepo := &filteringActivityRepo{}
	svc := newTestStatsService(t, userRepo, activityRepo, assignmentRepo, now)

	result, err := svc.GetSupervisorRollup(ctxWithRole(prevID, types.RolePreventionist))
	if err != nil {
		t.Fatalf("GetSupervisorRollup: %v", err)
	}
	if len(result.Supervisors) != 1 {
		t.Fatalf("expected one bucket, got %d", len(result.Supervisors))
	}

	filter := activityRepo.lastFilter
	if filter.ScheduledFrom == nil || filter.ScheduledTo == nil {
		t.Fatal("rollup query must bound scheduled_date")
	}
	wantFrom := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if !filter.ScheduledFrom.Equal(wantFrom) {
		t.Fatalf("query start: want=%s got=%s", wantFrom, filter.ScheduledFrom)
	}
	// Seven days out from March 29 lands past month end; the upper bound
	// must follow it so upcoming activities stay countable.
	wantTo := now.Add(7 * 24 * time.Hour)
	if !filter.ScheduledTo.Equal(wantTo) {
		t.Fatalf("query end: want=%s got=%s", wantTo, filter.ScheduledTo)
	}
	if len(filter.AssigneeIDs) != 1 || filter.AssigneeIDs[0] != supID {
		t.Fatalf("query assignees: want=[%s] got=%v", supID, filter.AssigneeIDs)
	}
}

func TestGroupActivitiesForbiddenForSupervisor(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestStatsService(t, &fakeUserRepo{}, &filteringActivityRepo{}, &fakeAssignmentRepo{}, now)

	_, err := svc.GroupActivities(ctxWithRole(uuid.New(), types.RoleSupervisor))
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	apiErr, ok := apierr.From(err)
	if !ok || apiErr.Status != 403 {
		t.Fatalf("expected 403 apierr, got %v", err)
	}
}

func TestGroupActivitiesScopedToCaller(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	prevID := uuid.New()
	activityRepo := &filteringActivityRepo{}
	svc := newTestStatsService(t, &fakeUserRepo{}, activityRepo, &fakeAssignmentRepo{}, now)

	if _, err := svc.GroupActivities(ctxWithRole(prevID, types.RolePreventionist)); err != nil {
		t.Fatalf("GroupActivities: %v", err)
	}
	if activityRepo.lastFilter.CreatorID == nil || *activityRepo.lastFilter.CreatorID != prevID {
		t.Fatalf("grouped query must scope to the caller, got %+v", activityRepo.lastFilter)
	}
}
