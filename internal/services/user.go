package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/apierr"
	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/repos"
	"github.com/prevenio/prevenio-backend/internal/requestdata"
	"github.com/prevenio/prevenio-backend/internal/types"
	"github.com/prevenio/prevenio-backend/internal/utils"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	CreateUser(ctx context.Context, user *types.User) (*types.User, error)
	ListSupervisors(ctx context.Context) ([]*types.User, error)
	AssignSupervisor(ctx context.Context, supervisorID, preventionistID uuid.UUID) (*types.SupervisorAssignment, error)
}

type userService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	assignmentRepo repos.AssignmentRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, assignmentRepo repos.AssignmentRepo) UserService {
	return &userService{
		db:             db,
		log:            log.With("service", "UserService"),
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("retrieve user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("user not found"))
	}
	return users[0], nil
}

func (us *userService) CreateUser(ctx context.Context, user *types.User) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no authenticated user in context"))
	}
	switch rd.Role {
	case types.RoleAdmin:
		// admin manages accounts
	case types.RolePreventionist, types.RoleSupervisor:
		return nil, apierr.Forbidden(fmt.Errorf("role %q may not create users", rd.Role))
	default:
		return nil, apierr.Forbidden(fmt.Errorf("unknown role"))
	}

	utils.NormalizeUserFields(user)
	if err := utils.ValidateNewUser(user); err != nil {
		return nil, apierr.InvalidInput(err)
	}
	exists, err := us.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check user email: %w", err)
	}
	if exists {
		return nil, apierr.InvalidInput(fmt.Errorf("email is already in use"))
	}
	if err := utils.HashPassword(user); err != nil {
		return nil, err
	}
	user.ID = uuid.New()
	if _, err := us.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// ListSupervisors returns the roster visible to the caller: a preventionist
// sees their own supervisors, an admin sees every supervisor.
func (us *userService) ListSupervisors(ctx context.Context) ([]*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no authenticated user in context"))
	}
	switch rd.Role {
	case types.RolePreventionist:
		return us.assignmentRepo.ListSupervisorsOf(ctx, nil, rd.UserID)
	case types.RoleAdmin:
		return us.userRepo.ListByRole(ctx, nil, types.RoleSupervisor)
	case types.RoleSupervisor:
		return nil, apierr.Forbidden(fmt.Errorf("supervisors have no roster"))
	default:
		return nil, apierr.Forbidden(fmt.Errorf("unknown role"))
	}
}

// AssignSupervisor attaches a supervisor to a preventionist, replacing any
// existing attachment. Preventionists may only assign to themselves.
func (us *userService) AssignSupervisor(ctx context.Context, supervisorID, preventionistID uuid.UUID) (*types.SupervisorAssignment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no authenticated user in context"))
	}
	switch rd.Role {
	case types.RoleAdmin:
	case types.RolePreventionist:
		if preventionistID != rd.UserID {
			return nil, apierr.Forbidden(fmt.Errorf("a preventionist may only assign supervisors to themselves"))
		}
	case types.RoleSupervisor:
		return nil, apierr.Forbidden(fmt.Errorf("supervisors may not manage assignments"))
	default:
		return nil, apierr.Forbidden(fmt.Errorf("unknown role"))
	}

	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{supervisorID, preventionistID})
	if err != nil {
		return nil, fmt.Errorf("retrieve assignment parties: %w", err)
	}
	byID := make(map[uuid.UUID]*types.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	supervisor, ok := byID[supervisorID]
	if !ok || supervisor.Role != types.RoleSupervisor {
		return nil, apierr.InvalidInput(fmt.Errorf("supervisor not found or not a supervisor"))
	}
	preventionist, ok := byID[preventionistID]
	if !ok || preventionist.Role != types.RolePreventionist {
		return nil, apierr.InvalidInput(fmt.Errorf("preventionist not found or not a preventionist"))
	}

	assignment := &types.SupervisorAssignment{
		ID:              uuid.New(),
		SupervisorID:    supervisorID,
		PreventionistID: preventionistID,
	}
	return us.assignmentRepo.Upsert(ctx, nil, assignment)
}
