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
)

func requestDataActor(ctx context.Context) *uuid.UUID {
	if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		id := rd.UserID
		return &id
	}
	return nil
}

type CreateTodoInput struct {
	Description string    `json:"description"`
	ActivityID  uuid.UUID `json:"activity_id"`
}

type UpdateTodoPatch struct {
	Description *string           `json:"description,omitempty"`
	Status      *types.TodoStatus `json:"status,omitempty"`
}

type TodoService interface {
	CreateTodo(ctx context.Context, input CreateTodoInput) (*types.TodoItem, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*types.TodoItem, error)
	UpdateTodo(ctx context.Context, todoID uuid.UUID, patch UpdateTodoPatch) (*types.TodoItem, error)
	DeleteTodo(ctx context.Context, todoID uuid.UUID) error
}

type todoService struct {
	db           *gorm.DB
	log          *logger.Logger
	todoRepo     repos.TodoItemRepo
	activityRepo repos.ActivityRepo
	eventRepo    repos.EventRepo
}

func NewTodoService(
	db *gorm.DB,
	log *logger.Logger,
	todoRepo repos.TodoItemRepo,
	activityRepo repos.ActivityRepo,
	eventRepo repos.EventRepo,
) TodoService {
	return &todoService{
		db:           db,
		log:          log.With("service", "TodoService"),
		todoRepo:     todoRepo,
		activityRepo: activityRepo,
		eventRepo:    eventRepo,
	}
}

func (ts *todoService) CreateTodo(ctx context.Context, input CreateTodoInput) (*types.TodoItem, error) {
	if input.Description == "" {
		return nil, apierr.InvalidInput(fmt.Errorf("a description is required"))
	}
	activities, err := ts.activityRepo.GetByIDs(ctx, nil, []uuid.UUID{input.ActivityID})
	if err != nil {
		return nil, fmt.Errorf("retrieve activity: %w", err)
	}
	if len(activities) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("activity not found"))
	}
	todo := &types.TodoItem{
		ID:          uuid.New(),
		Description: input.Description,
		Status:      types.TodoPending,
		ActivityID:  input.ActivityID,
	}
	if _, err := ts.todoRepo.Create(ctx, nil, []*types.TodoItem{todo}); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (ts *todoService) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*types.TodoItem, error) {
	return ts.todoRepo.ListByActivityIDs(ctx, nil, []uuid.UUID{activityID})
}

// UpdateTodo patches description and status. The activity reference is
// immutable once set; a patch never moves a todo between activities.
func (ts *todoService) UpdateTodo(ctx context.Context, todoID uuid.UUID, patch UpdateTodoPatch) (*types.TodoItem, error) {
	var updated *types.TodoItem
	if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ts.todoRepo.GetByIDs(ctx, tx, []uuid.UUID{todoID})
		if err != nil {
			return fmt.Errorf("retrieve todo: %w", err)
		}
		if len(existing) == 0 {
			return apierr.NotFound(fmt.Errorf("todo not found"))
		}
		todo := existing[0]

		fields := map[string]interface{}{}
		if patch.Description != nil {
			fields["description"] = *patch.Description
		}
		if patch.Status != nil {
			switch *patch.Status {
			case types.TodoPending, types.TodoDone, types.TodoSkipped:
			default:
				return apierr.InvalidInput(fmt.Errorf("unknown todo status %q", *patch.Status))
			}
			fields["status"] = *patch.Status
		}
		if err := ts.todoRepo.UpdateFields(ctx, tx, todoID, fields); err != nil {
			return fmt.Errorf("update todo: %w", err)
		}

		if patch.Status != nil && *patch.Status != todo.Status {
			eventType := types.EventTodoResolved
			if *patch.Status == types.TodoPending {
				eventType = types.EventTodoReopened
			}
			ts.recordTodoEvent(ctx, tx, todo.ActivityID, todoID, eventType)
		}

		todo.Description = valueOr(patch.Description, todo.Description)
		if patch.Status != nil {
			todo.Status = *patch.Status
		}
		updated = todo
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (ts *todoService) DeleteTodo(ctx context.Context, todoID uuid.UUID) error {
	existing, err := ts.todoRepo.GetByIDs(ctx, nil, []uuid.UUID{todoID})
	if err != nil {
		return fmt.Errorf("retrieve todo: %w", err)
	}
	if len(existing) == 0 {
		return apierr.NotFound(fmt.Errorf("todo not found"))
	}
	return ts.todoRepo.FullDelete(ctx, nil, todoID)
}

func (ts *todoService) recordTodoEvent(ctx context.Context, tx *gorm.DB, activityID, todoID uuid.UUID, eventType string) {
	var actorID *uuid.UUID
	if rd := requestDataActor(ctx); rd != nil {
		actorID = rd
	}
	event := &types.ActivityEvent{
		ID:         uuid.New(),
		ActivityID: activityID,
		ActorID:    actorID,
		Type:       eventType,
		Data:       []byte(fmt.Sprintf(`{"todo_id":%q}`, todoID)),
	}
	if _, err := ts.eventRepo.Create(ctx, tx, []*types.ActivityEvent{event}); err != nil {
		ts.log.Warn("Failed to record todo event", "type", eventType, "error", err)
	}
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
