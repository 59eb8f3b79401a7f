package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/apierr"
	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/repos"
	"github.com/prevenio/prevenio-backend/internal/requestdata"
	"github.com/prevenio/prevenio-backend/internal/stats"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type CreateActivityInput struct {
	Name          string     `json:"name"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	AssignedToID  uuid.UUID  `json:"assigned_to_id"`
	TemplateID    *uuid.UUID `json:"activity_template_id,omitempty"`
}

// UpdateActivityPatch carries only the fields present in the request; nil
// means "leave alone".
type UpdateActivityPatch struct {
	Name          *string               `json:"name,omitempty"`
	Status        *types.ActivityStatus `json:"status,omitempty"`
	ScheduledDate *time.Time            `json:"scheduled_date,omitempty"`
	FinishedDate  *time.Time            `json:"finished_date,omitempty"`
	AssignedToID  *uuid.UUID            `json:"assigned_to_id,omitempty"`
	InReview      *bool                 `json:"in_review,omitempty"`
}

type ActivityService interface {
	CreateActivity(ctx context.Context, input CreateActivityInput) (*types.Activity, error)
	GetActivity(ctx context.Context, activityID uuid.UUID) (*types.Activity, error)
	ListActivities(ctx context.Context, filter repos.ActivityFilter) ([]*types.Activity, error)
	UpdateActivity(ctx context.Context, activityID uuid.UUID, patch UpdateActivityPatch) (*types.Activity, error)
	DeleteActivity(ctx context.Context, activityID uuid.UUID) error
	ListEvents(ctx context.Context, activityID uuid.UUID) ([]*types.ActivityEvent, error)
}

type activityService struct {
	db           *gorm.DB
	log          *logger.Logger
	activityRepo repos.ActivityRepo
	todoRepo     repos.TodoItemRepo
	templateRepo repos.TemplateRepo
	eventRepo    repos.EventRepo
}

func NewActivityService(
	db *gorm.DB,
	log *logger.Logger,
	activityRepo repos.ActivityRepo,
	todoRepo repos.TodoItemRepo,
	templateRepo repos.TemplateRepo,
	eventRepo repos.EventRepo,
) ActivityService {
	return &activityService{
		db:           db,
		log:          log.With("service", "ActivityService"),
		activityRepo: activityRepo,
		todoRepo:     todoRepo,
		templateRepo: templateRepo,
		eventRepo:    eventRepo,
	}
}

func (as *activityService) CreateActivity(ctx context.Context, input CreateActivityInput) (*types.Activity, error) {
	if input.Name == "" {
		return nil, apierr.InvalidInput(fmt.Errorf("an activity name is required"))
	}
	if input.AssignedToID == uuid.Nil {
		return nil, apierr.InvalidInput(fmt.Errorf("an assignee is required"))
	}

	var creatorID *uuid.UUID
	if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		id := rd.UserID
		creatorID = &id
	}

	activity := &types.Activity{
		ID:            uuid.New(),
		Name:          input.Name,
		Status:        types.ActivityPending,
		ScheduledDate: input.ScheduledDate,
		CreatedByID:   creatorID,
		AssignedToID:  input.AssignedToID,
	}

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.activityRepo.Create(ctx, tx, []*types.Activity{activity}); err != nil {
			return fmt.Errorf("create activity: %w", err)
		}
		// Instantiating a template copies its item descriptions into fresh
		// pending todos; the template has no further runtime relevance.
		if input.TemplateID != nil {
			items, err := as.templateRepo.ListItems(ctx, tx, *input.TemplateID)
			if err != nil {
				return fmt.Errorf("load template items: %w", err)
			}
			todos := make([]*types.TodoItem, 0, len(items))
			for _, item := range items {
				todos = append(todos, &types.TodoItem{
					ID:          uuid.New(),
					Description: item.Description,
					Status:      types.TodoPending,
					ActivityID:  activity.ID,
				})
			}
			created, err := as.todoRepo.Create(ctx, tx, todos)
			if err != nil {
				return fmt.Errorf("instantiate template todos: %w", err)
			}
			for _, todo := range created {
				activity.Todos = append(activity.Todos, *todo)
			}
		}
		as.recordEvent(ctx, tx, activity.ID, types.EventActivityCreated, map[string]interface{}{
			"name": activity.Name,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	return activity, nil
}

func (as *activityService) GetActivity(ctx context.Context, activityID uuid.UUID) (*types.Activity, error) {
	results, err := as.activityRepo.GetByIDs(ctx, nil, []uuid.UUID{activityID})
	if err != nil {
		return nil, fmt.Errorf("retrieve activity: %w", err)
	}
	if len(results) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("activity not found"))
	}
	return results[0], nil
}

func (as *activityService) ListActivities(ctx context.Context, filter repos.ActivityFilter) ([]*types.Activity, error) {
	return as.activityRepo.List(ctx, nil, filter)
}

// UpdateActivity applies a partial patch under the review-transition guard:
// flipping in_review on while any todo is still pending rejects the whole
// write with no partial field application. The read-check-write runs inside
// one transaction so concurrent readers never see a half-applied patch.
func (as *activityService) UpdateActivity(ctx context.Context, activityID uuid.UUID, patch UpdateActivityPatch) (*types.Activity, error) {
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.activityRepo.GetByIDs(ctx, tx, []uuid.UUID{activityID})
		if err != nil {
			return fmt.Errorf("retrieve activity: %w", err)
		}
		if len(existing) == 0 {
			return apierr.NotFound(fmt.Errorf("activity not found"))
		}

		if patch.InReview != nil && *patch.InReview && !existing[0].InReview {
			pending, err := as.todoRepo.CountPendingByActivityID(ctx, tx, activityID)
			if err != nil {
				return fmt.Errorf("check pending todos: %w", err)
			}
			if pending > 0 {
				return apierr.GuardRejected(fmt.Errorf("cannot enter review with %d pending todo(s)", pending))
			}
		}

		fields := map[string]interface{}{}
		if patch.Name != nil {
			fields["name"] = *patch.Name
		}
		if patch.Status != nil {
			fields["status"] = *patch.Status
		}
		if patch.ScheduledDate != nil {
			fields["scheduled_date"] = *patch.ScheduledDate
		}
		if patch.FinishedDate != nil {
			fields["finished_date"] = *patch.FinishedDate
		}
		if patch.AssignedToID != nil {
			fields["assigned_to_id"] = *patch.AssignedToID
		}
		if patch.InReview != nil {
			fields["in_review"] = *patch.InReview
		}
		if len(fields) == 0 {
			// Nothing to write, nothing to audit.
			return nil
		}
		if err := as.activityRepo.UpdateFields(ctx, tx, activityID, fields); err != nil {
			return fmt.Errorf("update activity: %w", err)
		}

		eventType := types.EventActivityUpdated
		if patch.InReview != nil && *patch.InReview {
			eventType = types.EventReviewEntered
		}
		changed := make([]string, 0, len(fields))
		for k := range fields {
			changed = append(changed, k)
		}
		as.recordEvent(ctx, tx, activityID, eventType, map[string]interface{}{
			"fields": changed,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	return as.GetActivity(ctx, activityID)
}

func (as *activityService) DeleteActivity(ctx context.Context, activityID uuid.UUID) error {
	existing, err := as.activityRepo.GetByIDs(ctx, nil, []uuid.UUID{activityID})
	if err != nil {
		return fmt.Errorf("retrieve activity: %w", err)
	}
	if len(existing) == 0 {
		return apierr.NotFound(fmt.Errorf("activity not found"))
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return as.activityRepo.FullDelete(ctx, tx, activityID)
	})
}

func (as *activityService) ListEvents(ctx context.Context, activityID uuid.UUID) ([]*types.ActivityEvent, error) {
	return as.eventRepo.ListByActivityID(ctx, nil, activityID)
}

// recordEvent appends to the audit trail; a failed append is logged but
// never fails the write it describes.
func (as *activityService) recordEvent(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, eventType string, data map[string]interface{}) {
	var actorID *uuid.UUID
	if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		id := rd.UserID
		actorID = &id
	}
	payload, err := json.Marshal(data)
	if err != nil {
		as.log.Warn("Failed to encode event payload", "error", err)
		return
	}
	event := &types.ActivityEvent{
		ID:         uuid.New(),
		ActivityID: activityID,
		ActorID:    actorID,
		Type:       eventType,
		Data:       datatypes.JSON(payload),
	}
	if _, err := as.eventRepo.Create(ctx, tx, []*types.ActivityEvent{event}); err != nil {
		as.log.Warn("Failed to record activity event", "type", eventType, "error", err)
	}
}

// EffectiveStatus is the read-side projection used wherever an activity is
// rendered with its authoritative status: always derived, never the stored tag.
func EffectiveStatus(activity *types.Activity, now time.Time) stats.Status {
	return stats.DeriveStatus(activity.Todos, activity.ScheduledDate, now)
}
