package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type EventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.ActivityEvent) ([]*types.ActivityEvent, error)
	ListByActivityID(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) ([]*types.ActivityEvent, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{db: db, log: baseLog.With("repo", "EventRepo")}
}

func (er *eventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.ActivityEvent) ([]*types.ActivityEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if len(events) == 0 {
		return []*types.ActivityEvent{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (er *eventRepo) ListByActivityID(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) ([]*types.ActivityEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.ActivityEvent
	if err := transaction.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
