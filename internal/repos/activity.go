package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/types"
)

// ActivityFilter narrows List. Zero-value fields are ignored; ScheduledFrom
// and ScheduledTo bound scheduled_date inclusively when set.
type ActivityFilter struct {
	AssigneeID    *uuid.UUID
	AssigneeIDs   []uuid.UUID
	CreatorID     *uuid.UUID
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}

type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Activity, error)
	List(ctx context.Context, tx *gorm.DB, filter ActivityFilter) ([]*types.Activity, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, fields map[string]interface{}) error
	FullDelete(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) error
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{db: db, log: baseLog.With("repo", "ActivityRepo")}
}

func (ar *activityRepo) Create(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(activities) == 0 {
		return []*types.Activity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (ar *activityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Activity
	if len(activityIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Todos").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Where("id IN ?", activityIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) List(ctx context.Context, tx *gorm.DB, filter ActivityFilter) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	query := transaction.WithContext(ctx).
		Preload("Todos").
		Preload("AssignedTo").
		Model(&types.Activity{})

	if filter.AssigneeID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssigneeID)
	}
	if len(filter.AssigneeIDs) > 0 {
		query = query.Where("assigned_to_id IN ?", filter.AssigneeIDs)
	}
	if filter.CreatorID != nil {
		query = query.Where("created_by_id = ?", *filter.CreatorID)
	}
	if filter.ScheduledFrom != nil {
		query = query.Where("scheduled_date >= ?", *filter.ScheduledFrom)
	}
	if filter.ScheduledTo != nil {
		query = query.Where("scheduled_date <= ?", *filter.ScheduledTo)
	}

	var results []*types.Activity
	if err := query.Order("scheduled_date ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *activityRepo) UpdateFields(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Activity{}).
		Where("id = ?", activityID).
		Updates(fields).Error
}

func (ar *activityRepo) FullDelete(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	// Todos share the activity lifecycle and go with it.
	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("activity_id = ?", activityID).
		Delete(&types.TodoItem{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id = ?", activityID).
		Delete(&types.Activity{}).Error
}
