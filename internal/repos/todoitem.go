package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type TodoItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, todos []*types.TodoItem) ([]*types.TodoItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, todoIDs []uuid.UUID) ([]*types.TodoItem, error)
	ListByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.TodoItem, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, fields map[string]interface{}) error
	FullDelete(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) error
	CountPendingByActivityID(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (int64, error)
}

type todoItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTodoItemRepo(db *gorm.DB, baseLog *logger.Logger) TodoItemRepo {
	return &todoItemRepo{db: db, log: baseLog.With("repo", "TodoItemRepo")}
}

func (tr *todoItemRepo) Create(ctx context.Context, tx *gorm.DB, todos []*types.TodoItem) ([]*types.TodoItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(todos) == 0 {
		return []*types.TodoItem{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (tr *todoItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, todoIDs []uuid.UUID) ([]*types.TodoItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.TodoItem
	if len(todoIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", todoIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *todoItemRepo) ListByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.TodoItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.TodoItem
	if len(activityIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("activity_id IN ?", activityIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *todoItemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.TodoItem{}).
		Where("id = ?", todoID).
		Updates(fields).Error
}

func (tr *todoItemRepo) FullDelete(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id = ?", todoID).
		Delete(&types.TodoItem{}).Error
}

func (tr *todoItemRepo) CountPendingByActivityID(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TodoItem{}).
		Where("activity_id = ? AND status = ?", activityID, types.TodoPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
