package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type TemplateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, templates []*types.ActivityTemplate) ([]*types.ActivityTemplate, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.ActivityTemplate, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.ActivityTemplate, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, fields map[string]interface{}) error
	FullDelete(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []*types.TemplateTodoItem) ([]*types.TemplateTodoItem, error)
	ListItems(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.TemplateTodoItem, error)
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return &templateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (tr *templateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.ActivityTemplate) ([]*types.ActivityTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(templates) == 0 {
		return []*types.ActivityTemplate{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (tr *templateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.ActivityTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.ActivityTemplate
	if len(templateIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("TemplateTodos").
		Where("id IN ?", templateIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *templateRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ActivityTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.ActivityTemplate
	if err := transaction.WithContext(ctx).
		Preload("TemplateTodos").
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *templateRepo) UpdateFields(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.ActivityTemplate{}).
		Where("id = ?", templateID).
		Updates(fields).Error
}

func (tr *templateRepo) FullDelete(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("template_id = ?", templateID).
		Delete(&types.TemplateTodoItem{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id = ?", templateID).
		Delete(&types.ActivityTemplate{}).Error
}

func (tr *templateRepo) CreateItems(ctx context.Context, tx *gorm.DB, items []*types.TemplateTodoItem) ([]*types.TemplateTodoItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(items) == 0 {
		return []*types.TemplateTodoItem{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (tr *templateRepo) ListItems(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.TemplateTodoItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.TemplateTodoItem
	if err := transaction.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
