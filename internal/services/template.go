package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prevenio/prevenio-backend/internal/apierr"
	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/repos"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type CreateTemplateInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateTemplatePatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type TemplateService interface {
	CreateTemplate(ctx context.Context, input CreateTemplateInput) (*types.ActivityTemplate, error)
	GetTemplate(ctx context.Context, templateID uuid.UUID) (*types.ActivityTemplate, error)
	ListTemplates(ctx context.Context) ([]*types.ActivityTemplate, error)
	UpdateTemplate(ctx context.Context, templateID uuid.UUID, patch UpdateTemplatePatch) (*types.ActivityTemplate, error)
	DeleteTemplate(ctx context.Context, templateID uuid.UUID) error
	AddItem(ctx context.Context, templateID uuid.UUID, description string) (*types.TemplateTodoItem, error)
	ListItems(ctx context.Context, templateID uuid.UUID) ([]*types.TemplateTodoItem, error)
}

type templateService struct {
	db           *gorm.DB
	log          *logger.Logger
	templateRepo repos.TemplateRepo
}

func NewTemplateService(db *gorm.DB, log *logger.Logger, templateRepo repos.TemplateRepo) TemplateService {
	return &templateService{
		db:           db,
		log:          log.With("service", "TemplateService"),
		templateRepo: templateRepo,
	}
}

func (ts *templateService) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*types.ActivityTemplate, error) {
	if input.Name == "" {
		return nil, apierr.InvalidInput(fmt.Errorf("a template name is required"))
	}
	template := &types.ActivityTemplate{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}
	if _, err := ts.templateRepo.Create(ctx, nil, []*types.ActivityTemplate{template}); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return template, nil
}

func (ts *templateService) GetTemplate(ctx context.Context, templateID uuid.UUID) (*types.ActivityTemplate, error) {
	results, err := ts.templateRepo.GetByIDs(ctx, nil, []uuid.UUID{templateID})
	if err != nil {
		return nil, fmt.Errorf("retrieve template: %w", err)
	}
	if len(results) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("activity template not found"))
	}
	return results[0], nil
}

func (ts *templateService) ListTemplates(ctx context.Context) ([]*types.ActivityTemplate, error) {
	return ts.templateRepo.List(ctx, nil)
}

func (ts *templateService) UpdateTemplate(ctx context.Context, templateID uuid.UUID, patch UpdateTemplatePatch) (*types.ActivityTemplate, error) {
	if _, err := ts.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if err := ts.templateRepo.UpdateFields(ctx, nil, templateID, fields); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return ts.GetTemplate(ctx, templateID)
}

func (ts *templateService) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
	if _, err := ts.GetTemplate(ctx, templateID); err != nil {
		return err
	}
	return ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ts.templateRepo.FullDelete(ctx, tx, templateID)
	})
}

func (ts *templateService) AddItem(ctx context.Context, templateID uuid.UUID, description string) (*types.TemplateTodoItem, error) {
	if description == "" {
		return nil, apierr.InvalidInput(fmt.Errorf("a description is required"))
	}
	if _, err := ts.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}
	item := &types.TemplateTodoItem{
		ID:          uuid.New(),
		Description: description,
		TemplateID:  templateID,
	}
	if _, err := ts.templateRepo.CreateItems(ctx, nil, []*types.TemplateTodoItem{item}); err != nil {
		return nil, fmt.Errorf("create template item: %w", err)
	}
	return item, nil
}

func (ts *templateService) ListItems(ctx context.Context, templateID uuid.UUID) ([]*types.TemplateTodoItem, error) {
	if _, err := ts.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}
	return ts.templateRepo.ListItems(ctx, nil, templateID)
}
