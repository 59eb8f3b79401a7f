package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prevenio/prevenio-backend/internal/logger"
	"github.com/prevenio/prevenio-backend/internal/types"
)

type AssignmentRepo interface {
	// Upsert keeps the at-most-one-preventionist invariant: an existing edge
	// for the supervisor is overwritten, never duplicated.
	Upsert(ctx context.Context, tx *gorm.DB, assignment *types.SupervisorAssignment) (*types.SupervisorAssignment, error)
	GetBySupervisorID(ctx context.Context, tx *gorm.DB, supervisorID uuid.UUID) (*types.SupervisorAssignment, error)
	ListSupervisorsOf(ctx context.Context, tx *gorm.DB, preventionistID uuid.UUID) ([]*types.User, error)
	ListSupervisorIDs(ctx context.Context, tx *gorm.DB, preventionistID uuid.UUID) ([]uuid.UUID, error)
	DeleteBySupervisorID(ctx context.Context, tx *gorm.DB, supervisorID uuid.UUID) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return &assignmentRepo{db: db, log: baseLog.With("repo", "AssignmentRepo")}
}

func (ar *assignmentRepo) Upsert(ctx context.Context, tx *gorm.DB, assignment *types.SupervisorAssignment) (*types.SupervisorAssignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "supervisor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"preventionist_id", "updated_at"}),
		}).
		Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (ar *assignmentRepo) GetBySupervisorID(ctx context.Context, tx *gorm.DB, supervisorID uuid.UUID) (*types.SupervisorAssignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var result types.SupervisorAssignment
	if err := transaction.WithContext(ctx).
		Where("supervisor_id = ?", supervisorID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *assignmentRepo) ListSupervisorsOf(ctx context.Context, tx *gorm.DB, preventionistID uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.User
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Joins(`JOIN supervisor_assignment ON supervisor_assignment.supervisor_id = "user".id`).
		Where("supervisor_assignment.preventionist_id = ?", preventionistID).
		Order(`"user".username ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assignmentRepo) ListSupervisorIDs(ctx context.Context, tx *gorm.DB, preventionistID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.SupervisorAssignment{}).
		Where("preventionist_id = ?", preventionistID).
		Pluck("supervisor_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ar *assignmentRepo) DeleteBySupervisorID(ctx context.Context, tx *gorm.DB, supervisorID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Where("supervisor_id = ?", supervisorID).
		Delete(&types.SupervisorAssignment{}).Error
}
