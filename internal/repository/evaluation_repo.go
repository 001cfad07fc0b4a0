package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/models"
)

// EvaluationRepository defines persistence operations for evaluations.
// Evaluations are immutable once created.
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	ListAll(ctx context.Context) ([]models.Evaluation, error)
	ListByMeeting(ctx context.Context, meetingID uint) ([]models.Evaluation, error)
	ListBySpeaker(ctx context.Context, speakerName string) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates a GORM-backed repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) ListAll(ctx context.Context) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Order("created_at DESC").
		Find(&evaluations).Error
	if err != nil {
		return nil, err
	}

	return evaluations, nil
}

func (r *evaluationRepository) ListByMeeting(ctx context.Context, meetingID uint) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&evaluations).Error
	if err != nil {
		return nil, err
	}

	return evaluations, nil
}

func (r *evaluationRepository) ListBySpeaker(ctx context.Context, speakerName string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Where("speaker_name = ?", speakerName).
		Order("created_at DESC").
		Find(&evaluations).Error
	if err != nil {
		return nil, err
	}

	return evaluations, nil
}
