package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/models"
)

// ReportRepository defines persistence operations for the four functionary
// report kinds. Each kind lives in its own table; list order is newest first.
type ReportRepository interface {
	ListAhUmByMeeting(ctx context.Context, meetingID uint) ([]models.AhUmReport, error)
	GetAhUm(ctx context.Context, id uint) (models.AhUmReport, error)
	CreateAhUm(ctx context.Context, report *models.AhUmReport) error
	UpdateAhUm(ctx context.Context, report *models.AhUmReport) error
	DeleteAhUm(ctx context.Context, id uint) error

	ListGrammarianByMeeting(ctx context.Context, meetingID uint) ([]models.GrammarianReport, error)
	GetGrammarian(ctx context.Context, id uint) (models.GrammarianReport, error)
	CreateGrammarian(ctx context.Context, report *models.GrammarianReport) error
	UpdateGrammarian(ctx context.Context, report *models.GrammarianReport) error
	DeleteGrammarian(ctx context.Context, id uint) error

	ListTimerByMeeting(ctx context.Context, meetingID uint) ([]models.TimerReport, error)
	GetTimer(ctx context.Context, id uint) (models.TimerReport, error)
	CreateTimer(ctx context.Context, report *models.TimerReport) error
	UpdateTimer(ctx context.Context, report *models.TimerReport) error
	DeleteTimer(ctx context.Context, id uint) error

	ListGeneralEvaluatorByMeeting(ctx context.Context, meetingID uint) ([]models.GeneralEvaluatorReport, error)
	GetGeneralEvaluator(ctx context.Context, id uint) (models.GeneralEvaluatorReport, error)
	CreateGeneralEvaluator(ctx context.Context, report *models.GeneralEvaluatorReport) error
	UpdateGeneralEvaluator(ctx context.Context, report *models.GeneralEvaluatorReport) error
	DeleteGeneralEvaluator(ctx context.Context, id uint) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository instantiates a GORM-backed repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) ListAhUmByMeeting(ctx context.Context, meetingID uint) ([]models.AhUmReport, error) {
	var reports []models.AhUmReport
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) GetAhUm(ctx context.Context, id uint) (models.AhUmReport, error) {
	var report models.AhUmReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return models.AhUmReport{}, err
	}
	return report, nil
}

func (r *reportRepository) CreateAhUm(ctx context.Context, report *models.AhUmReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) UpdateAhUm(ctx context.Context, report *models.AhUmReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) DeleteAhUm(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.AhUmReport{}, id)
}

func (r *reportRepository) ListGrammarianByMeeting(ctx context.Context, meetingID uint) ([]models.GrammarianReport, error) {
	var reports []models.GrammarianReport
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) GetGrammarian(ctx context.Context, id uint) (models.GrammarianReport, error) {
	var report models.GrammarianReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return models.GrammarianReport{}, err
	}
	return report, nil
}

func (r *reportRepository) CreateGrammarian(ctx context.Context, report *models.GrammarianReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) UpdateGrammarian(ctx context.Context, report *models.GrammarianReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) DeleteGrammarian(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.GrammarianReport{}, id)
}

func (r *reportRepository) ListTimerByMeeting(ctx context.Context, meetingID uint) ([]models.TimerReport, error) {
	var reports []models.TimerReport
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) GetTimer(ctx context.Context, id uint) (models.TimerReport, error) {
	var report models.TimerReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return models.TimerReport{}, err
	}
	return report, nil
}

func (r *reportRepository) CreateTimer(ctx context.Context, report *models.TimerReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) UpdateTimer(ctx context.Context, report *models.TimerReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) DeleteTimer(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.TimerReport{}, id)
}

func (r *reportRepository) ListGeneralEvaluatorByMeeting(ctx context.Context, meetingID uint) ([]models.GeneralEvaluatorReport, error) {
	var reports []models.GeneralEvaluatorReport
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) GetGeneralEvaluator(ctx context.Context, id uint) (models.GeneralEvaluatorReport, error) {
	var report models.GeneralEvaluatorReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return models.GeneralEvaluatorReport{}, err
	}
	return report, nil
}

func (r *reportRepository) CreateGeneralEvaluator(ctx context.Context, report *models.GeneralEvaluatorReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) UpdateGeneralEvaluator(ctx context.Context, report *models.GeneralEvaluatorReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) DeleteGeneralEvaluator(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.GeneralEvaluatorReport{}, id)
}

func (r *reportRepository) deleteByID(ctx context.Context, model interface{}, id uint) error {
	result := r.db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
