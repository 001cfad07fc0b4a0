package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/models"
)

// MeetingRepository defines persistence operations for meetings. Meetings are
// append-only; dependent rows are removed by the schema's delete cascade, so
// no update or delete methods exist here.
type MeetingRepository interface {
	List(ctx context.Context) ([]models.Meeting, error)
	ListRecent(ctx context.Context, since time.Time, limit int) ([]models.Meeting, error)
	GetByID(ctx context.Context, id uint) (models.Meeting, error)
	Create(ctx context.Context, meeting *models.Meeting) error
}

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository instantiates a GORM-backed repository.
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) List(ctx context.Context) ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&meetings).Error; err != nil {
		return nil, err
	}

	return meetings, nil
}

func (r *meetingRepository) ListRecent(ctx context.Context, since time.Time, limit int) ([]models.Meeting, error) {
	var meetings []models.Meeting
	query := r.db.WithContext(ctx).
		Where("date >= ?", since).
		Order("date DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&meetings).Error; err != nil {
		return nil, err
	}

	return meetings, nil
}

func (r *meetingRepository) GetByID(ctx context.Context, id uint) (models.Meeting, error) {
	var meeting models.Meeting
	if err := r.db.WithContext(ctx).First(&meeting, id).Error; err != nil {
		return models.Meeting{}, err
	}

	return meeting, nil
}

func (r *meetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}
