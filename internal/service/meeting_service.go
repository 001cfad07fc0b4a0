package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/dto"
	"github.com/clubpulse/clubpulse-api/internal/models"
	"github.com/clubpulse/clubpulse-api/internal/repository"
)

const (
	todayCacheKey = "meetings:today:v1"
	todayLimit    = 5
)

// MeetingService exposes meeting registry use cases.
type MeetingService interface {
	List(ctx context.Context) ([]dto.MeetingResponse, error)
	ListToday(ctx context.Context) ([]dto.MeetingResponse, error)
	Get(ctx context.Context, id uint) (dto.MeetingDetailResponse, error)
	Create(ctx context.Context, payload dto.MeetingCreateRequest) (dto.MeetingResponse, error)
	ShareLink(ctx context.Context, id uint) (dto.ShareLinkResponse, error)
}

type meetingService struct {
	repo        repository.MeetingRepository
	evaluations repository.EvaluationRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	validator   *validator.Validate
	logger      zerolog.Logger
	baseURL     string
	windowDays  int
	now         func() time.Time
}

// NewMeetingService builds a new meeting service. baseURL is the public
// address participant-facing links are built from; windowDays widens the
// "today" query so meetings created a day early still show up.
func NewMeetingService(repo repository.MeetingRepository, evaluations repository.EvaluationRepository, cache *redis.Client, cacheTTL time.Duration, validate *validator.Validate, logger zerolog.Logger, baseURL string, windowDays int) MeetingService {
	if windowDays <= 0 {
		windowDays = 3
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	return &meetingService{
		repo:        repo,
		evaluations: evaluations,
		cache:       cache,
		cacheTTL:    cacheTTL,
		validator:   validate,
		logger:      logger.With().Str("component", "meeting_service").Logger(),
		baseURL:     strings.TrimRight(baseURL, "/"),
		windowDays:  windowDays,
		now:         time.Now,
	}
}

func (s *meetingService) List(ctx context.Context) ([]dto.MeetingResponse, error) {
	meetings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewMeetingResponseSlice(meetings), nil
}

func (s *meetingService) ListToday(ctx context.Context) ([]dto.MeetingResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, todayCacheKey).Result(); err == nil && cached != "" {
			var responses []dto.MeetingResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				return responses, nil
			}
		}
	}

	since := s.now().AddDate(0, 0, -s.windowDays).Truncate(24 * time.Hour)
	meetings, err := s.repo.ListRecent(ctx, since, todayLimit)
	if err != nil {
		return nil, err
	}

	responses := dto.NewMeetingResponseSlice(meetings)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, todayCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache today's meetings")
			}
		}
	}

	return responses, nil
}

func (s *meetingService) Get(ctx context.Context, id uint) (dto.MeetingDetailResponse, error) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MeetingDetailResponse{}, ErrMeetingNotFound
		}
		return dto.MeetingDetailResponse{}, err
	}

	evaluations, err := s.evaluations.ListByMeeting(ctx, id)
	if err != nil {
		return dto.MeetingDetailResponse{}, err
	}

	return dto.MeetingDetailResponse{
		MeetingResponse: dto.NewMeetingResponse(meeting),
		Evaluations:     dto.NewEvaluationResponseSlice(evaluations),
	}, nil
}

func (s *meetingService) Create(ctx context.Context, payload dto.MeetingCreateRequest) (dto.MeetingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MeetingResponse{}, err
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return dto.MeetingResponse{}, validationErrorf("name and date are required")
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return dto.MeetingResponse{}, validationErrorf("invalid meeting date")
	}

	meeting := models.Meeting{
		Name: name,
		Date: date,
	}

	if err := s.repo.Create(ctx, &meeting); err != nil {
		return dto.MeetingResponse{}, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, todayCacheKey).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate today's meetings cache")
		}
	}

	s.logger.Info().Uint("meeting_id", meeting.ID).Str("name", meeting.Name).Msg("meeting created")

	return dto.NewMeetingResponse(meeting), nil
}

func (s *meetingService) ShareLink(ctx context.Context, id uint) (dto.ShareLinkResponse, error) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ShareLinkResponse{}, ErrMeetingNotFound
		}
		return dto.ShareLinkResponse{}, err
	}

	return dto.ShareLinkResponse{
		MeetingID: meeting.ID,
		URL:       fmt.Sprintf("%s/evaluate/%d", s.baseURL, meeting.ID),
	}, nil
}
