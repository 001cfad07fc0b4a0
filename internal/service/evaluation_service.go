package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/dto"
	"github.com/clubpulse/clubpulse-api/internal/models"
	"github.com/clubpulse/clubpulse-api/internal/observability"
	"github.com/clubpulse/clubpulse-api/internal/repository"
	"github.com/clubpulse/clubpulse-api/pkg/tagset"
)

// EvaluationService accepts and lists tagged speaker evaluations.
type EvaluationService interface {
	Create(ctx context.Context, payload dto.EvaluationCreateRequest) (dto.EvaluationResponse, error)
	ListAll(ctx context.Context) ([]dto.EvaluationResponse, error)
	ListByMeeting(ctx context.Context, meetingID uint) ([]dto.EvaluationResponse, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]dto.EvaluationResponse, error)
}

type evaluationService struct {
	repo      repository.EvaluationRepository
	meetings  repository.MeetingRepository
	cache     *redis.Client
	feed      *LiveFeed
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewEvaluationService builds a new evaluation service.
func NewEvaluationService(repo repository.EvaluationRepository, meetings repository.MeetingRepository, cache *redis.Client, feed *LiveFeed, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		repo:      repo,
		meetings:  meetings,
		cache:     cache,
		feed:      feed,
		validator: validate,
		sanitizer: newTextSanitizer(),
		logger:    logger.With().Str("component", "evaluation_service").Logger(),
	}
}

func (s *evaluationService) Create(ctx context.Context, payload dto.EvaluationCreateRequest) (dto.EvaluationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResponse{}, err
	}

	evaluator := sanitizeText(s.sanitizer, payload.EvaluatorName)
	speaker := sanitizeText(s.sanitizer, payload.SpeakerName)
	if evaluator == "" || speaker == "" {
		return dto.EvaluationResponse{}, validationErrorf("evaluator and speaker names are required")
	}

	buckets := tagset.Buckets{
		Commend:   sanitizeTags(s.sanitizer, payload.CommendTags),
		Recommend: sanitizeTags(s.sanitizer, payload.RecommendTags),
		Challenge: sanitizeTags(s.sanitizer, payload.ChallengeTags),
	}
	if !buckets.Disjoint() {
		return dto.EvaluationResponse{}, validationErrorf("a feedback item can only be selected in one category")
	}
	if buckets.Total() == 0 {
		return dto.EvaluationResponse{}, validationErrorf("please select at least one feedback item")
	}

	if _, err := s.meetings.GetByID(ctx, payload.MeetingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrMeetingNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	evaluation := models.Evaluation{
		MeetingID:     payload.MeetingID,
		EvaluatorName: evaluator,
		SpeakerName:   speaker,
		SpeechType:    payload.SpeechType,
		CommendTags:   models.EncodeTagList(buckets.Commend),
		RecommendTags: models.EncodeTagList(buckets.Recommend),
		ChallengeTags: models.EncodeTagList(buckets.Challenge),
		Comments:      sanitizeText(s.sanitizer, payload.Comments),
	}

	if err := s.repo.Create(ctx, &evaluation); err != nil {
		return dto.EvaluationResponse{}, err
	}

	observability.EvaluationsSubmitted().WithLabelValues(evaluation.SpeechType).Inc()
	s.invalidateSummary(ctx, evaluation.MeetingID)

	response := dto.NewEvaluationResponse(evaluation)

	if s.feed != nil {
		s.feed.Publish(dto.LiveEvent{
			Type:      dto.LiveEventEvaluationCreated,
			MeetingID: evaluation.MeetingID,
			Payload:   response,
		})
	}

	s.logger.Info().
		Uint("meeting_id", evaluation.MeetingID).
		Str("speaker", evaluation.SpeakerName).
		Str("speech_type", evaluation.SpeechType).
		Int("tags", evaluation.TagCount()).
		Msg("evaluation submitted")

	return response, nil
}

func (s *evaluationService) ListAll(ctx context.Context) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withMeetingInfo(evaluations), nil
}

func (s *evaluationService) ListByMeeting(ctx context.Context, meetingID uint) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.repo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return dto.NewEvaluationResponseSlice(evaluations), nil
}

func (s *evaluationService) ListBySpeaker(ctx context.Context, speaker string) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.repo.ListBySpeaker(ctx, speaker)
	if err != nil {
		return nil, err
	}
	return s.withMeetingInfo(evaluations), nil
}

// withMeetingInfo attaches the preloaded meeting name and date to each
// response so cross-meeting listings stay readable.
func (s *evaluationService) withMeetingInfo(evaluations []models.Evaluation) []dto.EvaluationResponse {
	responses := make([]dto.EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		response := dto.NewEvaluationResponse(evaluation)
		if evaluation.Meeting != nil {
			response.MeetingName = evaluation.Meeting.Name
			response.MeetingDate = evaluation.Meeting.Date.Format("2006-01-02")
		}
		responses = append(responses, response)
	}
	return responses
}

func (s *evaluationService) invalidateSummary(ctx context.Context, meetingID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey(meetingID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("meeting_id", meetingID).Msg("failed to invalidate summary cache")
	}
}
