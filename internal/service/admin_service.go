package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/dto"
	"github.com/clubpulse/clubpulse-api/internal/models"
	"github.com/clubpulse/clubpulse-api/internal/observability"
	"github.com/clubpulse/clubpulse-api/internal/repository"
)

var csvHeader = []string{"Speaker", "Evaluator", "Type", "Commendations", "Recommendations", "Challenges", "Comments"}

// AdminService provides the aggregation and export views behind the admin
// endpoints.
type AdminService interface {
	Summary(ctx context.Context, meetingID uint) (dto.MeetingSummaryResponse, error)
	ExportCSV(ctx context.Context, meetingID uint) (fileName string, data []byte, err error)
	ExportMail(ctx context.Context, meetingID uint) (dto.MailExportResponse, error)
}

type adminService struct {
	meetings    repository.MeetingRepository
	evaluations repository.EvaluationRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewAdminService builds a new admin service.
func NewAdminService(meetings repository.MeetingRepository, evaluations repository.EvaluationRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) AdminService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &adminService{
		meetings:    meetings,
		evaluations: evaluations,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "admin_service").Logger(),
	}
}

func summaryCacheKey(meetingID uint) string {
	return fmt.Sprintf("summary:meeting:%d:v1", meetingID)
}

// Summary aggregates every evaluation of a meeting per speaker. Speakers are
// reported in order of first appearance. Results are cached in Redis and
// invalidated when a new evaluation arrives.
func (s *adminService) Summary(ctx context.Context, meetingID uint) (dto.MeetingSummaryResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, summaryCacheKey(meetingID)).Result(); err == nil && cached != "" {
			var response dto.MeetingSummaryResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				observability.SummaryCache().WithLabelValues("hit").Inc()
				response.CacheHit = true
				return response, nil
			}
		}
		observability.SummaryCache().WithLabelValues("miss").Inc()
	}

	meeting, evaluations, err := s.load(ctx, meetingID)
	if err != nil {
		return dto.MeetingSummaryResponse{}, err
	}

	response := dto.MeetingSummaryResponse{
		Meeting:          dto.NewMeetingResponse(meeting),
		TotalEvaluations: len(evaluations),
		Speakers:         summarizeSpeakers(evaluations),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, summaryCacheKey(meetingID), payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Uint("meeting_id", meetingID).Msg("failed to cache meeting summary")
			}
		}
	}

	return response, nil
}

// ExportCSV renders every evaluation of a meeting as a CSV document, one row
// per evaluation.
func (s *adminService) ExportCSV(ctx context.Context, meetingID uint) (string, []byte, error) {
	meeting, evaluations, err := s.load(ctx, meetingID)
	if err != nil {
		return "", nil, err
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(csvHeader); err != nil {
		return "", nil, err
	}
	for _, evaluation := range evaluations {
		record := []string{
			evaluation.SpeakerName,
			evaluation.EvaluatorName,
			speechTypeLabel(evaluation.SpeechType),
			strings.Join(evaluation.Commend(), ", "),
			strings.Join(evaluation.Recommend(), ", "),
			strings.Join(evaluation.Challenge(), ", "),
			evaluation.Comments,
		}
		if err := writer.Write(record); err != nil {
			return "", nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", nil, err
	}

	fileName := fmt.Sprintf("meeting-%d-evaluations-%s.csv", meeting.ID, meeting.Date.Format("2006-01-02"))
	return fileName, buffer.Bytes(), nil
}

// ExportMail renders the meeting's feedback as a plain text report grouped by
// speaker, with a mailto URL ready for the admin's mail client.
func (s *adminService) ExportMail(ctx context.Context, meetingID uint) (dto.MailExportResponse, error) {
	meeting, evaluations, err := s.load(ctx, meetingID)
	if err != nil {
		return dto.MailExportResponse{}, err
	}

	subject := fmt.Sprintf("Feedback Summary: %s (%s)", meeting.Name, meeting.Date.Format("2006-01-02"))

	var body strings.Builder
	body.WriteString(fmt.Sprintf("Meeting: %s\n", meeting.Name))
	body.WriteString(fmt.Sprintf("Date: %s\n", meeting.Date.Format("2006-01-02")))
	body.WriteString(fmt.Sprintf("Evaluations submitted: %d\n", len(evaluations)))

	for _, speaker := range speakerOrder(evaluations) {
		body.WriteString(fmt.Sprintf("\n--- %s ---\n", speaker))
		for _, evaluation := range evaluations {
			if evaluation.SpeakerName != speaker {
				continue
			}
			body.WriteString(fmt.Sprintf("\nFrom %s (%s):\n", evaluation.EvaluatorName, speechTypeLabel(evaluation.SpeechType)))
			writeTagSection(&body, "Commendations", evaluation.Commend())
			writeTagSection(&body, "Recommendations", evaluation.Recommend())
			writeTagSection(&body, "Challenges", evaluation.Challenge())
			if evaluation.Comments != "" {
				body.WriteString(fmt.Sprintf("  Comments: %s\n", evaluation.Comments))
			}
		}
	}

	return dto.MailExportResponse{
		Subject:   subject,
		Body:      body.String(),
		MailtoURL: mailtoURL(subject, body.String()),
	}, nil
}

func (s *adminService) load(ctx context.Context, meetingID uint) (models.Meeting, []models.Evaluation, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Meeting{}, nil, ErrMeetingNotFound
		}
		return models.Meeting{}, nil, err
	}

	evaluations, err := s.evaluations.ListByMeeting(ctx, meetingID)
	if err != nil {
		return models.Meeting{}, nil, err
	}

	return meeting, evaluations, nil
}

// summarizeSpeakers rolls evaluations up per speaker in order of first
// appearance.
func summarizeSpeakers(evaluations []models.Evaluation) []dto.SpeakerSummary {
	index := make(map[string]int)
	summaries := make([]dto.SpeakerSummary, 0)

	for _, evaluation := range evaluations {
		position, seen := index[evaluation.SpeakerName]
		if !seen {
			position = len(summaries)
			index[evaluation.SpeakerName] = position
			summaries = append(summaries, dto.SpeakerSummary{
				SpeakerName: evaluation.SpeakerName,
				SpeechType:  evaluation.SpeechType,
			})
		}

		summary := &summaries[position]
		summary.EvaluationCount++
		summary.CommendCount += len(evaluation.Commend())
		summary.RecommendCount += len(evaluation.Recommend())
		summary.ChallengeCount += len(evaluation.Challenge())
		summary.TotalTags = summary.CommendCount + summary.RecommendCount + summary.ChallengeCount
	}

	return summaries
}

func speakerOrder(evaluations []models.Evaluation) []string {
	seen := make(map[string]struct{})
	order := make([]string, 0)
	for _, evaluation := range evaluations {
		if _, ok := seen[evaluation.SpeakerName]; ok {
			continue
		}
		seen[evaluation.SpeakerName] = struct{}{}
		order = append(order, evaluation.SpeakerName)
	}
	return order
}

func writeTagSection(body *strings.Builder, label string, tags []string) {
	if len(tags) == 0 {
		return
	}
	body.WriteString("  " + label + ":\n")
	for _, tag := range tags {
		body.WriteString("    - " + tag + "\n")
	}
}

func speechTypeLabel(speechType string) string {
	if label, ok := models.SpeechTypeLabels[speechType]; ok {
		return label
	}
	return speechType
}

// mailtoURL percent-encodes the subject and body for a mailto link. Spaces
// must be %20 rather than the + produced by query escaping, since mail
// clients do not decode + inside mailto URLs.
func mailtoURL(subject, body string) string {
	escape := func(value string) string {
		return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
	}
	return "mailto:?subject=" + escape(subject) + "&body=" + escape(body)
}
