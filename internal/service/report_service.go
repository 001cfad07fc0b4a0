package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/dto"
	"github.com/clubpulse/clubpulse-api/internal/models"
	"github.com/clubpulse/clubpulse-api/internal/observability"
	"github.com/clubpulse/clubpulse-api/internal/repository"
)

// ReportService manages the four functionary report kinds for a meeting.
// Writes follow last-write-wins semantics; readers never see partially
// applied documents because each report row is replaced atomically.
type ReportService interface {
	AllByMeeting(ctx context.Context, meetingID uint) (dto.AllReportsResponse, error)
	Create(ctx context.Context, meetingID uint, payload dto.ReportSaveRequest) (any, error)
	Update(ctx context.Context, kind string, id uint, payload dto.ReportSaveRequest) (any, error)
	Delete(ctx context.Context, kind string, id uint) error
}

type reportService struct {
	repo      repository.ReportRepository
	meetings  repository.MeetingRepository
	feed      *LiveFeed
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewReportService builds a new report service.
func NewReportService(repo repository.ReportRepository, meetings repository.MeetingRepository, feed *LiveFeed, validate *validator.Validate, logger zerolog.Logger) ReportService {
	return &reportService{
		repo:      repo,
		meetings:  meetings,
		feed:      feed,
		validator: validate,
		sanitizer: newTextSanitizer(),
		logger:    logger.With().Str("component", "report_service").Logger(),
	}
}

// AllByMeeting loads every report kind for one meeting concurrently.
func (s *reportService) AllByMeeting(ctx context.Context, meetingID uint) (dto.AllReportsResponse, error) {
	if _, err := s.meetings.GetByID(ctx, meetingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AllReportsResponse{}, ErrMeetingNotFound
		}
		return dto.AllReportsResponse{}, err
	}

	var response dto.AllReportsResponse

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		reports, err := s.repo.ListAhUmByMeeting(groupCtx, meetingID)
		if err != nil {
			return fmt.Errorf("load ah-um reports: %w", err)
		}
		response.AhUm = dto.NewAhUmReportResponseSlice(reports)
		return nil
	})
	group.Go(func() error {
		reports, err := s.repo.ListGrammarianByMeeting(groupCtx, meetingID)
		if err != nil {
			return fmt.Errorf("load grammarian reports: %w", err)
		}
		response.Grammarian = dto.NewGrammarianReportResponseSlice(reports)
		return nil
	})
	group.Go(func() error {
		reports, err := s.repo.ListTimerByMeeting(groupCtx, meetingID)
		if err != nil {
			return fmt.Errorf("load timer reports: %w", err)
		}
		response.Timer = dto.NewTimerReportResponseSlice(reports)
		return nil
	})
	group.Go(func() error {
		reports, err := s.repo.ListGeneralEvaluatorByMeeting(groupCtx, meetingID)
		if err != nil {
			return fmt.Errorf("load general evaluator reports: %w", err)
		}
		response.GeneralEvaluator = dto.NewGeneralEvaluatorReportResponseSlice(reports)
		return nil
	})

	if err := group.Wait(); err != nil {
		return dto.AllReportsResponse{}, err
	}

	return response, nil
}

func (s *reportService) Create(ctx context.Context, meetingID uint, payload dto.ReportSaveRequest) (any, error) {
	if !models.ValidReportKind(payload.Type) {
		return nil, validationErrorf("unknown report type %q", payload.Type)
	}

	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	reporter := sanitizeText(s.sanitizer, payload.ReporterName)
	if reporter == "" {
		return nil, validationErrorf("reporter name is required")
	}

	if _, err := s.meetings.GetByID(ctx, meetingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}

	var (
		response any
		err      error
	)

	switch models.ReportKind(payload.Type) {
	case models.ReportKindAhUm:
		response, err = s.createAhUm(ctx, meetingID, reporter, payload)
	case models.ReportKindGrammarian:
		response, err = s.createGrammarian(ctx, meetingID, reporter, payload)
	case models.ReportKindTimer:
		response, err = s.createTimer(ctx, meetingID, reporter, payload)
	case models.ReportKindGeneralEvaluator:
		response, err = s.createGeneralEvaluator(ctx, meetingID, reporter, payload)
	}
	if err != nil {
		return nil, err
	}

	observability.ReportWrites().WithLabelValues(payload.Type, "create").Inc()
	s.publishSaved(meetingID, payload.Type, response)

	s.logger.Info().
		Uint("meeting_id", meetingID).
		Str("kind", payload.Type).
		Msg("report created")

	return response, nil
}

func (s *reportService) Update(ctx context.Context, kind string, id uint, payload dto.ReportSaveRequest) (any, error) {
	if !models.ValidReportKind(kind) {
		return nil, validationErrorf("unknown report type %q", kind)
	}

	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	reporter := sanitizeText(s.sanitizer, payload.ReporterName)
	if reporter == "" {
		return nil, validationErrorf("reporter name is required")
	}

	var (
		response  any
		meetingID uint
		err       error
	)

	switch models.ReportKind(kind) {
	case models.ReportKindAhUm:
		response, meetingID, err = s.updateAhUm(ctx, id, reporter, payload)
	case models.ReportKindGrammarian:
		response, meetingID, err = s.updateGrammarian(ctx, id, reporter, payload)
	case models.ReportKindTimer:
		response, meetingID, err = s.updateTimer(ctx, id, reporter, payload)
	case models.ReportKindGeneralEvaluator:
		response, meetingID, err = s.updateGeneralEvaluator(ctx, id, reporter, payload)
	}
	if err != nil {
		return nil, err
	}

	observability.ReportWrites().WithLabelValues(kind, "update").Inc()
	s.publishSaved(meetingID, kind, response)

	s.logger.Info().
		Uint("report_id", id).
		Str("kind", kind).
		Msg("report updated")

	return response, nil
}

func (s *reportService) Delete(ctx context.Context, kind string, id uint) error {
	if !models.ValidReportKind(kind) {
		return validationErrorf("unknown report type %q", kind)
	}

	meetingID, err := s.reportMeetingID(ctx, kind, id)
	if err != nil {
		return err
	}

	switch models.ReportKind(kind) {
	case models.ReportKindAhUm:
		err = s.repo.DeleteAhUm(ctx, id)
	case models.ReportKindGrammarian:
		err = s.repo.DeleteGrammarian(ctx, id)
	case models.ReportKindTimer:
		err = s.repo.DeleteTimer(ctx, id)
	case models.ReportKindGeneralEvaluator:
		err = s.repo.DeleteGeneralEvaluator(ctx, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	observability.ReportWrites().WithLabelValues(kind, "delete").Inc()

	if s.feed != nil {
		s.feed.Publish(dto.LiveEvent{
			Type:      dto.LiveEventReportDeleted,
			MeetingID: meetingID,
			Payload:   map[string]any{"kind": kind, "id": id},
		})
	}

	s.logger.Info().
		Uint("report_id", id).
		Str("kind", kind).
		Msg("report deleted")

	return nil
}

func (s *reportService) createAhUm(ctx context.Context, meetingID uint, reporter string, payload dto.ReportSaveRequest) (dto.AhUmReportResponse, error) {
	entries, err := entriesDocument(payload.Entries)
	if err != nil {
		return dto.AhUmReportResponse{}, err
	}

	report := models.AhUmReport{
		MeetingID:    meetingID,
		ReporterName: reporter,
		Entries:      entries,
	}
	if err := s.repo.CreateAhUm(ctx, &report); err != nil {
		return dto.AhUmReportResponse{}, err
	}
	return dto.NewAhUmReportResponse(report), nil
}

func (s *reportService) createGrammarian(ctx context.Context, meetingID uint, reporter string, payload dto.ReportSaveRequest) (dto.GrammarianReportResponse, error) {
	entries, err := entriesDocument(payload.Entries)
	if err != nil {
		return dto.GrammarianReportResponse{}, err
	}

	report := models.GrammarianReport{
		MeetingID:           meetingID,
		ReporterName:        reporter,
		WordOfDay:           sanitizeText(s.sanitizer, payload.WordOfDay),
		WordOfDayDefinition: sanitizeText(s.sanitizer, payload.WordOfDayDefinition),
		Entries:             entries,
	}
	if err := s.repo.CreateGrammarian(ctx, &report); err != nil {
		return dto.GrammarianReportResponse{}, err
	}
	return dto.NewGrammarianReportResponse(report), nil
}

func (s *reportService) createTimer(ctx context.Context, meetingID uint, reporter string, payload dto.ReportSaveRequest) (dto.TimerReportResponse, error) {
	entries, err := entriesDocument(payload.Entries)
	if err != nil {
		return dto.TimerReportResponse{}, err
	}

	report := models.TimerReport{
		MeetingID:    meetingID,
		ReporterName: reporter,
		MeetingStart: sanitizeText(s.sanitizer, payload.MeetingStart),
		MeetingEnd:   sanitizeText(s.sanitizer, payload.MeetingEnd),
		Entries:      entries,
	}
	if err := s.repo.CreateTimer(ctx, &report); err != nil {
		return dto.TimerReportResponse{}, err
	}
	return dto.NewTimerReportResponse(report), nil
}

func (s *reportService) createGeneralEvaluator(ctx context.Context, meetingID uint, reporter string, payload dto.ReportSaveRequest) (dto.GeneralEvaluatorReportResponse, error) {
	evaluatorFeedbacks, err := entriesDocument(payload.EvaluatorFeedbacks)
	if err != nil {
		return dto.GeneralEvaluatorReportResponse{}, err
	}
	functionaryFeedbacks, err := entriesDocument(payload.FunctionaryFeedbacks)
	if err != nil {
		return dto.GeneralEvaluatorReportResponse{}, err
	}

	report := models.GeneralEvaluatorReport{
		MeetingID:            meetingID,
		ReporterName:         reporter,
		EvaluatorFeedbacks:   evaluatorFeedbacks,
		FunctionaryFeedbacks: functionaryFeedbacks,
		MeetingHighlights:    sanitizeText(s.sanitizer, payload.MeetingHighlights),
		MeetingImprovements:  sanitizeText(s.sanitizer, payload.MeetingImprovements),
		OverallComments:      sanitizeText(s.sanitizer, payload.OverallComments),
	}
	if err := s.repo.CreateGeneralEvaluator(ctx, &report); err != nil {
		return dto.GeneralEvaluatorReportResponse{}, err
	}
	return dto.NewGeneralEvaluatorReportResponse(report), nil
}

func (s *reportService) updateAhUm(ctx context.Context, id uint, reporter string, payload dto.ReportSaveRequest) (dto.AhUmReportResponse, uint, error) {
	report, err := s.repo.GetAhUm(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AhUmReportResponse{}, 0, ErrReportNotFound
		}
		return dto.AhUmReportResponse{}, 0, err
	}

	entries, err := entriesDocument(payload.Entries)
	if err != nil {
		return dto.AhUmReportResponse{}, 0, err
	}

	report.ReporterName = reporter
	report.Entries = entries

	if err := s.repo.UpdateAhUm(ctx, &report); err != nil {
		return dto.AhUmReportResponse{}, 0, err
	}
	return dto.NewAhUmReportResponse(report), report.MeetingID, nil
}

func (s *reportService) updateGrammarian(ctx context.Context, id uint, reporter string, payload dto.ReportSaveRequest) (dto.GrammarianReportResponse, uint, error) {
	report, err := s.repo.GetGrammarian(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GrammarianReportResponse{}, 0, ErrReportNotFound
		}
		return dto.GrammarianReportResponse{}, 0, err
	}

	entries, err := entriesDocument(payload.Entries)
	if err != nil {
		return dto.GrammarianReportResponse{}, 0, err
	}

	report.ReporterName = reporter
	report.WordOfDay = sanitizeText(s.sanitizer, payload.WordOfDay)
	report.WordOfDayDefinition = sanitizeText(s.sanitizer, payload.WordOfDayDefinition)
	report.Entries = entries

	if err := s.repo.UpdateGrammarian(ctx, &report); err != nil {
		return dto.GrammarianReportResponse{}, 0, err
	}
	return dto.NewGrammarianReportResponse(report), report.MeetingID, nil
}

func (s *reportService) updateTimer(ctx context.Context, id uint, reporter string, payload dto.ReportSaveRequest) (dto.TimerReportResponse, uint, error) {
	report, err := s.repo.GetTimer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TimerReportResponse{}, 0, ErrReportNotFound
		}
		return dto.TimerReportResponse{}, 0, err
	}

	entries, err := entriesDocument(payload.Entries)
	if err != nil {
		return dto.TimerReportResponse{}, 0, err
	}

	report.ReporterName = reporter
	report.MeetingStart = sanitizeText(s.sanitizer, payload.MeetingStart)
	report.MeetingEnd = sanitizeText(s.sanitizer, payload.MeetingEnd)
	report.Entries = entries

	if err := s.repo.UpdateTimer(ctx, &report); err != nil {
		return dto.TimerReportResponse{}, 0, err
	}
	return dto.NewTimerReportResponse(report), report.MeetingID, nil
}

func (s *reportService) updateGeneralEvaluator(ctx context.Context, id uint, reporter string, payload dto.ReportSaveRequest) (dto.GeneralEvaluatorReportResponse, uint, error) {
	report, err := s.repo.GetGeneralEvaluator(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GeneralEvaluatorReportResponse{}, 0, ErrReportNotFound
		}
		return dto.GeneralEvaluatorReportResponse{}, 0, err
	}

	evaluatorFeedbacks, err := entriesDocument(payload.EvaluatorFeedbacks)
	if err != nil {
		return dto.GeneralEvaluatorReportResponse{}, 0, err
	}
	functionaryFeedbacks, err := entriesDocument(payload.FunctionaryFeedbacks)
	if err != nil {
		return dto.GeneralEvaluatorReportResponse{}, 0, err
	}

	report.ReporterName = reporter
	report.EvaluatorFeedbacks = evaluatorFeedbacks
	report.FunctionaryFeedbacks = functionaryFeedbacks
	report.MeetingHighlights = sanitizeText(s.sanitizer, payload.MeetingHighlights)
	report.MeetingImprovements = sanitizeText(s.sanitizer, payload.MeetingImprovements)
	report.OverallComments = sanitizeText(s.sanitizer, payload.OverallComments)

	if err := s.repo.UpdateGeneralEvaluator(ctx, &report); err != nil {
		return dto.GeneralEvaluatorReportResponse{}, 0, err
	}
	return dto.NewGeneralEvaluatorReportResponse(report), report.MeetingID, nil
}

// reportMeetingID resolves which meeting a report belongs to so delete events
// reach the right live feed.
func (s *reportService) reportMeetingID(ctx context.Context, kind string, id uint) (uint, error) {
	var (
		meetingID uint
		err       error
	)

	switch models.ReportKind(kind) {
	case models.ReportKindAhUm:
		var report models.AhUmReport
		report, err = s.repo.GetAhUm(ctx, id)
		meetingID = report.MeetingID
	case models.ReportKindGrammarian:
		var report models.GrammarianReport
		report, err = s.repo.GetGrammarian(ctx, id)
		meetingID = report.MeetingID
	case models.ReportKindTimer:
		var report models.TimerReport
		report, err = s.repo.GetTimer(ctx, id)
		meetingID = report.MeetingID
	case models.ReportKindGeneralEvaluator:
		var report models.GeneralEvaluatorReport
		report, err = s.repo.GetGeneralEvaluator(ctx, id)
		meetingID = report.MeetingID
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrReportNotFound
		}
		return 0, err
	}
	return meetingID, nil
}

func (s *reportService) publishSaved(meetingID uint, kind string, payload any) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(dto.LiveEvent{
		Type:      dto.LiveEventReportSaved,
		MeetingID: meetingID,
		Payload:   map[string]any{"kind": kind, "report": payload},
	})
}

// entriesDocument validates that a submitted entries field is a JSON array
// and normalises absent or null fields to an empty one. Entry contents are
// stored as submitted; readers apply the per-kind validity checks when
// decoding.
func entriesDocument(raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 {
		return models.EncodeEntries(nil), nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, validationErrorf("entries must be a list")
	}
	return models.EncodeEntries(elements), nil
}
