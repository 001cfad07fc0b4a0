package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/dto"
	"github.com/clubpulse/clubpulse-api/internal/models"
	"github.com/clubpulse/clubpulse-api/internal/repository"
)

type reportRepoStub struct {
	nextID           uint
	ahUm             map[uint]models.AhUmReport
	grammarian       map[uint]models.GrammarianReport
	timer            map[uint]models.TimerReport
	generalEvaluator map[uint]models.GeneralEvaluatorReport
}

func newReportRepoStub() *reportRepoStub {
	return &reportRepoStub{
		ahUm:             make(map[uint]models.AhUmReport),
		grammarian:       make(map[uint]models.GrammarianReport),
		timer:            make(map[uint]models.TimerReport),
		generalEvaluator: make(map[uint]models.GeneralEvaluatorReport),
	}
}

func (r *reportRepoStub) ListAhUmByMeeting(_ context.Context, meetingID uint) ([]models.AhUmReport, error) {
	result := make([]models.AhUmReport, 0)
	for _, report := range r.ahUm {
		if report.MeetingID == meetingID {
			result = append(result, report)
		}
	}
	return result, nil
}

func (r *reportRepoStub) GetAhUm(_ context.Context, id uint) (models.AhUmReport, error) {
	report, ok := r.ahUm[id]
	if !ok {
		return models.AhUmReport{}, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *reportRepoStub) CreateAhUm(_ context.Context, report *models.AhUmReport) error {
	r.nextID++
	report.ID = r.nextID
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	r.ahUm[report.ID] = *report
	return nil
}

func (r *reportRepoStub) UpdateAhUm(_ context.Context, report *models.AhUmReport) error {
	report.UpdatedAt = time.Now()
	r.ahUm[report.ID] = *report
	return nil
}

func (r *reportRepoStub) DeleteAhUm(_ context.Context, id uint) error {
	if _, ok := r.ahUm[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.ahUm, id)
	return nil
}

func (r *reportRepoStub) ListGrammarianByMeeting(_ context.Context, meetingID uint) ([]models.GrammarianReport, error) {
	result := make([]models.GrammarianReport, 0)
	for _, report := range r.grammarian {
		if report.MeetingID == meetingID {
			result = append(result, report)
		}
	}
	return result, nil
}

func (r *reportRepoStub) GetGrammarian(_ context.Context, id uint) (models.GrammarianReport, error) {
	report, ok := r.grammarian[id]
	if !ok {
		return models.GrammarianReport{}, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *reportRepoStub) CreateGrammarian(_ context.Context, report *models.GrammarianReport) error {
	r.nextID++
	report.ID = r.nextID
	r.grammarian[report.ID] = *report
	return nil
}

func (r *reportRepoStub) UpdateGrammarian(_ context.Context, report *models.GrammarianReport) error {
	r.grammarian[report.ID] = *report
	return nil
}

func (r *reportRepoStub) DeleteGrammarian(_ context.Context, id uint) error {
	if _, ok := r.grammarian[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.grammarian, id)
	return nil
}

func (r *reportRepoStub) ListTimerByMeeting(_ context.Context, meetingID uint) ([]models.TimerReport, error) {
	result := make([]models.TimerReport, 0)
	for _, report := range r.timer {
		if report.MeetingID == meetingID {
			result = append(result, report)
		}
	}
	return result, nil
}

func (r *reportRepoStub) GetTimer(_ context.Context, id uint) (models.TimerReport, error) {
	report, ok := r.timer[id]
	if !ok {
		return models.TimerReport{}, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *reportRepoStub) CreateTimer(_ context.Context, report *models.TimerReport) error {
	r.nextID++
	report.ID = r.nextID
	r.timer[report.ID] = *report
	return nil
}

func (r *reportRepoStub) UpdateTimer(_ context.Context, report *models.TimerReport) error {
	r.timer[report.ID] = *report
	return nil
}

func (r *reportRepoStub) DeleteTimer(_ context.Context, id uint) error {
	if _, ok := r.timer[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.timer, id)
	return nil
}

func (r *reportRepoStub) ListGeneralEvaluatorByMeeting(_ context.Context, meetingID uint) ([]models.GeneralEvaluatorReport, error) {
	result := make([]models.GeneralEvaluatorReport, 0)
	for _, report := range r.generalEvaluator {
		if report.MeetingID == meetingID {
			result = append(result, report)
		}
	}
	return result, nil
}

func (r *reportRepoStub) GetGeneralEvaluator(_ context.Context, id uint) (models.GeneralEvaluatorReport, error) {
	report, ok := r.generalEvaluator[id]
	if !ok {
		return models.GeneralEvaluatorReport{}, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *reportRepoStub) CreateGeneralEvaluator(_ context.Context, report *models.GeneralEvaluatorReport) error {
	r.nextID++
	report.ID = r.nextID
	r.generalEvaluator[report.ID] = *report
	return nil
}

func (r *reportRepoStub) UpdateGeneralEvaluator(_ context.Context, report *models.GeneralEvaluatorReport) error {
	r.generalEvaluator[report.ID] = *report
	return nil
}

func (r *reportRepoStub) DeleteGeneralEvaluator(_ context.Context, id uint) error {
	if _, ok := r.generalEvaluator[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.generalEvaluator, id)
	return nil
}

func reportTestService(repo repository.ReportRepository, feed *LiveFeed) ReportService {
	meetings := newMeetingRepoStub(models.Meeting{ID: 1, Name: "Weekly", Date: time.Now()})
	return NewReportService(repo, meetings, feed, testValidator(), testLogger())
}

func TestReportServiceCreateAhUmRoundTrip(t *testing.T) {
	repo := newReportRepoStub()
	svc := reportTestService(repo, nil)

	entries, err := json.Marshal([]models.AhUmEntry{
		{SpeakerName: "Ben", AhUm: 3, Like: 1, Other: 2},
	})
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindAhUm),
		ReporterName: "Counter Carla",
		Entries:      entries,
	})
	require.NoError(t, err)

	response, ok := created.(dto.AhUmReportResponse)
	require.True(t, ok)
	require.Equal(t, "Counter Carla", response.ReporterName)
	require.Len(t, response.Entries, 1)
	require.Equal(t, 6, response.Entries[0].Total())
}

func TestReportServiceCreateRejectsUnknownKind(t *testing.T) {
	svc := reportTestService(newReportRepoStub(), nil)

	_, err := svc.Create(context.Background(), 1, dto.ReportSaveRequest{
		Type:         "secretary",
		ReporterName: "Dana",
	})
	require.Error(t, err)
	require.True(t, IsValidationError(err))
}

func TestReportServiceCreateRejectsNonListEntries(t *testing.T) {
	svc := reportTestService(newReportRepoStub(), nil)

	_, err := svc.Create(context.Background(), 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindTimer),
		ReporterName: "Tim",
		Entries:      json.RawMessage(`{"speaker_name":"Ben"}`),
	})
	require.Error(t, err)
	require.True(t, IsValidationError(err))
}

func TestReportServiceCreateNormalizesNullEntries(t *testing.T) {
	repo := newReportRepoStub()
	svc := reportTestService(repo, nil)

	created, err := svc.Create(context.Background(), 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindAhUm),
		ReporterName: "Carla",
		Entries:      json.RawMessage(`null`),
	})
	require.NoError(t, err)

	response := created.(dto.AhUmReportResponse)
	require.Empty(t, response.Entries)
	require.Equal(t, "[]", string(repo.ahUm[response.ID].Entries))
}

func TestReportServiceCreateUnknownMeeting(t *testing.T) {
	repo := newReportRepoStub()
	svc := NewReportService(repo, newMeetingRepoStub(), nil, testValidator(), testLogger())

	_, err := svc.Create(context.Background(), 9, dto.ReportSaveRequest{
		Type:         string(models.ReportKindAhUm),
		ReporterName: "Carla",
	})
	require.ErrorIs(t, err, ErrMeetingNotFound)
}

func TestReportServiceUpdateReplacesDocument(t *testing.T) {
	repo := newReportRepoStub()
	svc := reportTestService(repo, nil)

	created, err := svc.Create(context.Background(), 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindGrammarian),
		ReporterName: "Gina",
		WordOfDay:    "ebullient",
	})
	require.NoError(t, err)
	id := created.(dto.GrammarianReportResponse).ID

	updated, err := svc.Update(context.Background(), string(models.ReportKindGrammarian), id, dto.ReportSaveRequest{
		ReporterName:        "Gina",
		WordOfDay:           "mellifluous",
		WordOfDayDefinition: "sweet sounding",
	})
	require.NoError(t, err)

	response := updated.(dto.GrammarianReportResponse)
	require.Equal(t, "mellifluous", response.WordOfDay)
	require.Equal(t, "sweet sounding", response.WordOfDayDefinition)
}

func TestReportServiceUpdateClearsTimerEntries(t *testing.T) {
	repo := newReportRepoStub()
	svc := reportTestService(repo, nil)

	entries, err := json.Marshal([]models.TimerEntry{
		{Role: "Speaker 1", SpeakerName: "Carol", TitleTopic: "X", DurationSeconds: 125, Status: models.TimerStatusYellow},
	})
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindTimer),
		ReporterName: "Tim",
		Entries:      entries,
	})
	require.NoError(t, err)
	id := created.(dto.TimerReportResponse).ID
	require.Len(t, created.(dto.TimerReportResponse).Entries, 1)

	updated, err := svc.Update(context.Background(), string(models.ReportKindTimer), id, dto.ReportSaveRequest{
		ReporterName: "Tim",
		Entries:      json.RawMessage(`[]`),
	})
	require.NoError(t, err)
	require.Empty(t, updated.(dto.TimerReportResponse).Entries)

	all, err := svc.AllByMeeting(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, all.Timer, 1)
	require.Empty(t, all.Timer[0].Entries)
}

func TestReportServiceUpdateNotFound(t *testing.T) {
	svc := reportTestService(newReportRepoStub(), nil)

	_, err := svc.Update(context.Background(), string(models.ReportKindTimer), 42, dto.ReportSaveRequest{
		ReporterName: "Tim",
	})
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestReportServiceDeletePublishesEvent(t *testing.T) {
	repo := newReportRepoStub()
	feed := NewLiveFeed(testLogger())
	events := feed.Subscribe(1)
	svc := reportTestService(repo, feed)

	created, err := svc.Create(context.Background(), 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindTimer),
		ReporterName: "Tim",
		MeetingStart: "19:00",
	})
	require.NoError(t, err)
	id := created.(dto.TimerReportResponse).ID

	<-events // report.saved from the create

	require.NoError(t, svc.Delete(context.Background(), string(models.ReportKindTimer), id))

	event := <-events
	require.Equal(t, dto.LiveEventReportDeleted, event.Type)
	require.Equal(t, uint(1), event.MeetingID)

	require.ErrorIs(t, svc.Delete(context.Background(), string(models.ReportKindTimer), id), ErrReportNotFound)
}

func TestReportServiceAllByMeeting(t *testing.T) {
	repo := newReportRepoStub()
	svc := reportTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindAhUm),
		ReporterName: "Carla",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindGeneralEvaluator),
		ReporterName: "Gene",
		EvaluatorFeedbacks: json.RawMessage(
			`[{"evaluator_name":"Ana","strengths":"clear structure","rating":4}]`),
	})
	require.NoError(t, err)

	all, err := svc.AllByMeeting(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all.AhUm, 1)
	require.Len(t, all.GeneralEvaluator, 1)
	require.Empty(t, all.Timer)
	require.Empty(t, all.Grammarian)
	require.Len(t, all.GeneralEvaluator[0].EvaluatorFeedbacks, 1)
}

type failingTimerRepoStub struct {
	*reportRepoStub
}

func (r *failingTimerRepoStub) ListTimerByMeeting(context.Context, uint) ([]models.TimerReport, error) {
	return nil, errors.New("connection reset")
}

func TestReportServiceAllByMeetingSurfacesFanOutFailure(t *testing.T) {
	repo := &failingTimerRepoStub{reportRepoStub: newReportRepoStub()}
	svc := reportTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindAhUm),
		ReporterName: "Carla",
	})
	require.NoError(t, err)

	_, err = svc.AllByMeeting(ctx, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timer")
	require.False(t, IsValidationError(err))
}

func TestReportServiceDropsInvalidStoredEntries(t *testing.T) {
	repo := newReportRepoStub()
	svc := reportTestService(repo, nil)

	// Two valid entries around a negative count and a wrong-shaped element.
	entries := json.RawMessage(`[
		{"speaker_name":"Ben","ah_um":2,"like":0,"other":1},
		{"speaker_name":"","ah_um":1},
		{"speaker_name":"Cleo","ah_um":-1},
		"garbage",
		{"speaker_name":"Dee","so":4}
	]`)

	created, err := svc.Create(context.Background(), 1, dto.ReportSaveRequest{
		Type:         string(models.ReportKindAhUm),
		ReporterName: "Carla",
		Entries:      entries,
	})
	require.NoError(t, err)

	response := created.(dto.AhUmReportResponse)
	require.Len(t, response.Entries, 2)
	require.Equal(t, "Ben", response.Entries[0].SpeakerName)
	require.Equal(t, "Dee", response.Entries[1].SpeakerName)
}
