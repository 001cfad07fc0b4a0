package dto

import (
	"encoding/json"
	"time"

	"github.com/clubpulse/clubpulse-api/internal/models"
)

// ReportSaveRequest is the shared payload for creating and replacing
// functionary reports. Type selects the report kind on create; the fields a
// kind does not use are ignored for it.
type ReportSaveRequest struct {
	Type                 string          `json:"type"`
	ReporterName         string          `json:"reporter_name" validate:"required"`
	WordOfDay            string          `json:"word_of_day"`
	WordOfDayDefinition  string          `json:"word_of_day_definition"`
	MeetingStart         string          `json:"meeting_start"`
	MeetingEnd           string          `json:"meeting_end"`
	Entries              json.RawMessage `json:"entries"`
	EvaluatorFeedbacks   json.RawMessage `json:"evaluator_feedbacks"`
	FunctionaryFeedbacks json.RawMessage `json:"functionary_feedbacks"`
	MeetingHighlights    string          `json:"meeting_highlights"`
	MeetingImprovements  string          `json:"meeting_improvements"`
	OverallComments      string          `json:"overall_comments"`
}

// AhUmReportResponse is the serialized filler-word report.
type AhUmReportResponse struct {
	ID           uint               `json:"id"`
	MeetingID    uint               `json:"meeting_id"`
	ReporterName string             `json:"reporter_name"`
	Entries      []models.AhUmEntry `json:"entries"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// GrammarianReportResponse is the serialized grammarian report.
type GrammarianReportResponse struct {
	ID                  uint                  `json:"id"`
	MeetingID           uint                  `json:"meeting_id"`
	ReporterName        string                `json:"reporter_name"`
	WordOfDay           string                `json:"word_of_day"`
	WordOfDayDefinition string                `json:"word_of_day_definition"`
	Entries             []models.GrammarEntry `json:"entries"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// TimerReportResponse is the serialized timer report.
type TimerReportResponse struct {
	ID           uint                `json:"id"`
	MeetingID    uint                `json:"meeting_id"`
	ReporterName string              `json:"reporter_name"`
	MeetingStart string              `json:"meeting_start"`
	MeetingEnd   string              `json:"meeting_end"`
	Entries      []models.TimerEntry `json:"entries"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// GeneralEvaluatorReportResponse is the serialized general evaluator report.
type GeneralEvaluatorReportResponse struct {
	ID                   uint                         `json:"id"`
	MeetingID            uint                         `json:"meeting_id"`
	ReporterName         string                       `json:"reporter_name"`
	EvaluatorFeedbacks   []models.EvaluatorFeedback   `json:"evaluator_feedbacks"`
	FunctionaryFeedbacks []models.FunctionaryFeedback `json:"functionary_feedbacks"`
	MeetingHighlights    string                       `json:"meeting_highlights"`
	MeetingImprovements  string                       `json:"meeting_improvements"`
	OverallComments      string                       `json:"overall_comments"`
	CreatedAt            time.Time                    `json:"created_at"`
	UpdatedAt            time.Time                    `json:"updated_at"`
}

// AllReportsResponse bundles every report kind for one meeting.
type AllReportsResponse struct {
	AhUm             []AhUmReportResponse             `json:"ah_um"`
	Grammarian       []GrammarianReportResponse       `json:"grammarian"`
	Timer            []TimerReportResponse            `json:"timer"`
	GeneralEvaluator []GeneralEvaluatorReportResponse `json:"general_evaluator"`
}

// NewAhUmReportResponse converts a model, dropping invalid stored entries.
func NewAhUmReportResponse(model models.AhUmReport) AhUmReportResponse {
	return AhUmReportResponse{
		ID:           model.ID,
		MeetingID:    model.MeetingID,
		ReporterName: model.ReporterName,
		Entries:      models.DecodeAhUmEntries(model.Entries),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewGrammarianReportResponse converts a model, dropping invalid stored entries.
func NewGrammarianReportResponse(model models.GrammarianReport) GrammarianReportResponse {
	return GrammarianReportResponse{
		ID:                  model.ID,
		MeetingID:           model.MeetingID,
		ReporterName:        model.ReporterName,
		WordOfDay:           model.WordOfDay,
		WordOfDayDefinition: model.WordOfDayDefinition,
		Entries:             models.DecodeGrammarEntries(model.Entries),
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

// NewTimerReportResponse converts a model, dropping invalid stored entries.
func NewTimerReportResponse(model models.TimerReport) TimerReportResponse {
	return TimerReportResponse{
		ID:           model.ID,
		MeetingID:    model.MeetingID,
		ReporterName: model.ReporterName,
		MeetingStart: model.MeetingStart,
		MeetingEnd:   model.MeetingEnd,
		Entries:      models.DecodeTimerEntries(model.Entries),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewGeneralEvaluatorReportResponse converts a model, dropping invalid stored
// feedback entries.
func NewGeneralEvaluatorReportResponse(model models.GeneralEvaluatorReport) GeneralEvaluatorReportResponse {
	return GeneralEvaluatorReportResponse{
		ID:                   model.ID,
		MeetingID:            model.MeetingID,
		ReporterName:         model.ReporterName,
		EvaluatorFeedbacks:   models.DecodeEvaluatorFeedbacks(model.EvaluatorFeedbacks),
		FunctionaryFeedbacks: models.DecodeFunctionaryFeedbacks(model.FunctionaryFeedbacks),
		MeetingHighlights:    model.MeetingHighlights,
		MeetingImprovements:  model.MeetingImprovements,
		OverallComments:      model.OverallComments,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}

// NewAhUmReportResponseSlice converts a slice of models into DTOs.
func NewAhUmReportResponseSlice(reports []models.AhUmReport) []AhUmReportResponse {
	responses := make([]AhUmReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, NewAhUmReportResponse(report))
	}
	return responses
}

// NewGrammarianReportResponseSlice converts a slice of models into DTOs.
func NewGrammarianReportResponseSlice(reports []models.GrammarianReport) []GrammarianReportResponse {
	responses := make([]GrammarianReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, NewGrammarianReportResponse(report))
	}
	return responses
}

// NewTimerReportResponseSlice converts a slice of models into DTOs.
func NewTimerReportResponseSlice(reports []models.TimerReport) []TimerReportResponse {
	responses := make([]TimerReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, NewTimerReportResponse(report))
	}
	return responses
}

// NewGeneralEvaluatorReportResponseSlice converts a slice of models into DTOs.
func NewGeneralEvaluatorReportResponseSlice(reports []models.GeneralEvaluatorReport) []GeneralEvaluatorReportResponse {
	responses := make([]GeneralEvaluatorReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, NewGeneralEvaluatorReportResponse(report))
	}
	return responses
}
