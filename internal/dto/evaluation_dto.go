package dto

import (
	"time"

	"github.com/clubpulse/clubpulse-api/internal/models"
)

// EvaluationCreateRequest describes a tagged speaker evaluation submission.
type EvaluationCreateRequest struct {
	MeetingID     uint     `json:"meeting_id" validate:"required"`
	EvaluatorName string   `json:"evaluator_name" validate:"required"`
	SpeakerName   string   `json:"speaker_name" validate:"required"`
	SpeechType    string   `json:"speech_type" validate:"required,oneof=prepared table_topics"`
	CommendTags   []string `json:"commend_tags"`
	RecommendTags []string `json:"recommend_tags"`
	ChallengeTags []string `json:"challenge_tags"`
	Comments      string   `json:"comments"`
}

// EvaluationResponse is the serialized evaluation returned to API clients.
type EvaluationResponse struct {
	ID            uint      `json:"id"`
	MeetingID     uint      `json:"meeting_id"`
	EvaluatorName string    `json:"evaluator_name"`
	SpeakerName   string    `json:"speaker_name"`
	SpeechType    string    `json:"speech_type"`
	CommendTags   []string  `json:"commend_tags"`
	RecommendTags []string  `json:"recommend_tags"`
	ChallengeTags []string  `json:"challenge_tags"`
	Comments      string    `json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
	MeetingName   string    `json:"meeting_name,omitempty"`
	MeetingDate   string    `json:"meeting_date,omitempty"`
}

// NewEvaluationResponse converts a model into a DTO, decoding the stored tag
// documents.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:            model.ID,
		MeetingID:     model.MeetingID,
		EvaluatorName: model.EvaluatorName,
		SpeakerName:   model.SpeakerName,
		SpeechType:    model.SpeechType,
		CommendTags:   model.Commend(),
		RecommendTags: model.Recommend(),
		ChallengeTags: model.Challenge(),
		Comments:      model.Comments,
		CreatedAt:     model.CreatedAt,
	}
}

// NewEvaluationResponseSlice converts a slice of models into DTOs.
func NewEvaluationResponseSlice(evaluations []models.Evaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, NewEvaluationResponse(evaluation))
	}
	return responses
}
