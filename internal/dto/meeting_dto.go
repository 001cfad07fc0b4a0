package dto

import (
	"time"

	"github.com/clubpulse/clubpulse-api/internal/models"
)

const dateLayout = "2006-01-02"

// MeetingCreateRequest describes the payload for creating a meeting.
type MeetingCreateRequest struct {
	Name string `json:"name" validate:"required,min=1"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// MeetingResponse is the serialized meeting returned to API clients.
type MeetingResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// MeetingDetailResponse is a meeting together with its evaluations.
type MeetingDetailResponse struct {
	MeetingResponse
	Evaluations []EvaluationResponse `json:"evaluations"`
}

// ShareLinkResponse carries the evaluation link participants scan or open.
type ShareLinkResponse struct {
	MeetingID uint   `json:"meeting_id"`
	URL       string `json:"url"`
}

// NewMeetingResponse converts a model into a DTO.
func NewMeetingResponse(model models.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:        model.ID,
		Name:      model.Name,
		Date:      model.Date.Format(dateLayout),
		CreatedAt: model.CreatedAt,
	}
}

// NewMeetingResponseSlice converts a slice of models into DTOs.
func NewMeetingResponseSlice(meetings []models.Meeting) []MeetingResponse {
	responses := make([]MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		responses = append(responses, NewMeetingResponse(meeting))
	}
	return responses
}
