package handler_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func submitEvaluation(t *testing.T, env *testEnv, meetingID uint, evaluator, speaker string) {
	t.Helper()

	resp, _ := env.request(t, "POST", "/api/v1/evaluations", map[string]interface{}{
		"meeting_id":     meetingID,
		"evaluator_name": evaluator,
		"speaker_name":   speaker,
		"speech_type":    "prepared",
		"commend_tags":   []string{"Strong opening"},
		"recommend_tags": []string{"Vocal variety"},
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestEvaluationSubmit(t *testing.T) {
	env := setupApp(t)
	meetingID := env.createMeeting(t, "Weekly", "2026-03-14")

	resp, body := env.request(t, "POST", "/api/v1/evaluations", map[string]interface{}{
		"meeting_id":     meetingID,
		"evaluator_name": "Ana",
		"speaker_name":   "Ben",
		"speech_type":    "table_topics",
		"commend_tags":   []string{"Quick thinking"},
		"comments":       "Held the room.",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ID          uint     `json:"id"`
		SpeechType  string   `json:"speech_type"`
		CommendTags []string `json:"commend_tags"`
		Comments    string   `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "table_topics", created.SpeechType)
	require.Equal(t, []string{"Quick thinking"}, created.CommendTags)
	require.Equal(t, "Held the room.", created.Comments)
}

func TestEvaluationSubmitRejectsOverlap(t *testing.T) {
	env := setupApp(t)
	meetingID := env.createMeeting(t, "Weekly", "2026-03-14")

	resp, body := env.request(t, "POST", "/api/v1/evaluations", map[string]interface{}{
		"meeting_id":     meetingID,
		"evaluator_name": "Ana",
		"speaker_name":   "Ben",
		"speech_type":    "prepared",
		"commend_tags":   []string{"Strong opening"},
		"challenge_tags": []string{"Strong opening"},
	}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, errorMessage(t, body), "one category")
}

func TestEvaluationSubmitRejectsEmptySelection(t *testing.T) {
	env := setupApp(t)
	meetingID := env.createMeeting(t, "Weekly", "2026-03-14")

	resp, body := env.request(t, "POST", "/api/v1/evaluations", map[string]interface{}{
		"meeting_id":     meetingID,
		"evaluator_name": "Ana",
		"speaker_name":   "Ben",
		"speech_type":    "prepared",
	}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, errorMessage(t, body), "at least one feedback item")
}

func TestEvaluationSubmitUnknownMeeting(t *testing.T) {
	env := setupApp(t)

	resp, body := env.request(t, "POST", "/api/v1/evaluations", map[string]interface{}{
		"meeting_id":     77,
		"evaluator_name": "Ana",
		"speaker_name":   "Ben",
		"speech_type":    "prepared",
		"commend_tags":   []string{"Strong opening"},
	}, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, "meeting not found", errorMessage(t, body))
}

func TestEvaluationSubmitRejectsUnknownSpeechType(t *testing.T) {
	env := setupApp(t)
	meetingID := env.createMeeting(t, "Weekly", "2026-03-14")

	resp, _ := env.request(t, "POST", "/api/v1/evaluations", map[string]interface{}{
		"meeting_id":     meetingID,
		"evaluator_name": "Ana",
		"speaker_name":   "Ben",
		"speech_type":    "keynote",
		"commend_tags":   []string{"Strong opening"},
	}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEvaluationListFilters(t *testing.T) {
	env := setupApp(t)
	first := env.createMeeting(t, "March", "2026-03-14")
	second := env.createMeeting(t, "April", "2026-04-02")

	submitEvaluation(t, env, first, "Ana", "Ben")
	submitEvaluation(t, env, first, "Carl", "Dana")
	submitEvaluation(t, env, second, "Eve", "Ben")

	resp, body := env.request(t, "GET", fmt.Sprintf("/api/v1/evaluations?meeting_id=%d", first), nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var byMeeting []json.RawMessage
	require.NoError(t, json.Unmarshal(body, &byMeeting))
	require.Len(t, byMeeting, 2)

	resp, body = env.request(t, "GET", "/api/v1/evaluations?speaker=Ben", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var bySpeaker []struct {
		MeetingName string `json:"meeting_name"`
	}
	require.NoError(t, json.Unmarshal(body, &bySpeaker))
	require.Len(t, bySpeaker, 2)
	require.NotEmpty(t, bySpeaker[0].MeetingName)

	resp, body = env.request(t, "GET", "/api/v1/evaluations", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all []json.RawMessage
	require.NoError(t, json.Unmarshal(body, &all))
	require.Len(t, all, 3)
}

func TestEvaluationRateLimitSparesListings(t *testing.T) {
	env := setupApp(t)

	for i := 0; i < 30; i++ {
		resp, _ := env.request(t, "POST", "/api/v1/evaluations", map[string]interface{}{}, nil)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}

	resp, _ := env.request(t, "POST", "/api/v1/evaluations", map[string]interface{}{}, nil)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	for i := 0; i < 35; i++ {
		resp, _ := env.request(t, "GET", "/api/v1/evaluations", nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}
