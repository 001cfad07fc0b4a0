package handler_test

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	env := setupApp(t)

	resp, body := env.request(t, "POST", "/api/admin/auth/login", map[string]string{
		"password": "guess",
	}, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "invalid credentials", errorMessage(t, body))
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	env := setupApp(t)

	resp, _ := env.request(t, "GET", "/api/admin/meetings/1/summary", nil, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.request(t, "GET", "/api/admin/meetings/1/summary", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminSummary(t *testing.T) {
	env := setupApp(t)
	meetingID := env.createMeeting(t, "Weekly", "2026-03-14")
	submitEvaluation(t, env, meetingID, "Ana", "Ben")
	submitEvaluation(t, env, meetingID, "Carl", "Ben")

	token := env.adminToken(t)

	resp, body := env.request(t, "GET", "/api/admin/meetings/1/summary", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary struct {
		TotalEvaluations int `json:"total_evaluations"`
		Speakers         []struct {
			SpeakerName     string `json:"speaker_name"`
			EvaluationCount int    `json:"evaluation_count"`
			TotalTags       int    `json:"total_tags"`
		} `json:"speakers"`
	}
	require.NoError(t, json.Unmarshal(body, &summary))
	require.Equal(t, 2, summary.TotalEvaluations)
	require.Len(t, summary.Speakers, 1)
	require.Equal(t, "Ben", summary.Speakers[0].SpeakerName)
	require.Equal(t, 2, summary.Speakers[0].EvaluationCount)
	require.Equal(t, 4, summary.Speakers[0].TotalTags)
}

func TestAdminExportCSV(t *testing.T) {
	env := setupApp(t)
	meetingID := env.createMeeting(t, "Weekly", "2026-03-14")
	submitEvaluation(t, env, meetingID, "Ana", "Ben")

	token := env.adminToken(t)

	resp, body := env.request(t, "GET", "/api/admin/meetings/1/export.csv", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	require.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	require.Contains(t, string(body), "Speaker,Evaluator,Type,Commendations,Recommendations,Challenges,Comments")
	require.Contains(t, string(body), "Ben,Ana,Prepared Speech")
}

func TestAdminExportMail(t *testing.T) {
	env := setupApp(t)
	meetingID := env.createMeeting(t, "Weekly", "2026-03-14")
	submitEvaluation(t, env, meetingID, "Ana", "Ben")

	token := env.adminToken(t)

	resp, body := env.request(t, "GET", "/api/admin/meetings/1/export/mail", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var export struct {
		Subject   string `json:"subject"`
		Body      string `json:"body"`
		MailtoURL string `json:"mailto_url"`
	}
	require.NoError(t, json.Unmarshal(body, &export))
	require.Equal(t, "Feedback Summary: Weekly (2026-03-14)", export.Subject)
	require.Contains(t, export.Body, "--- Ben ---")
	require.Contains(t, export.MailtoURL, "mailto:?subject=")
}

func TestAdminSummaryUnknownMeeting(t *testing.T) {
	env := setupApp(t)
	token := env.adminToken(t)

	resp, body := env.request(t, "GET", "/api/admin/meetings/404/summary", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, "meeting not found", errorMessage(t, body))
}
