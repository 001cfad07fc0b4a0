package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clubpulse/clubpulse-api/internal/config"
	"github.com/clubpulse/clubpulse-api/internal/handler"
	"github.com/clubpulse/clubpulse-api/internal/middleware"
	"github.com/clubpulse/clubpulse-api/internal/models"
	"github.com/clubpulse/clubpulse-api/internal/repository"
	"github.com/clubpulse/clubpulse-api/internal/router"
	"github.com/clubpulse/clubpulse-api/internal/service"
)

const (
	testJWTSecret     = "test-signing-key"
	testAdminPassword = "open-sesame"
)

var testDBSequence atomic.Int64

type testEnv struct {
	app  *fiber.App
	db   *gorm.DB
	feed *service.LiveFeed
}

func setupApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", testDBSequence.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Meeting{},
		&models.Evaluation{},
		&models.AhUmReport{},
		&models.GrammarianReport{},
		&models.TimerReport{},
		&models.GeneralEvaluatorReport{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	meetingRepo := repository.NewMeetingRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	feed := service.NewLiveFeed(logger)

	meetingService := service.NewMeetingService(meetingRepo, evaluationRepo, nil, time.Minute, validate, logger, "https://feedback.example.org", 3)
	evaluationService := service.NewEvaluationService(evaluationRepo, meetingRepo, nil, feed, validate, logger)
	reportService := service.NewReportService(reportRepo, meetingRepo, feed, validate, logger)
	adminService := service.NewAdminService(meetingRepo, evaluationRepo, nil, time.Minute, logger)
	authService := service.NewAuthService(testAdminPassword, testJWTSecret, validate, logger)

	app := fiber.New()

	router.Register(app, config.Config{AppName: "ClubPulse Test"}, router.Dependencies{
		MeetingHandler:    handler.NewMeetingHandler(meetingService, logger),
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		ReportHandler:     handler.NewReportHandler(reportService, logger),
		LiveHandler:       handler.NewLiveHandler(feed, meetingService, logger),
		AdminHandler:      handler.NewAdminHandler(adminService, logger),
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		JWTMiddleware:     middleware.JWTProtected(testJWTSecret),
	})

	return &testEnv{app: app, db: db, feed: feed}
}

func (env *testEnv) request(t *testing.T, method, target string, payload interface{}, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, data
}

func (env *testEnv) createMeeting(t *testing.T, name, date string) uint {
	t.Helper()

	resp, body := env.request(t, "POST", "/api/v1/meetings", map[string]string{
		"name": name,
		"date": date,
	}, env.adminHeaders(t))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotZero(t, created.ID)
	return created.ID
}

func (env *testEnv) adminHeaders(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + env.adminToken(t)}
}

func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	resp, body := env.request(t, "POST", "/api/admin/auth/login", map[string]string{
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var token struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &token))
	require.NotEmpty(t, token.Token)
	return token.Token
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Error
}
