package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
	"github.com/SAP-F-2025/skill-test-service/internal/repositories"
	"github.com/SAP-F-2025/skill-test-service/internal/services"
	"github.com/SAP-F-2025/skill-test-service/internal/session"
	"github.com/SAP-F-2025/skill-test-service/internal/utils"
	"github.com/SAP-F-2025/skill-test-service/internal/validator"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) Create(ctx context.Context, params models.SessionParameters) (*services.SessionResponse, error) {
	args := m.Called(ctx, params)
	resp, _ := args.Get(0).(*services.SessionResponse)
	return resp, args.Error(1)
}

func (m *mockSessionService) Get(ctx context.Context, id string) (*services.SessionResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*services.SessionResponse)
	return resp, args.Error(1)
}

func (m *mockSessionService) SelectAnswer(ctx context.Context, id string, position int, option string) (*services.SessionResponse, error) {
	args := m.Called(ctx, id, position, option)
	resp, _ := args.Get(0).(*services.SessionResponse)
	return resp, args.Error(1)
}

func (m *mockSessionService) Submit(ctx context.Context, id string, opts services.SubmitOptions) (*services.SubmitResponse, error) {
	args := m.Called(ctx, id, opts)
	resp, _ := args.Get(0).(*services.SubmitResponse)
	return resp, args.Error(1)
}

func (m *mockSessionService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionService) PruneIdle(ctx context.Context, maxAge time.Duration) int {
	return m.Called(ctx, maxAge).Int(0)
}

func (m *mockSessionService) GetSubmissionLog(ctx context.Context, sessionID string) (*models.SubmissionLog, error) {
	args := m.Called(ctx, sessionID)
	log, _ := args.Get(0).(*models.SubmissionLog)
	return log, args.Error(1)
}

func (m *mockSessionService) ListEmployeeSubmissions(ctx context.Context, employeeID string, filters repositories.SubmissionFilters) ([]*models.SubmissionLog, int64, error) {
	args := m.Called(ctx, employeeID, filters)
	logs, _ := args.Get(0).([]*models.SubmissionLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

func setupRouter(t *testing.T) (*gin.Engine, *mockSessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &mockSessionService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := gin.New()
	router.Use(utils.ContextLogger(logger))
	NewHandlerManager(svc, validator.New(), logger).SetupRoutes(router)
	return router, svc
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func readySession(id string) *services.SessionResponse {
	return &services.SessionResponse{
		ID: id,
		View: session.View{
			Phase: models.PhaseReady,
			Skill: "Python",
			Level: models.NewLevel("3"),
			Questions: []models.Question{
				{ID: "q1", Text: "2+2?", Options: []string{"3", "4"}},
			},
			Answers: models.AnswerState{},
		},
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "skill-test-service")
}

func TestCreateSession(t *testing.T) {
	router, svc := setupRouter(t)

	svc.On("Create", mock.Anything, mock.MatchedBy(func(p models.SessionParameters) bool {
		return p.Skill == "Python" && p.Level.String() == "3" && p.Level.IsNumeric() &&
			p.EmployeeInfo["name"] == "Ann" && p.EmployeeID == "E-7"
	})).Return(readySession("s1"), nil)

	rec := doRequest(router, http.MethodPost, "/api/v1/sessions", map[string]any{
		"skill":        "Python",
		"level":        3,
		"employeeInfo": map[string]any{"name": "Ann"},
		"employeeId":   "E-7",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp services.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.ID)
	assert.Equal(t, models.PhaseReady, resp.Phase)
	assert.Len(t, resp.Questions, 1)
}

func TestCreateSession_RejectsControlCharacters(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/v1/sessions", map[string]any{
		"skill": "Py\nthon",
		"level": "3",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", decodeError(t, rec).Message)
}

func TestCreateSession_MalformedBody(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	router, svc := setupRouter(t)
	svc.On("Get", mock.Anything, "missing").Return(nil, services.ErrSessionNotFound)

	rec := doRequest(router, http.MethodGet, "/api/v1/sessions/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelectAnswer(t *testing.T) {
	router, svc := setupRouter(t)

	updated := readySession("s1")
	updated.Answers = models.AnswerState{0: "4"}
	svc.On("SelectAnswer", mock.Anything, "s1", 0, "4").Return(updated, nil)

	rec := doRequest(router, http.MethodPut, "/api/v1/sessions/s1/answers/0", map[string]any{"option": "4"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp services.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "4", resp.Answers[0])
}

func TestSelectAnswer_BadInput(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodPut, "/api/v1/sessions/s1/answers/first", map[string]any{"option": "4"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodPut, "/api/v1/sessions/s1/answers/0", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", decodeError(t, rec).Message)
}

func TestSelectAnswer_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid position", services.ValidationErrors{*services.NewValidationError("position", "out of range", 9)}, http.StatusBadRequest},
		{"not accepting answers", session.ErrNotAcceptingAnswers, http.StatusConflict},
		{"closed", session.ErrClosed, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupRouter(t)
			svc.On("SelectAnswer", mock.Anything, "s1", 9, "x").Return(nil, tt.err)

			rec := doRequest(router, http.MethodPut, "/api/v1/sessions/s1/answers/9", map[string]any{"option": "x"})

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestSubmitSession_RequiresAllAnsweredByDefault(t *testing.T) {
	router, svc := setupRouter(t)

	ruleErr := services.NewBusinessRuleError(services.RuleAllQuestionsAnswered, "1 question(s) have no selected answer",
		map[string]interface{}{"unanswered_positions": []int{1}})
	svc.On("Submit", mock.Anything, "s1", services.SubmitOptions{RequireAllAnswered: true}).Return(nil, ruleErr)

	rec := doRequest(router, http.MethodPost, "/api/v1/sessions/s1/submit", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unanswered_positions")
}

func TestSubmitSession_AllowPartial(t *testing.T) {
	router, svc := setupRouter(t)

	submitted := readySession("s1")
	submitted.Phase = models.PhaseSubmitted
	svc.On("Submit", mock.Anything, "s1", services.SubmitOptions{RequireAllAnswered: false}).Return(&services.SubmitResponse{
		Session:     submitted,
		Outcome:     models.SessionOutcome{SubmittedTest: models.SubmittedTest{Skill: "Python", Level: models.NewLevel("3")}},
		RecordCount: 1,
	}, nil)

	rec := doRequest(router, http.MethodPost, "/api/v1/sessions/s1/submit?allow_partial=true", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp services.SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.RecordCount)
	assert.Equal(t, "Python", resp.Outcome.SubmittedTest.Skill)
}

func TestSubmitSession_BadAllowPartial(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/v1/sessions/s1/submit?allow_partial=maybe", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitSession_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"backend failure", fmt.Errorf("%w: %w", session.ErrSubmissionFailed, io.ErrUnexpectedEOF), http.StatusBadGateway, "submission_failed"},
		{"in progress", session.ErrSubmissionInProgress, http.StatusConflict, ""},
		{"not ready", session.ErrNotReady, http.StatusConflict, ""},
		{"unknown", io.ErrClosedPipe, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupRouter(t)
			svc.On("Submit", mock.Anything, "s1", mock.Anything).Return(nil, tt.err)

			rec := doRequest(router, http.MethodPost, "/api/v1/sessions/s1/submit", nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestDeleteSession(t *testing.T) {
	router, svc := setupRouter(t)
	svc.On("Delete", mock.Anything, "s1").Return(nil)
	svc.On("Delete", mock.Anything, "s2").Return(services.ErrSessionNotFound)

	assert.Equal(t, http.StatusNoContent, doRequest(router, http.MethodDelete, "/api/v1/sessions/s1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodDelete, "/api/v1/sessions/s2", nil).Code)
}

func TestGetSubmission(t *testing.T) {
	router, svc := setupRouter(t)
	svc.On("GetSubmissionLog", mock.Anything, "s1").Return(&models.SubmissionLog{SessionID: "s1", Skill: "Python"}, nil)
	svc.On("GetSubmissionLog", mock.Anything, "s2").Return(nil, repositories.ErrSubmissionLogNotFound)
	svc.On("GetSubmissionLog", mock.Anything, "s3").Return(nil, services.ErrAuditDisabled)

	rec := doRequest(router, http.MethodGet, "/api/v1/submissions/s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skill":"Python"`)

	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/api/v1/submissions/s2", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(router, http.MethodGet, "/api/v1/submissions/s3", nil).Code)
}

func TestListEmployeeSubmissions(t *testing.T) {
	router, svc := setupRouter(t)
	svc.On("ListEmployeeSubmissions", mock.Anything, "E-7", repositories.SubmissionFilters{
		Skill:  "SQL",
		Limit:  maxSubmissionPageSize,
		Offset: 10,
	}).Return(nil, int64(0), nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/employees/E-7/submissions?skill=SQL&limit=1000&offset=10", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SubmissionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Submissions)
	assert.Empty(t, resp.Submissions)
}

func TestListEmployeeSubmissions_InvalidPaging(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/employees/E-7/submissions?limit=-1", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
