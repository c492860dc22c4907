package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
	"github.com/SAP-F-2025/skill-test-service/internal/services"
	"github.com/SAP-F-2025/skill-test-service/internal/utils"
	"github.com/SAP-F-2025/skill-test-service/internal/validator"
	"github.com/gin-gonic/gin"
)

// CreateSessionRequest carries the navigation parameters of a new session.
// Skill and level may be blank; such a session ends up empty.
type CreateSessionRequest struct {
	Skill         string              `json:"skill" validate:"omitempty,max=255,skill_name"`
	Level         models.Level        `json:"level"`
	EmployeeInfo  models.EmployeeInfo `json:"employeeInfo"`
	EmployeeRoles []any               `json:"employeeRoles"`
	EmployeeID    any                 `json:"employeeId"`
}

func (r CreateSessionRequest) toParameters() models.SessionParameters {
	return models.SessionParameters{
		Skill:         r.Skill,
		Level:         r.Level,
		EmployeeInfo:  r.EmployeeInfo,
		EmployeeRoles: r.EmployeeRoles,
		EmployeeID:    r.EmployeeID,
	}
}

type SelectAnswerRequest struct {
	Option string `json:"option" validate:"required"`
}

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
	validator      *validator.Validator
}

func NewSessionHandler(
	sessionService services.SessionService,
	validator *validator.Validator,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
		validator:      validator,
	}
}

// CreateSession starts a session and returns it once questions are loaded
// @Summary Create session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body CreateSessionRequest true "Session parameters"
// @Success 201 {object} services.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Creating session", "skill", req.Skill, "level", req.Level.String())

	resp, err := h.sessionService.Create(c.Request.Context(), req.toParameters())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetSession returns the current snapshot of a session
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	resp, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SelectAnswer records the chosen option for one question
// @Summary Select answer
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param position path int true "Question position"
// @Param answer body SelectAnswerRequest true "Selected option"
// @Success 200 {object} services.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/answers/{position} [put]
func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid position", err, "position must be an integer")
		return
	}

	var req SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp, err := h.sessionService.SelectAnswer(c.Request.Context(), id, position, req.Option)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SubmitSession posts the answer batch to the grading service
// @Summary Submit session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param allow_partial query bool false "Submit with unanswered questions"
// @Success 200 {object} services.SubmitResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	allowPartial, ok := parseBoolQuery(c, "allow_partial")
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting session", "session_id", id, "allow_partial", allowPartial)

	resp, err := h.sessionService.Submit(c.Request.Context(), id, services.SubmitOptions{
		RequireAllAnswered: !allowPartial,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteSession tears a session down
// @Summary Delete session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
