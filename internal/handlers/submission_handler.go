package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
	"github.com/SAP-F-2025/skill-test-service/internal/repositories"
	"github.com/SAP-F-2025/skill-test-service/internal/services"
	"github.com/SAP-F-2025/skill-test-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const maxSubmissionPageSize = 200

type SubmissionListResponse struct {
	Submissions []*models.SubmissionLog `json:"submissions"`
	Total       int64                   `json:"total"`
}

// SubmissionHandler serves the audit log of accepted submission batches
type SubmissionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSubmissionHandler(sessionService services.SessionService, logger utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// GetSubmission returns the audit row written for a session
// @Summary Get submission log
// @Tags submissions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} models.SubmissionLog
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /submissions/{session_id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "session_id")
	if sessionID == "" {
		return
	}

	log, err := h.sessionService.GetSubmissionLog(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// ListEmployeeSubmissions returns the audit rows of one employee
// @Summary List employee submissions
// @Tags submissions
// @Produce json
// @Param employee_id path string true "Employee ID"
// @Param skill query string false "Skill name"
// @Param level query string false "Level"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} SubmissionListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /employees/{employee_id}/submissions [get]
func (h *SubmissionHandler) ListEmployeeSubmissions(c *gin.Context) {
	employeeID := ParseStringIDParam(c, "employee_id")
	if employeeID == "" {
		return
	}

	limit, ok := parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}
	if limit > maxSubmissionPageSize {
		limit = maxSubmissionPageSize
	}

	filters := repositories.SubmissionFilters{
		Skill:  c.Query("skill"),
		Level:  c.Query("level"),
		Limit:  limit,
		Offset: offset,
	}

	logs, total, err := h.sessionService.ListEmployeeSubmissions(c.Request.Context(), employeeID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if logs == nil {
		logs = []*models.SubmissionLog{}
	}

	c.JSON(http.StatusOK, SubmissionListResponse{Submissions: logs, Total: total})
}
