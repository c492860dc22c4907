package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/skill-test-service/internal/services"
	"github.com/SAP-F-2025/skill-test-service/internal/utils"
	"github.com/SAP-F-2025/skill-test-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	sessionHandler    *SessionHandler
	submissionHandler *SubmissionHandler
}

func NewHandlerManager(
	sessionService services.SessionService,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessionHandler:    NewSessionHandler(sessionService, validator, logger),
		submissionHandler: NewSubmissionHandler(sessionService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.CreateSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.PUT("/:id/answers/:position", hm.sessionHandler.SelectAnswer)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitSession)
			sessions.DELETE("/:id", hm.sessionHandler.DeleteSession)
		}

		// Audit log
		v1.GET("/submissions/:session_id", hm.submissionHandler.GetSubmission)
		v1.GET("/employees/:employee_id/submissions", hm.submissionHandler.ListEmployeeSubmissions)
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skill-test-service",
	})
}
