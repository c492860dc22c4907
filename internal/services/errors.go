package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/skill-test-service/internal/errors"
	"github.com/SAP-F-2025/skill-test-service/internal/repositories"
	"github.com/SAP-F-2025/skill-test-service/internal/session"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrValidationFailed = errors.New("validation failed")
)

// Business rules enforced at the form boundary
const (
	RuleAllQuestionsAnswered = "all_questions_answered"
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, repositories.ErrSubmissionLogNotFound)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict reports errors caused by the session being in the wrong phase
func IsConflict(err error) bool {
	return errors.Is(err, session.ErrSubmissionInProgress) ||
		errors.Is(err, session.ErrNotReady) ||
		errors.Is(err, session.ErrNotAcceptingAnswers) ||
		errors.Is(err, session.ErrClosed)
}

// IsUpstream reports failures of the grading service
func IsUpstream(err error) bool {
	return errors.Is(err, session.ErrSubmissionFailed)
}

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}
