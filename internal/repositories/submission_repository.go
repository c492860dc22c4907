package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

var ErrSubmissionLogNotFound = errors.New("submission log not found")

type SubmissionFilters struct {
	Skill    string     `json:"skill"`
	Level    string     `json:"level"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// SubmissionRepository stores the audit trail of accepted submission batches
type SubmissionRepository interface {
	Create(ctx context.Context, log *models.SubmissionLog) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.SubmissionLog, error)
	ListByEmployee(ctx context.Context, employeeID string, filters SubmissionFilters) ([]*models.SubmissionLog, int64, error)
}
