package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
	"github.com/SAP-F-2025/skill-test-service/internal/repositories"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: db}
}

// AutoMigrate creates or updates the submission_logs table
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SubmissionLog{}); err != nil {
		return fmt.Errorf("failed to migrate submission logs: %w", err)
	}
	return nil
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, log *models.SubmissionLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *SubmissionPostgreSQL) GetBySessionID(ctx context.Context, sessionID string) (*models.SubmissionLog, error) {
	var log models.SubmissionLog
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrSubmissionLogNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *SubmissionPostgreSQL) ListByEmployee(ctx context.Context, employeeID string, filters repositories.SubmissionFilters) ([]*models.SubmissionLog, int64, error) {
	var logs []*models.SubmissionLog
	var total int64

	query := s.db.WithContext(ctx).Model(&models.SubmissionLog{}).Where("employee_id = ?", employeeID)
	query = applySubmissionFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(filters.Offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func applySubmissionFilters(query *gorm.DB, filters repositories.SubmissionFilters) *gorm.DB {
	if filters.Skill != "" {
		query = query.Where("skill = ?", filters.Skill)
	}
	if filters.Level != "" {
		query = query.Where("level = ?", filters.Level)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}
