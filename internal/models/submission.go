package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionRecord is one graded-answer row in the batch posted to the
// grading service. Identity fields are omitted when they cannot be resolved.
type SubmissionRecord struct {
	QuestionID       string   `json:"question_id"`
	QuestionText     string   `json:"question_text"`
	Options          []string `json:"options"`
	SelectedLetter   string   `json:"selected_letter"`
	Skill            string   `json:"skill"`
	Level            Level    `json:"level"`
	EmployeeID       any      `json:"employee_id,omitempty"`
	EmployeeName     any      `json:"employee_name,omitempty"`
	EmployeePosition any      `json:"employee_position,omitempty"`
}

// SubmissionBatch is the request body of the submit-answers endpoint.
type SubmissionBatch struct {
	Submissions []SubmissionRecord `json:"submissions"`
}

// SubmissionLog is the local audit row written after the grading service
// accepted a batch.
type SubmissionLog struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	SessionID     string         `json:"session_id" gorm:"size:64;not null;uniqueIndex"`
	Skill         string         `json:"skill" gorm:"size:255;not null;index"`
	Level         string         `json:"level" gorm:"size:32;not null"`
	EmployeeID    string         `json:"employee_id" gorm:"size:255;index"`
	QuestionCount int            `json:"question_count"`
	AnsweredCount int            `json:"answered_count"`
	Records       datatypes.JSON `json:"records" gorm:"type:jsonb"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (SubmissionLog) TableName() string {
	return "submission_logs"
}
