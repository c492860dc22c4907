package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

// EventType represents the lifecycle events emitted for a test session
type EventType string

const (
	EventSessionStarted          EventType = "session.started"
	EventSessionEmpty            EventType = "session.empty"
	EventSessionSubmitted        EventType = "session.submitted"
	EventSessionSubmissionFailed EventType = "session.submission_failed"
)

const (
	eventSource  = "skill-test-service"
	eventVersion = "1.0"
)

// SessionEvent is the envelope for all session events
type SessionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type SessionStartedEvent struct {
	Skill         string       `json:"skill"`
	ResolvedSkill string       `json:"resolved_skill"`
	Level         models.Level `json:"level"`
	QuestionCount int          `json:"question_count"`
	EmployeeID    any          `json:"employee_id,omitempty"`
}

type SessionEmptyEvent struct {
	Skill string       `json:"skill"`
	Level models.Level `json:"level"`
}

type SessionSubmittedEvent struct {
	Skill         string       `json:"skill"`
	Level         models.Level `json:"level"`
	EmployeeID    any          `json:"employee_id,omitempty"`
	QuestionCount int          `json:"question_count"`
	AnsweredCount int          `json:"answered_count"`
	SubmittedAt   time.Time    `json:"submitted_at"`
}

type SessionSubmissionFailedEvent struct {
	Skill  string       `json:"skill"`
	Level  models.Level `json:"level"`
	Reason string       `json:"reason"`
}

func newSessionEvent(eventType EventType, sessionID string, data interface{}) *SessionEvent {
	return &SessionEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewSessionStartedEvent(sessionID string, data SessionStartedEvent) *SessionEvent {
	return newSessionEvent(EventSessionStarted, sessionID, data)
}

func NewSessionEmptyEvent(sessionID string, data SessionEmptyEvent) *SessionEvent {
	return newSessionEvent(EventSessionEmpty, sessionID, data)
}

func NewSessionSubmittedEvent(sessionID string, data SessionSubmittedEvent) *SessionEvent {
	return newSessionEvent(EventSessionSubmitted, sessionID, data)
}

func NewSessionSubmissionFailedEvent(sessionID string, data SessionSubmissionFailedEvent) *SessionEvent {
	return newSessionEvent(EventSessionSubmissionFailed, sessionID, data)
}

// GenerateEventID returns a new random event identifier
func GenerateEventID() string {
	return uuid.NewString()
}
