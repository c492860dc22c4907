package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/skill-test-service/internal/events"
	"github.com/SAP-F-2025/skill-test-service/internal/models"
	"github.com/SAP-F-2025/skill-test-service/internal/repositories"
	"github.com/SAP-F-2025/skill-test-service/internal/session"
	"github.com/SAP-F-2025/skill-test-service/internal/skillmap"
)

// ErrAuditDisabled is returned by audit queries when no database is configured
var ErrAuditDisabled = errors.New("submission audit log is not configured")

// SessionService owns the set of live assessment sessions
type SessionService interface {
	Create(ctx context.Context, params models.SessionParameters) (*SessionResponse, error)
	Get(ctx context.Context, id string) (*SessionResponse, error)
	SelectAnswer(ctx context.Context, id string, position int, option string) (*SessionResponse, error)
	Submit(ctx context.Context, id string, opts SubmitOptions) (*SubmitResponse, error)
	Delete(ctx context.Context, id string) error
	PruneIdle(ctx context.Context, maxAge time.Duration) int

	GetSubmissionLog(ctx context.Context, sessionID string) (*models.SubmissionLog, error)
	ListEmployeeSubmissions(ctx context.Context, employeeID string, filters repositories.SubmissionFilters) ([]*models.SubmissionLog, int64, error)
}

type SessionResponse struct {
	ID string `json:"id"`
	session.View
	CreatedAt time.Time `json:"created_at"`
}

type SubmitOptions struct {
	// RequireAllAnswered rejects the submission while any question has no
	// selection, as the answer form does.
	RequireAllAnswered bool
}

type SubmitResponse struct {
	Session       *SessionResponse      `json:"session"`
	Outcome       models.SessionOutcome `json:"outcome"`
	RecordCount   int                   `json:"record_count"`
	AnsweredCount int                   `json:"answered_count"`
}

type SessionServiceDeps struct {
	Lookup         skillmap.Source
	Loader         *session.QuestionLoader
	Submitter      session.AnswerSubmitter
	EventPublisher events.EventPublisher
	// Submissions is optional; nil disables the audit log
	Submissions repositories.SubmissionRepository
	Logger      *slog.Logger
}

type sessionEntry struct {
	controller *session.Controller
	cancel     context.CancelFunc
	createdAt  time.Time
}

type sessionService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	deps      SessionServiceDeps
	logger    *slog.Logger
	svcLogger *ServiceLogger
	newID     func() string
	now       func() time.Time
}

func NewSessionService(deps SessionServiceDeps) SessionService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.EventPublisher == nil {
		deps.EventPublisher = events.NewMockEventPublisher(logger)
	}

	return &sessionService{
		sessions:  make(map[string]*sessionEntry),
		deps:      deps,
		logger:    logger,
		svcLogger: NewServiceLogger(logger, LogConfig{Service: "skill-test-service", Component: "session"}),
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Create registers a session and runs it until it is Ready or Empty. The
// session outlives the request, so it gets its own cancelable context.
func (s *sessionService) Create(ctx context.Context, params models.SessionParameters) (resp *SessionResponse, err error) {
	id := s.newID()
	op := s.svcLogger.WithOperation(ctx, "create_session", id)
	defer func() { op.LogResult(err) }()

	sessionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	ctrl := session.NewController(params, session.Dependencies{
		Lookup:    s.deps.Lookup,
		Loader:    s.deps.Loader,
		Submitter: s.deps.Submitter,
		Logger:    s.logger.With("session_id", id),
	})
	entry := &sessionEntry{controller: ctrl, cancel: cancel, createdAt: s.now()}

	s.mu.Lock()
	s.sessions[id] = entry
	s.mu.Unlock()

	if err := ctrl.Start(sessionCtx); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	view := ctrl.View()
	switch view.Phase {
	case models.PhaseReady:
		s.publish(ctx, events.NewSessionStartedEvent(id, events.SessionStartedEvent{
			Skill:         params.Skill,
			ResolvedSkill: view.ResolvedSkill,
			Level:         params.Level,
			QuestionCount: len(view.Questions),
			EmployeeID:    session.ResolveEmployeeID(params),
		}))
	case models.PhaseEmpty:
		s.publish(ctx, events.NewSessionEmptyEvent(id, events.SessionEmptyEvent{
			Skill: params.Skill,
			Level: params.Level,
		}))
	}

	return s.response(id, entry), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*SessionResponse, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.response(id, entry), nil
}

func (s *sessionService) SelectAnswer(ctx context.Context, id string, position int, option string) (resp *SessionResponse, err error) {
	op := s.svcLogger.WithOperation(ctx, "select_answer", id)
	defer func() { op.LogResult(err) }()

	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := entry.controller.Select(position, option); err != nil {
		if errors.Is(err, session.ErrInvalidPosition) {
			return nil, ValidationErrors{*NewValidationError("position", err.Error(), position)}
		}
		return nil, err
	}
	return s.response(id, entry), nil
}

func (s *sessionService) Submit(ctx context.Context, id string, opts SubmitOptions) (resp *SubmitResponse, err error) {
	op := s.svcLogger.WithOperation(ctx, "submit_session", id)
	defer func() { op.LogResult(err) }()

	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	ctrl := entry.controller
	params := ctrl.Params()

	if opts.RequireAllAnswered && ctrl.Phase() == models.PhaseReady {
		if missing := ctrl.Unanswered(); len(missing) > 0 {
			return nil, NewBusinessRuleError(RuleAllQuestionsAnswered,
				fmt.Sprintf("%d question(s) have no selected answer", len(missing)),
				map[string]interface{}{"unanswered_positions": missing})
		}
	}

	receipt, err := ctrl.Submit(ctx)
	if err != nil {
		if IsUpstream(err) {
			s.publish(ctx, events.NewSessionSubmissionFailedEvent(id, events.SessionSubmissionFailedEvent{
				Skill:  params.Skill,
				Level:  params.Level,
				Reason: err.Error(),
			}))
		}
		return nil, err
	}

	answered := session.AnsweredCount(receipt.Records)
	employeeID := session.ResolveEmployeeID(params)

	s.recordSubmission(ctx, id, params, receipt, answered)
	s.publish(ctx, events.NewSessionSubmittedEvent(id, events.SessionSubmittedEvent{
		Skill:         params.Skill,
		Level:         params.Level,
		EmployeeID:    employeeID,
		QuestionCount: len(receipt.Records),
		AnsweredCount: answered,
		SubmittedAt:   receipt.Outcome.SubmittedAt,
	}))

	return &SubmitResponse{
		Session:       s.response(id, entry),
		Outcome:       receipt.Outcome,
		RecordCount:   len(receipt.Records),
		AnsweredCount: answered,
	}, nil
}

// Delete tears a session down; a fetch still in flight is discarded.
func (s *sessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	entry.controller.Close()
	entry.cancel()
	s.logger.InfoContext(ctx, "Session closed", "session_id", id)
	return nil
}

// PruneIdle closes sessions older than maxAge and returns how many were
// removed.
func (s *sessionService) PruneIdle(ctx context.Context, maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	var stale []*sessionEntry
	for id, entry := range s.sessions {
		if entry.createdAt.Before(cutoff) {
			stale = append(stale, entry)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, entry := range stale {
		entry.controller.Close()
		entry.cancel()
	}
	if len(stale) > 0 {
		s.logger.InfoContext(ctx, "Pruned idle sessions", "count", len(stale))
	}
	return len(stale)
}

func (s *sessionService) GetSubmissionLog(ctx context.Context, sessionID string) (*models.SubmissionLog, error) {
	if s.deps.Submissions == nil {
		return nil, ErrAuditDisabled
	}
	return s.deps.Submissions.GetBySessionID(ctx, sessionID)
}

func (s *sessionService) ListEmployeeSubmissions(ctx context.Context, employeeID string, filters repositories.SubmissionFilters) ([]*models.SubmissionLog, int64, error) {
	if s.deps.Submissions == nil {
		return nil, 0, ErrAuditDisabled
	}
	return s.deps.Submissions.ListByEmployee(ctx, employeeID, filters)
}

func (s *sessionService) lookup(id string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

func (s *sessionService) response(id string, entry *sessionEntry) *SessionResponse {
	return &SessionResponse{
		ID:        id,
		View:      entry.controller.View(),
		CreatedAt: entry.createdAt,
	}
}

// recordSubmission writes the audit row. The grading service already
// accepted the batch, so failures here are logged only.
func (s *sessionService) recordSubmission(ctx context.Context, id string, params models.SessionParameters, receipt *session.Receipt, answered int) {
	if s.deps.Submissions == nil {
		return
	}

	records, err := json.Marshal(receipt.Records)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode submission records", "session_id", id, "error", err)
		return
	}

	employeeID := ""
	if v := session.ResolveEmployeeID(params); v != nil {
		employeeID = fmt.Sprint(v)
	}

	log := &models.SubmissionLog{
		SessionID:     id,
		Skill:         params.Skill,
		Level:         params.Level.String(),
		EmployeeID:    employeeID,
		QuestionCount: len(receipt.Records),
		AnsweredCount: answered,
		Records:       records,
		CreatedAt:     receipt.Outcome.SubmittedAt,
	}
	if err := s.deps.Submissions.Create(ctx, log); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record submission", "session_id", id, "error", err)
	}
}

func (s *sessionService) publish(ctx context.Context, event *events.SessionEvent) {
	if err := s.deps.EventPublisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish session event",
			"event_type", event.Type,
			"session_id", event.SessionID,
			"error", err)
	}
}
