// Package session implements one assessment attempt: skill resolution,
// question loading, answer tracking and batch submission.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
	"github.com/SAP-F-2025/skill-test-service/internal/skillmap"
)

const (
	EmptyMessage         = "No questions found for this skill/level."
	SubmissionFailNotice = "Submission failed"
)

// AnswerSubmitter posts a finished batch to the grading service.
type AnswerSubmitter interface {
	SubmitAnswers(ctx context.Context, records []models.SubmissionRecord) error
}

type Dependencies struct {
	Lookup    skillmap.Source
	Loader    *QuestionLoader
	Submitter AnswerSubmitter
	Logger    *slog.Logger
}

// View is a read-only copy of the session state for rendering.
type View struct {
	Phase         models.SessionPhase    `json:"phase"`
	Skill         string                 `json:"skill"`
	ResolvedSkill string                 `json:"resolved_skill,omitempty"`
	Level         models.Level           `json:"level"`
	Questions     []models.Question      `json:"questions"`
	Answers       models.AnswerState     `json:"answers"`
	Message       string                 `json:"message,omitempty"`
	FailureNotice string                 `json:"failure_notice,omitempty"`
	Outcome       *models.SessionOutcome `json:"outcome,omitempty"`
}

// Receipt is returned by a successful Submit.
type Receipt struct {
	Records []models.SubmissionRecord
	Outcome models.SessionOutcome
}

// Controller owns the phase transitions of a single session. Network calls
// run outside the lock; phase checks make Submit single-flight.
type Controller struct {
	mu sync.Mutex

	params models.SessionParameters
	deps   Dependencies
	logger *slog.Logger
	now    func() time.Time

	phase         models.SessionPhase
	resolvedSkill string
	questions     []models.Question
	tracker       *Tracker
	failureNotice string
	outcome       *models.SessionOutcome
	closed        bool
}

func NewController(params models.SessionParameters, deps Dependencies) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		params:    params,
		deps:      deps,
		logger:    logger.With("skill", params.Skill, "level", params.Level.String()),
		now:       time.Now,
		phase:     models.PhaseLoading,
		questions: []models.Question{},
		tracker:   NewTracker(),
	}
}

// Start runs Loading -> ResolvingQuestions -> Ready|Empty. Missing skill or
// level ends in Empty without touching the lookup table or question bank.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != models.PhaseLoading {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	if c.params.Skill == "" || c.params.Level.IsZero() {
		c.transition(models.PhaseEmpty)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	table := skillmap.LoadOrEmpty(ctx, c.deps.Lookup, c.logger)
	skillID := skillmap.Resolve(table, c.params.Skill)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.resolvedSkill = skillID
	c.transition(models.PhaseResolvingQuestions)
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "Resolved skill", "skill_id", skillID, "lookup_entries", table.Len())

	questions := c.deps.Loader.Load(ctx, skillID, c.params.Level)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.questions = questions
	if len(questions) == 0 {
		c.transition(models.PhaseEmpty)
	} else {
		c.transition(models.PhaseReady)
	}
	return nil
}

// Select records an answer. Answers are only accepted while Ready.
func (c *Controller) Select(position int, option string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != models.PhaseReady {
		return fmt.Errorf("%w (phase %s)", ErrNotAcceptingAnswers, c.phase)
	}
	if position < 0 || position >= len(c.questions) {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}
	c.tracker.Select(position, option)
	return nil
}

// Submit builds the batch from the current answers and posts it. On failure
// the session returns to Ready with answers intact and the error wraps
// ErrSubmissionFailed.
func (c *Controller) Submit(ctx context.Context) (*Receipt, error) {
	c.mu.Lock()
	switch c.phase {
	case models.PhaseReady:
	case models.PhaseSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmissionInProgress
	default:
		phase := c.phase
		c.mu.Unlock()
		return nil, fmt.Errorf("%w (phase %s)", ErrNotReady, phase)
	}
	c.transition(models.PhaseSubmitting)
	records := Build(c.questions, c.tracker.Snapshot(), c.params, c.resolvedSkill)
	c.mu.Unlock()

	err := c.deps.Submitter.SubmitAnswers(ctx, records)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.transition(models.PhaseSubmissionFailed)
		c.failureNotice = SubmissionFailNotice
		c.transition(models.PhaseReady)
		c.logger.WarnContext(ctx, "Submission failed", "error", err, "records", len(records))
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	outcome := models.SessionOutcome{
		EmployeeInfo:  c.params.EmployeeInfo,
		EmployeeRoles: c.params.EmployeeRoles,
		EmployeeID:    c.params.EmployeeID,
		SubmittedTest: models.SubmittedTest{
			Skill: c.params.Skill,
			Level: c.params.Level,
		},
		SubmittedAt: c.now(),
	}
	c.outcome = &outcome
	c.failureNotice = ""
	c.transition(models.PhaseSubmitted)

	return &Receipt{Records: records, Outcome: outcome}, nil
}

// Close tears the session down. A fetch still in flight is discarded when it
// returns.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) Phase() models.SessionPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Params() models.SessionParameters {
	return c.params
}

// Unanswered lists question positions without a selection.
func (c *Controller) Unanswered() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Unanswered(len(c.questions))
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	questions := make([]models.Question, len(c.questions))
	copy(questions, c.questions)

	v := View{
		Phase:         c.phase,
		Skill:         c.params.Skill,
		ResolvedSkill: c.resolvedSkill,
		Level:         c.params.Level,
		Questions:     questions,
		Answers:       c.tracker.Snapshot(),
		FailureNotice: c.failureNotice,
	}
	if c.phase == models.PhaseEmpty {
		v.Message = EmptyMessage
	}
	if c.outcome != nil {
		outcome := *c.outcome
		v.Outcome = &outcome
	}
	return v
}

// transition must be called with mu held.
func (c *Controller) transition(to models.SessionPhase) {
	c.logger.Debug("Session phase change", "from", c.phase, "to", to)
	c.phase = to
}
