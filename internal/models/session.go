package models

import "time"

// SessionPhase is the state of a single assessment session.
type SessionPhase string

const (
	PhaseLoading            SessionPhase = "loading"
	PhaseResolvingQuestions SessionPhase = "resolving_questions"
	PhaseReady              SessionPhase = "ready"
	PhaseEmpty              SessionPhase = "empty"
	PhaseSubmitting         SessionPhase = "submitting"
	PhaseSubmitted          SessionPhase = "submitted"
	PhaseSubmissionFailed   SessionPhase = "submission_failed"
)

// IsTerminal reports whether no further transitions can happen.
func (p SessionPhase) IsTerminal() bool {
	return p == PhaseEmpty || p == PhaseSubmitted
}

// EmployeeInfo is the loosely shaped identity object handed over by the
// caller. Known keys are read through the fallback chains in the session
// package; everything else is passed back untouched in the outcome.
type EmployeeInfo map[string]any

// SessionParameters are fixed when a session is created.
type SessionParameters struct {
	Skill         string       `json:"skill"`
	Level         Level        `json:"level"`
	EmployeeInfo  EmployeeInfo `json:"employeeInfo,omitempty"`
	EmployeeRoles []any        `json:"employeeRoles,omitempty"`
	EmployeeID    any          `json:"employeeId,omitempty"`
}

// AnswerState maps question position to the selected option text.
type AnswerState map[int]string

// SubmittedTest identifies what was just submitted.
type SubmittedTest struct {
	Skill string `json:"skill"`
	Level Level  `json:"level"`
}

// SessionOutcome is handed to the navigation collaborator after a successful
// submission.
type SessionOutcome struct {
	EmployeeInfo  EmployeeInfo  `json:"employeeInfo,omitempty"`
	EmployeeRoles []any         `json:"employeeRoles,omitempty"`
	EmployeeID    any           `json:"employeeId,omitempty"`
	SubmittedTest SubmittedTest `json:"submittedTest"`
	SubmittedAt   time.Time     `json:"submittedAt"`
}
