package session

import (
	"sort"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

// Tracker holds the current selection per question position. It does no
// locking; the Controller serializes access.
type Tracker struct {
	answers models.AnswerState
}

func NewTracker() *Tracker {
	return &Tracker{answers: make(models.AnswerState)}
}

// Select records option for position, replacing any earlier selection there.
// The option is not checked against the question's options; that happens when
// the letter is derived at submission time.
func (t *Tracker) Select(position int, option string) {
	t.answers[position] = option
}

func (t *Tracker) Selection(position int) (string, bool) {
	option, ok := t.answers[position]
	return option, ok
}

func (t *Tracker) Len() int {
	return len(t.answers)
}

// Snapshot returns a copy that later selections do not affect.
func (t *Tracker) Snapshot() models.AnswerState {
	out := make(models.AnswerState, len(t.answers))
	for pos, option := range t.answers {
		out[pos] = option
	}
	return out
}

// Unanswered lists positions in [0, n) with no selection, ascending.
func (t *Tracker) Unanswered(n int) []int {
	var missing []int
	for pos := 0; pos < n; pos++ {
		if _, ok := t.answers[pos]; !ok {
			missing = append(missing, pos)
		}
	}
	sort.Ints(missing)
	return missing
}
