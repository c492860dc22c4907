package models

// Question is a multiple-choice item returned by the question bank.
// Its position in the retrieved slice is what answers are keyed by.
type Question struct {
	ID      string   `json:"question_id"`
	Text    string   `json:"question_text"`
	Options []string `json:"options"`
	SkillID string   `json:"skill_id,omitempty"`
}

// OptionIndex returns the first index of option in q.Options, or -1.
func (q Question) OptionIndex(option string) int {
	for i, opt := range q.Options {
		if opt == option {
			return i
		}
	}
	return -1
}
