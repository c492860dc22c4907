package session

import (
	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

// Letter encodes an option index as A, B, C, ... and returns "" for a
// negative index.
func Letter(index int) string {
	if index < 0 {
		return ""
	}
	return string(rune('A' + index))
}

// Build turns the tracked selections into one record per question, in
// question order. Unanswered questions, and selections that no longer match
// any option, get an empty letter. skill is the resolved identifier used when
// a question carries no skill of its own.
func Build(questions []models.Question, answers models.AnswerState, params models.SessionParameters, skill string) []models.SubmissionRecord {
	employeeID := ResolveEmployeeID(params)
	employeeName := ResolveEmployeeName(params)
	employeePosition := ResolveEmployeePosition(params)

	records := make([]models.SubmissionRecord, 0, len(questions))
	for i, q := range questions {
		letter := ""
		if selected, ok := answers[i]; ok {
			letter = Letter(q.OptionIndex(selected))
		}

		recordSkill := q.SkillID
		if recordSkill == "" {
			recordSkill = skill
		}

		records = append(records, models.SubmissionRecord{
			QuestionID:       q.ID,
			QuestionText:     q.Text,
			Options:          q.Options,
			SelectedLetter:   letter,
			Skill:            recordSkill,
			Level:            params.Level,
			EmployeeID:       employeeID,
			EmployeeName:     employeeName,
			EmployeePosition: employeePosition,
		})
	}
	return records
}

// AnsweredCount counts records with a non-empty letter.
func AnsweredCount(records []models.SubmissionRecord) int {
	n := 0
	for _, r := range records {
		if r.SelectedLetter != "" {
			n++
		}
	}
	return n
}
