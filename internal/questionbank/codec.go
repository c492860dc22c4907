package questionbank

import (
	"bytes"
	"encoding/json"

	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

type questionsResponse struct {
	Questions json.RawMessage `json:"questions"`
}

type rawQuestion struct {
	MongoID      json.RawMessage `json:"_id"`
	QuestionID   json.RawMessage `json:"question_id"`
	QuestionText string          `json:"question_text"`
	Options      []string        `json:"options"`
	SkillID      json.RawMessage `json:"skill_id"`
}

func (r questionsResponse) toModels() []models.Question {
	raw := bytes.TrimSpace(r.Questions)
	if len(raw) == 0 || raw[0] != '[' {
		return []models.Question{}
	}

	var items []rawQuestion
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.Question{}
	}

	questions := make([]models.Question, 0, len(items))
	for _, item := range items {
		id := scalarString(item.MongoID)
		if id == "" {
			id = scalarString(item.QuestionID)
		}
		options := item.Options
		if options == nil {
			options = []string{}
		}
		questions = append(questions, models.Question{
			ID:      id,
			Text:    item.QuestionText,
			Options: options,
			SkillID: scalarString(item.SkillID),
		})
	}
	return questions
}

// scalarString renders a JSON string, number or {"$oid": "..."} as text.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '{':
		var oid struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(raw, &oid); err == nil {
			return oid.OID
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	return ""
}
