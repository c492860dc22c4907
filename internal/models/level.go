package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Level is an opaque difficulty tier. The backend accepts either a string or
// a number, so the JSON kind is kept and re-emitted as received.
type Level struct {
	value   string
	numeric bool
}

func NewLevel(value string) Level {
	return Level{value: value}
}

func NewNumericLevel(value int) Level {
	return Level{value: strconv.Itoa(value), numeric: true}
}

func (l Level) String() string {
	return l.value
}

func (l Level) IsZero() bool {
	return l.value == ""
}

func (l Level) IsNumeric() bool {
	return l.numeric
}

func (l Level) MarshalJSON() ([]byte, error) {
	if l.numeric {
		return []byte(l.value), nil
	}
	return json.Marshal(l.value)
}

func (l *Level) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = Level{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Level{value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("level must be a string or number: %w", err)
	}
	// 0 is falsy for callers that pass a numeric tier, same as an empty string
	if f, err := n.Float64(); err == nil && f == 0 {
		*l = Level{}
		return nil
	}
	*l = Level{value: n.String(), numeric: true}
	return nil
}
