package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_UnmarshalKeepsKind(t *testing.T) {
	var params SessionParameters
	require.NoError(t, json.Unmarshal([]byte(`{"skill":"Python","level":3}`), &params))
	assert.True(t, params.Level.IsNumeric())
	assert.Equal(t, "3", params.Level.String())

	out, err := json.Marshal(params.Level)
	require.NoError(t, err)
	assert.Equal(t, `3`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"level":"Advanced"}`), &params))
	assert.False(t, params.Level.IsNumeric())
	out, err = json.Marshal(params.Level)
	require.NoError(t, err)
	assert.Equal(t, `"Advanced"`, string(out))
}

func TestLevel_FalsyValuesAreMissing(t *testing.T) {
	for _, raw := range []string{`null`, `0`, `""`} {
		var l Level
		require.NoError(t, json.Unmarshal([]byte(raw), &l), raw)
		assert.True(t, l.IsZero(), raw)
	}
}

func TestLevel_RejectsOtherKinds(t *testing.T) {
	var l Level
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &l))
	assert.Error(t, json.Unmarshal([]byte(`true`), &l))
}

func TestQuestion_OptionIndex(t *testing.T) {
	q := Question{Options: []string{"a", "b", "b"}}
	assert.Equal(t, 1, q.OptionIndex("b"))
	assert.Equal(t, -1, q.OptionIndex("z"))
}
