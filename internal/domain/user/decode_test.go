package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRoundTripKeepsForeignKeys(t *testing.T) {
	in := `{"name":"Ann","theme":"dark","last_seen":"not a time","avatar":42}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.Equal(t, "Ann", p.Name)
	assert.Empty(t, p.Avatar)
	assert.Nil(t, p.LastSeen)
	assert.Len(t, p.Extra, 3)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	p.Avatar = "cat.png"
	out, err = json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ann","theme":"dark","last_seen":"not a time","avatar":"cat.png"}`, string(out))
}

func TestProfileNullAndEmpty(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.Equal(t, Profile{}, p)

	out, err := json.Marshal(Profile{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))
}

func TestDailyLogLooseValues(t *testing.T) {
	var logs []DailyLog
	require.NoError(t, json.Unmarshal([]byte(`[
		{"date": 20240314, "log": {"Study": 2.9, "Chess": "two"}},
		{"date": "2024-03-14", "mood": 5, "log": "none"}
	]`), &logs))

	require.Len(t, logs, 2)
	assert.Equal(t, DailyLog{Date: "", Log: map[string]int{"Study": 2, "Chess": 0}}, logs[0])
	assert.Equal(t, DailyLog{Date: "2024-03-14", Log: map[string]int{}}, logs[1])
}
