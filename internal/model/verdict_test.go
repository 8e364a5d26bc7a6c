package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictStatus_Labels(t *testing.T) {
	assert.Equal(t, "FAIL", Fail.String())
	assert.Equal(t, "PASS", Pass.String())
	assert.Equal(t, "PASS (fixed)", PassFixed.String())
	assert.Equal(t, "UNKNOWN", VerdictStatus(9).String())
}

func TestVerdict_JSON(t *testing.T) {
	fixed := 0.97
	verdict := Verdict{Passed: true, Status: PassFixed, Reason: "fixed render meets threshold", RawScore: 0.8, FixedScore: &fixed}

	data, err := json.Marshal(verdict)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"PASS (fixed)"`)

	var decoded Verdict
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, verdict, decoded)
}

func TestVerdictStatus_UnknownLabelDecodesAsFail(t *testing.T) {
	var status VerdictStatus = Pass
	require.NoError(t, status.UnmarshalText([]byte("MAYBE")))
	assert.Equal(t, Fail, status)
}
