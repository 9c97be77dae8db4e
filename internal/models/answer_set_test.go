package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerMap_ScanRejectsUnknownValue(t *testing.T) {
	var m AnswerMap
	err := m.Scan([]byte(`{"def_autonomy":{"value":"maybe"}}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown value")
}

func TestAnswerMap_ScanRoundTrip(t *testing.T) {
	src := AnswerMap{
		"def_autonomy":              {Value: AnswerYes},
		"prohibited_social_scoring": {Value: AnswerUnsure, Note: "depends on the scoring module"},
	}
	raw, err := src.Value()
	require.NoError(t, err)

	var decoded AnswerMap
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, src, decoded)
}

func TestAnswerMap_ScanNil(t *testing.T) {
	var m AnswerMap
	require.NoError(t, m.Scan(nil))
	assert.Empty(t, m)
}
