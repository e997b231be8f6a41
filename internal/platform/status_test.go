package platform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StatusCode
	}{
		{
			name: "canonical casing kept",
			in:   "Running",
			want: StatusRunning,
		},
		{
			name: "upper case canonicalized",
			in:   "FAILED",
			want: StatusFailed,
		},
		{
			name: "lower case canonicalized",
			in:   "destroying",
			want: StatusDestroying,
		},
		{
			name: "unknown code passes through verbatim",
			in:   "Paused",
			want: StatusCode("Paused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatusCode(tt.in))
		})
	}
}

func TestStatusCode_UnmarshalJSON(t *testing.T) {
	var doc struct {
		Status StatusCode `json:"status"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"status": "executing"}`), &doc))
	assert.Equal(t, StatusExecuting, doc.Status)

	require.NoError(t, json.Unmarshal([]byte(`{"status": "Hibernated"}`), &doc))
	assert.Equal(t, "Hibernated", doc.Status.String())

	assert.Error(t, json.Unmarshal([]byte(`{"status": 7}`), &doc))
}
