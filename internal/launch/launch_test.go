package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReaction(t *testing.T) {
	tests := []struct {
		input string
		want  Reaction
	}{
		{"failure", ReactionFailure},
		{"FAILURE", ReactionFailure},
		{"unstable", ReactionUnstable},
		{"Unstable", ReactionUnstable},
		{"success", ReactionSuccess},
		{" success ", ReactionSuccess},
		{"", ReactionFailure},
		{"whatever", ReactionFailure},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseReaction(tc.input), "input %q", tc.input)
	}
}

func TestReactionTolerates(t *testing.T) {
	assert.False(t, ReactionFailure.Tolerates())
	assert.True(t, ReactionUnstable.Tolerates())
	assert.True(t, ReactionSuccess.Tolerates())
	assert.False(t, Reaction("").Tolerates())
}

func TestReportFatal(t *testing.T) {
	assert.True(t, (&Report{Result: ResultFailed}).Fatal())
	assert.False(t, (&Report{Result: ResultUnstable}).Fatal())
	assert.False(t, (&Report{Result: ResultSucceeded}).Fatal())
}
