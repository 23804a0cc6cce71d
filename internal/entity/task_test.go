package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationHours(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2 hours", 2},
		{"3.5 hours", 3.5},
		{"about 1 day", 1},
		{"half a day", 0},
		{"", 0},
		{"Not specified", 0},
		{"45 minutes", 45}, // first numeric token, units are not interpreted
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseDurationHours(tc.in), "input %q", tc.in)
	}
}

func TestHasVolunteer(t *testing.T) {
	task := VolunteerTask{Volunteers: []int{3, 7}}

	assert.True(t, task.HasVolunteer(7))
	assert.False(t, task.HasVolunteer(4))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusOpen.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
