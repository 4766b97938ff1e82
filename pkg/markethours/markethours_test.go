package markethours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSchedule(t *testing.T) *Schedule {
	t.Helper()
	s, err := NewSchedule("09:15", "15:30", "Asia/Kolkata")
	require.NoError(t, err)
	return s
}

func TestIsOpen(t *testing.T) {
	s := newTestSchedule(t)
	loc := s.Location()

	tests := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"weekday mid-session", time.Date(2025, 6, 2, 11, 0, 0, 0, loc), true}, // Monday
		{"weekday at open", time.Date(2025, 6, 2, 9, 15, 0, 0, loc), true},
		{"weekday at close", time.Date(2025, 6, 2, 15, 30, 0, 0, loc), true},
		{"weekday before open", time.Date(2025, 6, 2, 9, 14, 0, 0, loc), false},
		{"weekday after close", time.Date(2025, 6, 2, 15, 31, 0, 0, loc), false},
		{"saturday", time.Date(2025, 6, 7, 11, 0, 0, 0, loc), false},
		{"sunday", time.Date(2025, 6, 8, 11, 0, 0, 0, loc), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, s.IsOpen(tt.at))
		})
	}
}

func TestNextOpen(t *testing.T) {
	s := newTestSchedule(t)
	loc := s.Location()

	// Friday after close rolls over to Monday.
	fridayEvening := time.Date(2025, 6, 6, 16, 0, 0, 0, loc)
	next := s.NextOpen(fridayEvening)
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 15, next.Minute())

	// Early morning on a trading day opens the same day.
	mondayMorning := time.Date(2025, 6, 2, 7, 0, 0, 0, loc)
	next = s.NextOpen(mondayMorning)
	assert.Equal(t, mondayMorning.Day(), next.Day())

	// During the session, NextOpen is "now".
	midSession := time.Date(2025, 6, 2, 11, 0, 0, 0, loc)
	assert.Equal(t, midSession, s.NextOpen(midSession))
}

func TestNewScheduleRejectsBadInput(t *testing.T) {
	_, err := NewSchedule("15:30", "09:15", "Asia/Kolkata")
	assert.Error(t, err)

	_, err = NewSchedule("9am", "15:30", "Asia/Kolkata")
	assert.Error(t, err)

	_, err = NewSchedule("09:15", "15:30", "Nowhere/Invalid")
	assert.Error(t, err)
}
