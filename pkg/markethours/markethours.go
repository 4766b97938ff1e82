package markethours

import (
	"fmt"
	"time"
)

// parseClock converts an "HH:MM" string to minutes since midnight.
func parseClock(s string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour*60 + minute, nil
}

// Schedule describes a market's trading window: a daily open/close time and
// the weekdays it trades on, in the market's local timezone.
type Schedule struct {
	openMinute  int
	closeMinute int
	weekdays    map[time.Weekday]bool
	location    *time.Location
}

// NewSchedule builds a Schedule from "HH:MM" open/close strings and an IANA
// timezone name. Trading days are Monday through Friday.
func NewSchedule(open, close, timezone string) (*Schedule, error) {
	openMin, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	closeMin, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}
	if closeMin <= openMin {
		return nil, fmt.Errorf("close time %s must be after open time %s", close, open)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	return &Schedule{
		openMinute:  openMin,
		closeMinute: closeMin,
		weekdays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		location: loc,
	}, nil
}

// Location returns the schedule's timezone.
func (s *Schedule) Location() *time.Location {
	return s.location
}

// IsOpen reports whether the market is open at t. The close minute itself is
// still considered open.
func (s *Schedule) IsOpen(t time.Time) bool {
	local := t.In(s.location)
	if !s.weekdays[local.Weekday()] {
		return false
	}
	minute := local.Hour()*60 + local.Minute()
	return minute >= s.openMinute && minute <= s.closeMinute
}

// IsTradingDay reports whether t falls on a trading weekday.
func (s *Schedule) IsTradingDay(t time.Time) bool {
	return s.weekdays[t.In(s.location).Weekday()]
}

// NextOpen returns the next market open at or after t. If the market is
// currently open, t itself is returned.
func (s *Schedule) NextOpen(t time.Time) time.Time {
	local := t.In(s.location)
	if s.IsOpen(local) {
		return local
	}

	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	for i := 0; i < 8; i++ {
		candidate := day.AddDate(0, 0, i).Add(time.Duration(s.openMinute) * time.Minute)
		if s.weekdays[candidate.Weekday()] && candidate.After(local) {
			return candidate
		}
	}
	// Unreachable with at least one trading weekday configured.
	return local
}
