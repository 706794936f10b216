// Package worktime converts clock-in/clock-out pairs into worked durations.
package worktime

import (
	"fmt"
	"time"

	"employee-portal/internal/apperror"
)

var ErrInvalidInterval = apperror.Validation("invalid_interval", "end time is before start time")

// Duration is a worked time span in whole units.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Elapsed breaks end-start into hours, minutes and seconds. Sub-second
// remainders are dropped.
func Elapsed(start, end time.Time) (Duration, error) {
	if end.Before(start) {
		return Duration{}, ErrInvalidInterval
	}
	return FromSeconds(int64(end.Sub(start) / time.Second)), nil
}

func FromSeconds(total int64) Duration {
	return Duration{
		Hours:   int(total / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

func (d Duration) TotalSeconds() int64 {
	return int64(d.Hours)*3600 + int64(d.Minutes)*60 + int64(d.Seconds)
}

// TotalMinutes ignores the seconds component.
func (d Duration) TotalMinutes() int64 {
	return int64(d.Hours)*60 + int64(d.Minutes)
}

func (d Duration) String() string { return Format(d) }

// Format renders d as HH:MM:SS. Hours wider than two digits are printed in full.
func Format(d Duration) string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}
