// Package recordquery filters and orders attendance history for list views.
package recordquery

import (
	"sort"
	"strings"
	"time"

	"employee-portal/internal/apperror"
	"employee-portal/internal/worktime"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var ErrInvalidQuery = apperror.Validation("invalid_query", "invalid history query")

// Record is anything the engine can filter and sort.
type Record interface {
	RecordTime() time.Time
	RecordUsername() string
	RecordDuration() worktime.Duration
}

type Field string

const (
	FieldDate     Field = "date"
	FieldUsername Field = "username"
	FieldDuration Field = "duration"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Criteria bounds are inclusive; nil means unbounded. A zero MinHours keeps everything.
type Criteria struct {
	StartDate *time.Time
	EndDate   *time.Time
	MinHours  decimal.Decimal
}

type Query struct {
	Criteria  Criteria
	Field     Field
	Direction Direction
}

var sixty = decimal.NewFromInt(60)

// Filter returns the records matching c, in input order.
func Filter[R Record](records []R, c Criteria) []R {
	threshold := c.MinHours.Mul(sixty)
	out := make([]R, 0, len(records))
	for _, r := range records {
		ts := r.RecordTime()
		if c.StartDate != nil && ts.Before(*c.StartDate) {
			continue
		}
		if c.EndDate != nil && ts.After(*c.EndDate) {
			continue
		}
		if decimal.NewFromInt(r.RecordDuration().TotalMinutes()).LessThan(threshold) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort returns a sorted copy. Records with equal keys keep their input order
// in both directions.
func Sort[R Record](records []R, field Field, dir Direction) []R {
	out := make([]R, len(records))
	copy(out, records)

	cmp := comparator[R](field)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Asc {
			return cmp(out[i], out[j]) < 0
		}
		return cmp(out[j], out[i]) < 0
	})
	return out
}

func Apply[R Record](records []R, q Query) []R {
	return Sort(Filter(records, q.Criteria), q.Field, q.Direction)
}

func comparator[R Record](field Field) func(a, b R) int {
	switch field {
	case FieldUsername:
		return func(a, b R) int {
			return strings.Compare(strings.ToLower(a.RecordUsername()), strings.ToLower(b.RecordUsername()))
		}
	case FieldDuration:
		return func(a, b R) int {
			return compareInt64(a.RecordDuration().TotalMinutes(), b.RecordDuration().TotalMinutes())
		}
	default:
		return func(a, b R) int {
			return a.RecordTime().Compare(b.RecordTime())
		}
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ParseQuery reads the raw query-string values of a history request.
// Empty values fall back to date/desc with no bounds.
func ParseQuery(startDate, endDate, minHours, field, direction string) (Query, error) {
	c, err := ParseCriteria(startDate, endDate, minHours)
	if err != nil {
		return Query{}, err
	}
	f, err := ParseField(field)
	if err != nil {
		return Query{}, err
	}
	d, err := ParseDirection(direction)
	if err != nil {
		return Query{}, err
	}
	return Query{Criteria: c, Field: f, Direction: d}, nil
}

// ParseCriteria accepts YYYY-MM-DD or RFC 3339 bounds. A date-only end bound
// covers the whole day (UTC).
func ParseCriteria(startDate, endDate, minHours string) (Criteria, error) {
	var c Criteria
	var fields []apperror.FieldError

	if s := strings.TrimSpace(startDate); s != "" {
		t, err := parseBound(s, false)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "start_date", Message: "must be YYYY-MM-DD or RFC 3339"})
		} else {
			c.StartDate = &t
		}
	}
	if s := strings.TrimSpace(endDate); s != "" {
		t, err := parseBound(s, true)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "end_date", Message: "must be YYYY-MM-DD or RFC 3339"})
		} else {
			c.EndDate = &t
		}
	}
	if s := strings.TrimSpace(minHours); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			fields = append(fields, apperror.FieldError{Field: "min_hours", Message: "must be a non-negative number"})
		} else {
			c.MinHours = d
		}
	}
	if c.StartDate != nil && c.EndDate != nil && c.StartDate.After(*c.EndDate) {
		fields = append(fields, apperror.FieldError{Field: "start_date", Message: "must not be after end_date"})
	}

	if len(fields) > 0 {
		return Criteria{}, ErrInvalidQuery.WithFields(fields...)
	}
	return c, nil
}

func parseBound(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date":
		return FieldDate, nil
	case "username":
		return FieldUsername, nil
	case "duration", "working_hours", "working hours":
		return FieldDuration, nil
	}
	return "", ErrInvalidQuery.WithFields(apperror.FieldError{Field: "sort", Message: "must be one of date, username, duration"})
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return Desc, nil
	case "asc":
		return Asc, nil
	}
	return "", ErrInvalidQuery.WithFields(apperror.FieldError{Field: "order", Message: "must be asc or desc"})
}
