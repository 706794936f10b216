package worktime

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedFullShift(t *testing.T) {
	in := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC)

	d, err := Elapsed(in, out)
	require.NoError(t, err)
	assert.Equal(t, Duration{Hours: 8, Minutes: 30, Seconds: 0}, d)
	assert.Equal(t, "08:30:00", Format(d))
}

func TestElapsedRejectsNegativeInterval(t *testing.T) {
	in := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	_, err := Elapsed(in, in.Add(-time.Second))
	assert.True(t, errors.Is(err, ErrInvalidInterval))
}

func TestElapsedBreakdownMatchesFloorSeconds(t *testing.T) {
	start := time.Date(2024, 3, 10, 22, 15, 7, 250_000_000, time.UTC)
	spans := []time.Duration{
		0,
		999 * time.Millisecond,
		time.Second,
		59*time.Minute + 59*time.Second + 999*time.Millisecond,
		25*time.Hour + 1*time.Minute + 1*time.Second,
		100*time.Hour + 5*time.Second,
	}

	for _, span := range spans {
		t.Run(span.String(), func(t *testing.T) {
			d, err := Elapsed(start, start.Add(span))
			require.NoError(t, err)

			assert.Equal(t, int64(span/time.Second), d.TotalSeconds())
			assert.GreaterOrEqual(t, d.Minutes, 0)
			assert.Less(t, d.Minutes, 60)
			assert.GreaterOrEqual(t, d.Seconds, 0)
			assert.Less(t, d.Seconds, 60)

			want := fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
			assert.Equal(t, want, Format(d))
		})
	}
}

func TestFormatPadsAndWidens(t *testing.T) {
	assert.Equal(t, "00:00:00", Format(Duration{}))
	assert.Equal(t, "01:02:03", Format(Duration{Hours: 1, Minutes: 2, Seconds: 3}))
	assert.Equal(t, "123:04:05", Format(Duration{Hours: 123, Minutes: 4, Seconds: 5}))
}

func TestTotalMinutesIgnoresSeconds(t *testing.T) {
	assert.Equal(t, int64(90), Duration{Hours: 1, Minutes: 30, Seconds: 59}.TotalMinutes())
}
