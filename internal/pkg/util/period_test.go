package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodStart(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)

	cases := []struct {
		period string
		now    time.Time
		expect time.Time
	}{
		{"day", time.Date(2024, time.June, 12, 15, 30, 0, 0, loc), time.Date(2024, time.June, 12, 0, 0, 0, 0, loc)},
		// 2024-06-12 是周三
		{"week", time.Date(2024, time.June, 12, 15, 30, 0, 0, loc), time.Date(2024, time.June, 10, 0, 0, 0, 0, loc)},
		{"week", time.Date(2024, time.June, 10, 0, 0, 0, 0, loc), time.Date(2024, time.June, 10, 0, 0, 0, 0, loc)},
		{"week", time.Date(2024, time.June, 16, 23, 59, 0, 0, loc), time.Date(2024, time.June, 10, 0, 0, 0, 0, loc)},
		{"month", time.Date(2024, time.June, 30, 8, 0, 0, 0, loc), time.Date(2024, time.June, 1, 0, 0, 0, 0, loc)},
	}

	for _, c := range cases {
		start, err := PeriodStart(c.period, c.now)
		require.NoError(t, err)
		assert.True(t, c.expect.Equal(start), "%s %s -> %s", c.period, c.now, start)
	}

	_, err := PeriodStart("year", time.Now())
	assert.Error(t, err)
}

func TestParseSince(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)

	d, err := ParseSince("2024-06-01", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, loc).Equal(d))

	d, err = ParseSince("2024-06-01T00:00:00", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, loc).Equal(d))

	d, err = ParseSince("2024-06-01T00:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC).Equal(d))

	_, err = ParseSince("yesterday", loc)
	assert.Error(t, err)
}
