package repository

import (
	"Fanboard/internal/api/dto"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRosterCache_SaveAndGet(t *testing.T) {
	cache := NewLocalRosterCache(32*1024*1024, time.Hour)
	ctx := context.Background()

	got, err := cache.GetLatest(ctx, "club")
	require.NoError(t, err)
	assert.Nil(t, got)

	capturedAt := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, cache.SaveLatest(ctx, &LatestRoster{
		ClubID:     "club",
		CapturedAt: capturedAt,
		Records:    []*dto.MemberRecord{{ID: "a", Name: "Alice", Fans: 10, Gain: 5}},
	}))

	got, err = cache.GetLatest(ctx, "club")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.CapturedAt.Equal(capturedAt))
	require.Len(t, got.Records, 1)
	assert.Equal(t, int64(5), got.Records[0].Gain)

	other, err := cache.GetLatest(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, other)
}
