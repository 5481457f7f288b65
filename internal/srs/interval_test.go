package srs_test

import (
	"testing"
	"time"

	"vocab_srs/internal/model"
	"vocab_srs/internal/srs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		level model.Level
		want  int
	}{
		{model.LevelNew, 0},
		{model.LevelWeak, 1},
		{model.LevelMedium, 3},
		{model.LevelStrong, 7},
		{model.LevelMaster, 14},
		{model.LevelLegend, 30},
		{"", 0}, // 未設定は new 扱い
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got, err := srs.IntervalDays(tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntervalDays_NonDecreasing(t *testing.T) {
	prev := -1
	for _, l := range model.Levels {
		days, err := srs.IntervalDays(l)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, days, prev, "level %s", l)
		prev = days
	}
}

func TestIntervalDays_InvalidLevel(t *testing.T) {
	_, err := srs.IntervalDays("expert")
	require.Error(t, err)
	assert.ErrorIs(t, err, srs.ErrInvalidState)
	assert.ErrorIs(t, err, model.ErrInvalidState)
}

func TestPromoteDemote(t *testing.T) {
	for i, l := range model.Levels {
		up, err := srs.Promote(l)
		require.NoError(t, err)
		down, err := srs.Demote(l)
		require.NoError(t, err)

		if i == len(model.Levels)-1 {
			assert.Equal(t, model.LevelLegend, up, "legend は据え置き")
		} else {
			assert.Equal(t, model.Levels[i+1], up)
		}
		if i == 0 {
			assert.Equal(t, model.LevelNew, down, "new は据え置き")
		} else {
			assert.Equal(t, model.Levels[i-1], down)
		}
	}

	_, err := srs.Promote("bogus")
	assert.ErrorIs(t, err, srs.ErrInvalidState)
	_, err = srs.Demote("bogus")
	assert.ErrorIs(t, err, srs.ErrInvalidState)
}

func TestNextReviewDate(t *testing.T) {
	from := time.Date(2024, 1, 30, 9, 0, 0, 0, time.UTC)

	got, err := srs.NextReviewDate(model.LevelStrong, from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 6, 9, 0, 0, 0, time.UTC), got)

	got, err = srs.NextReviewDate(model.LevelNew, from)
	require.NoError(t, err)
	assert.Equal(t, from, got)

	_, err = srs.NextReviewDate("bogus", from)
	assert.ErrorIs(t, err, srs.ErrInvalidState)
}
