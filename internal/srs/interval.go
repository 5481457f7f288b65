// internal/srs/interval.go
package srs

import (
	"fmt"
	"time"

	"vocab_srs/internal/model"
)

// ErrInvalidState はレベルが列挙値の範囲外だった場合に返されます。
var ErrInvalidState = model.ErrInvalidState

// intervalDays はレベルごとの復習間隔(日)。レベルが上がるほど長くなる
var intervalDays = map[model.Level]int{
	model.LevelNew:    0,
	model.LevelWeak:   1,
	model.LevelMedium: 3,
	model.LevelStrong: 7,
	model.LevelMaster: 14,
	model.LevelLegend: 30,
}

// IntervalDays はレベルに対応する復習間隔を日数で返します。
func IntervalDays(level model.Level) (int, error) {
	days, ok := intervalDays[level.Normalize()]
	if !ok {
		return 0, invalidLevel(level)
	}
	return days, nil
}

// NextReviewDate は from から level の間隔 (1日=24時間) だけ進めた日時を返します。
// IsDue の経過日数と同じ日の長さを使うため、夏時間の切り替えをまたいでもずれません。
func NextReviewDate(level model.Level, from time.Time) (time.Time, error) {
	days, err := IntervalDays(level)
	if err != nil {
		return time.Time{}, err
	}
	return from.Add(time.Duration(days) * 24 * time.Hour), nil
}

// Promote は1つ上のレベルを返します。legend では据え置き。
func Promote(level model.Level) (model.Level, error) {
	idx, ok := level.Rank()
	if !ok {
		return "", invalidLevel(level)
	}
	if idx < len(model.Levels)-1 {
		idx++
	}
	return model.Levels[idx], nil
}

// Demote は1つ下のレベルを返します。new では据え置き。
func Demote(level model.Level) (model.Level, error) {
	idx, ok := level.Rank()
	if !ok {
		return "", invalidLevel(level)
	}
	if idx > 0 {
		idx--
	}
	return model.Levels[idx], nil
}

func invalidLevel(level model.Level) error {
	return fmt.Errorf("srs: unknown level %q: %w", string(level), ErrInvalidState)
}
