// internal/srs/scheduler.go
package srs

import (
	"math"
	"time"

	"vocab_srs/internal/model"

	"github.com/google/uuid"
)

// Scheduler は復習結果によるレベル遷移と、今日復習すべき単語の抽出を行います。
// 状態は持たず、時刻は注入された Clock からのみ取得します。
type Scheduler struct {
	clock Clock
}

// New は Scheduler を作成します。clock が nil の場合は SystemClock を使います。
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{clock: clock}
}

func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Transition は1回の復習結果による状態変化です。
type Transition struct {
	WordID    uuid.UUID
	IsCorrect bool
	From      model.Level
	To        model.Level
	Update    model.ReviewUpdate
}

func (t Transition) Promoted() bool { return rankOf(t.To) > rankOf(t.From) }
func (t Transition) Demoted() bool  { return rankOf(t.To) < rankOf(t.From) }

// Apply は復習結果から次の状態を計算します。word は変更しません。
// word が nil の場合は model.ErrNotFound、レベルが不正な場合は ErrInvalidState を返し、
// どちらも更新内容は返しません。
func (s *Scheduler) Apply(word *model.Word, isCorrect bool) (Transition, error) {
	if word == nil {
		return Transition{}, model.ErrNotFound
	}

	from := word.Level.Normalize()
	var (
		to  model.Level
		err error
	)
	if isCorrect {
		to, err = Promote(from)
	} else {
		to, err = Demote(from)
	}
	if err != nil {
		return Transition{}, err
	}

	reviewedAt := s.clock.Now()
	// lastReviewedAt は単調非減少。時計が巻き戻った場合は前回値を維持する
	if word.LastReviewedAt != nil && reviewedAt.Before(*word.LastReviewedAt) {
		reviewedAt = *word.LastReviewedAt
	}
	next, err := NextReviewDate(to, reviewedAt)
	if err != nil {
		return Transition{}, err
	}

	update := model.ReviewUpdate{
		Level:          to,
		LastReviewedAt: reviewedAt,
		NextReviewDate: next,
		CorrectCount:   word.CorrectCount,
		WrongCount:     word.WrongCount,
		UpdatedAt:      reviewedAt,
	}
	if isCorrect {
		update.CorrectCount++
	} else {
		update.WrongCount++
	}

	return Transition{
		WordID:    word.WordID,
		IsCorrect: isCorrect,
		From:      from,
		To:        to,
		Update:    update,
	}, nil
}

// IsDue は word が now の時点で復習対象かどうかを判定します。
//   - new は常に対象
//   - それ以外は lastReviewedAt があり、経過日数(切り捨て)が間隔以上なら対象
//   - new 以外で lastReviewedAt が無いものは対象外
func IsDue(word *model.Word, now time.Time) (bool, error) {
	if word == nil {
		return false, model.ErrNotFound
	}
	level := word.Level.Normalize()
	days, err := IntervalDays(level)
	if err != nil {
		return false, err
	}
	if level == model.LevelNew {
		return true, nil
	}
	if word.LastReviewedAt == nil {
		return false, nil
	}
	return elapsedDays(*word.LastReviewedAt, now) >= days, nil
}

// InvalidRecord は抽出時にスキップされた単語です。
type InvalidRecord struct {
	Word *model.Word
	Err  error
}

// Due は今日復習すべき単語を入力順のまま返します。
func (s *Scheduler) Due(words []*model.Word) []*model.Word {
	due, _ := s.DueWithErrors(words)
	return due
}

// DueWithErrors は Due と同じですが、レベル不正でスキップした単語も返します。
// 1件の不正が他の単語の判定に影響することはありません。
func (s *Scheduler) DueWithErrors(words []*model.Word) ([]*model.Word, []InvalidRecord) {
	now := s.clock.Now()
	due := make([]*model.Word, 0, len(words))
	var invalid []InvalidRecord
	for _, w := range words {
		if w == nil {
			continue
		}
		ok, err := IsDue(w, now)
		if err != nil {
			invalid = append(invalid, InvalidRecord{Word: w, Err: err})
			continue
		}
		if ok {
			due = append(due, w)
		}
	}
	return due, invalid
}

func elapsedDays(from, now time.Time) int {
	return int(math.Floor(now.Sub(from).Hours() / 24))
}

func rankOf(l model.Level) int {
	idx, _ := l.Rank()
	return idx
}
