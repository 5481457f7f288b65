// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewUpdate は復習結果1回分の部分更新です。ストアは WordID をキーに適用します。
type ReviewUpdate struct {
	Level          Level
	LastReviewedAt time.Time
	NextReviewDate time.Time
	CorrectCount   int
	WrongCount     int
	UpdatedAt      time.Time
}

// Columns は gorm の Updates に渡すカラムマップを返します。
// map で渡すことでゼロ値(カウンタ0など)も確実に書き込まれる
func (u ReviewUpdate) Columns() map[string]interface{} {
	return map[string]interface{}{
		"level":            u.Level,
		"last_reviewed_at": u.LastReviewedAt,
		"next_review_date": u.NextReviewDate,
		"correct_count":    u.CorrectCount,
		"wrong_count":      u.WrongCount,
		"updated_at":       u.UpdatedAt,
	}
}

// SubmitReviewRequest は復習結果送信リクエストのDTO
type SubmitReviewRequest struct {
	WordID    uuid.UUID `json:"word_id" validate:"required"`
	IsCorrect *bool     `json:"is_correct" validate:"required"`
}

// ReviewSummary はクイズ結果をまとめて適用した結果です
type ReviewSummary struct {
	Applied  int         `json:"applied"`
	Skipped  int         `json:"skipped"` // 対象の単語が見つからなかった件数
	Failed   int         `json:"failed"`
	Promoted int         `json:"promoted"`
	Demoted  int         `json:"demoted"`
	Errors   []ItemError `json:"errors,omitempty"`
}

// ItemError は1件分の失敗理由です。他の単語の処理には影響しません
type ItemError struct {
	WordID uuid.UUID `json:"word_id"`
	Err    error     `json:"-"`
}
