// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Word は単語とその学習状態を表します
type Word struct {
	WordID uuid.UUID `gorm:"type:uuid;primaryKey" json:"word_id"`

	// 表示用フィールド
	Word     string `gorm:"not null;uniqueIndex:idx_word_meaning" json:"word"`
	Meaning  string `gorm:"not null;uniqueIndex:idx_word_meaning" json:"meaning"`
	Example  string `json:"example"`
	IPA      string `gorm:"column:ipa" json:"ipa"`
	Synonym  string `json:"synonym"`
	Antonym  string `json:"antonym"`
	Phrase   string `json:"phrase"`
	Group    string `gorm:"column:word_group;index" json:"group"` // group は予約語
	Stage    string `json:"stage"`
	Note     string `json:"note"`
	AudioURL string `gorm:"column:audio_url" json:"audio_url"`
	Favorite bool   `gorm:"not null" json:"favorite"`

	// 復習スケジュール関連
	Level          Level      `gorm:"type:varchar(16);not null;index" json:"level"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewDate *time.Time `gorm:"index" json:"next_review_date,omitempty"`
	CorrectCount   int        `gorm:"not null" json:"correct_count"`
	WrongCount     int        `gorm:"not null" json:"wrong_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Word) TableName() string {
	return "words"
}

// ApplyReview は永続化済みの更新内容をエンティティにも反映します。
func (w *Word) ApplyReview(u ReviewUpdate) {
	lastReviewedAt := u.LastReviewedAt
	nextReviewDate := u.NextReviewDate
	w.Level = u.Level
	w.LastReviewedAt = &lastReviewedAt
	w.NextReviewDate = &nextReviewDate
	w.CorrectCount = u.CorrectCount
	w.WrongCount = u.WrongCount
	w.UpdatedAt = u.UpdatedAt
}

// WordFilter は単語一覧の絞り込み条件です (単語表のフィルタに対応)
type WordFilter struct {
	Group        string `json:"group"`
	Stage        string `json:"stage"` // 部分一致
	Level        Level  `json:"level" validate:"level"`
	FavoriteOnly bool   `json:"favorite_only"`
}

// 単語作成リクエストDTO
type CreateWordRequest struct {
	Word     string `json:"word" validate:"required,max=200"`
	Meaning  string `json:"meaning" validate:"required,max=500"`
	Example  string `json:"example" validate:"max=1000"`
	IPA      string `json:"ipa" validate:"max=200"`
	Synonym  string `json:"synonym"`
	Antonym  string `json:"antonym"`
	Phrase   string `json:"phrase"`
	Group    string `json:"group" validate:"max=100"`
	Stage    string `json:"stage"`
	Note     string `json:"note"`
	AudioURL string `json:"audio_url" validate:"omitempty,url"`
}
