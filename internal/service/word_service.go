// internal/service/word_service.go
package service

import (
	"context"
	"strings"

	"vocab_srs/internal/logging"
	"vocab_srs/internal/model"
	"vocab_srs/internal/repository"
	"vocab_srs/internal/srs"
	"vocab_srs/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewStage は単語表の「要復習」フィルタで使うステージ名です
const ReviewStage = "Cần ôn"

type WordService interface {
	AddWord(ctx context.Context, req *model.CreateWordRequest) (*model.Word, error)
	GetWord(ctx context.Context, wordID uuid.UUID) (*model.Word, error)
	ListWords(ctx context.Context, filter model.WordFilter) ([]*model.Word, error)
	Groups(ctx context.Context, reviewOnly bool) ([]string, error)
	ToggleFavorite(ctx context.Context, wordID uuid.UUID) (*model.Word, error)
	UpdateIPA(ctx context.Context, wordID uuid.UUID, ipa string) error
	DeleteWord(ctx context.Context, wordID uuid.UUID) error
}

type wordService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	wordRepo repository.WordRepository
	clock    srs.Clock
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, clock srs.Clock) WordService {
	if clock == nil {
		clock = srs.SystemClock
	}
	return &wordService{
		db:       db,
		wordRepo: wordRepo,
		clock:    clock,
	}
}

// AddWord は新しい単語を level=new、カウンタ0、復習履歴なしで登録します。
func (s *wordService) AddWord(ctx context.Context, req *model.CreateWordRequest) (*model.Word, error) {
	if req == nil {
		return nil, model.NewAppError(model.CodeValidation, "リクエストが空です。", "", model.ErrInvalidInput)
	}
	in := *req
	in.Word = strings.TrimSpace(in.Word)
	in.Meaning = strings.TrimSpace(in.Meaning)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	logger := logging.GetLogger(ctx).With("word", in.Word)
	var created *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 重複チェック (単語は大文字小文字を区別しない)
		exists, err := s.wordRepo.Exists(ctx, tx, in.Word, in.Meaning)
		if err != nil {
			logger.Error("Error checking word existence in transaction", "error", err)
			return toAppError(err, "単語の重複確認に失敗しました。")
		}
		if exists {
			logger.Info("Word already exists")
			return toAppError(model.ErrConflict, "")
		}

		// 2. 単語を作成
		now := s.clock.Now()
		word := &model.Word{
			WordID:    uuid.New(),
			Word:      in.Word,
			Meaning:   in.Meaning,
			Example:   in.Example,
			IPA:       in.IPA,
			Synonym:   in.Synonym,
			Antonym:   in.Antonym,
			Phrase:    in.Phrase,
			Group:     in.Group,
			Stage:     in.Stage,
			Note:      in.Note,
			AudioURL:  in.AudioURL,
			Level:     model.LevelNew,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.wordRepo.Create(ctx, tx, word); err != nil {
			logger.Error("Error creating word in transaction", "error", err)
			return toAppError(err, "単語の作成に失敗しました。")
		}
		created = word
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word created", "word_id", created.WordID)
	return created, nil
}

func (s *wordService) GetWord(ctx context.Context, wordID uuid.UUID) (*model.Word, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, wordID)
	if err != nil {
		return nil, toAppError(err, "単語の取得に失敗しました。")
	}
	return word, nil
}

func (s *wordService) ListWords(ctx context.Context, filter model.WordFilter) ([]*model.Word, error) {
	if err := validation.Struct(&filter); err != nil {
		return nil, err
	}
	words, err := s.wordRepo.FindAll(ctx, s.db, filter)
	if err != nil {
		return nil, toAppError(err, "単語一覧の取得に失敗しました。")
	}
	return words, nil
}

// Groups はグループ名の一覧を返します。reviewOnly の場合は要復習ステージの単語に限定します。
func (s *wordService) Groups(ctx context.Context, reviewOnly bool) ([]string, error) {
	stage := ""
	if reviewOnly {
		stage = ReviewStage
	}
	groups, err := s.wordRepo.Groups(ctx, s.db, stage)
	if err != nil {
		return nil, toAppError(err, "グループ一覧の取得に失敗しました。")
	}
	return groups, nil
}

func (s *wordService) ToggleFavorite(ctx context.Context, wordID uuid.UUID) (*model.Word, error) {
	var updated *model.Word
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.wordRepo.FindByID(ctx, tx, wordID)
		if err != nil {
			return toAppError(err, "単語の取得に失敗しました。")
		}
		now := s.clock.Now()
		word.Favorite = !word.Favorite
		word.UpdatedAt = now
		if err := s.wordRepo.Update(ctx, tx, wordID, map[string]interface{}{"favorite": word.Favorite, "updated_at": now}); err != nil {
			return toAppError(err, "お気に入りの更新に失敗しました。")
		}
		updated = word
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *wordService) UpdateIPA(ctx context.Context, wordID uuid.UUID, ipa string) error {
	updates := map[string]interface{}{
		"ipa":        strings.TrimSpace(ipa),
		"updated_at": s.clock.Now(),
	}
	if err := s.wordRepo.Update(ctx, s.db, wordID, updates); err != nil {
		return toAppError(err, "発音記号の更新に失敗しました。")
	}
	return nil
}

func (s *wordService) DeleteWord(ctx context.Context, wordID uuid.UUID) error {
	if err := s.wordRepo.Delete(ctx, s.db, wordID); err != nil {
		return toAppError(err, "単語の削除に失敗しました。")
	}
	logging.GetLogger(ctx).Info("Word deleted", "word_id", wordID)
	return nil
}
