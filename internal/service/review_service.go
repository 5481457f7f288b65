// internal/service/review_service.go
package service

import (
	"context"
	"errors"
	"log/slog"

	"vocab_srs/internal/config"
	"vocab_srs/internal/logging"
	"vocab_srs/internal/model"
	"vocab_srs/internal/quiz"
	"vocab_srs/internal/repository"
	"vocab_srs/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	GetDueWords(ctx context.Context) ([]*model.Word, error)
	CountDueWords(ctx context.Context) (int64, error)
	SubmitReviewResult(ctx context.Context, wordID uuid.UUID, isCorrect bool) (*model.Word, error)
	SubmitQuizResults(ctx context.Context, outcomes []quiz.Outcome) (*model.ReviewSummary, error)
}

type reviewService struct {
	db        *gorm.DB
	wordRepo  repository.WordRepository
	scheduler *srs.Scheduler
	cfg       *config.Config
}

func NewReviewService(db *gorm.DB, wordRepo repository.WordRepository, scheduler *srs.Scheduler, cfg *config.Config) ReviewService {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &reviewService{
		db:        db,
		wordRepo:  wordRepo,
		scheduler: scheduler,
		cfg:       cfg,
	}
}

// GetDueWords は今日学習・復習すべき単語を登録順で返します。
// review_limit が正の値なら先頭からその件数までに絞ります。
func (s *reviewService) GetDueWords(ctx context.Context) ([]*model.Word, error) {
	logger := logging.GetLogger(ctx)

	due, err := s.dueWords(ctx)
	if err != nil {
		return nil, err
	}
	if limit := s.cfg.App.ReviewLimit; limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	logger.Info("Successfully retrieved due words", "count", len(due))
	return due, nil
}

func (s *reviewService) CountDueWords(ctx context.Context) (int64, error) {
	due, err := s.dueWords(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(due)), nil
}

func (s *reviewService) dueWords(ctx context.Context) ([]*model.Word, error) {
	logger := logging.GetLogger(ctx)

	words, err := s.wordRepo.FindAll(ctx, s.db, model.WordFilter{})
	if err != nil {
		logger.Error("Failed to find words from repository", "error", err)
		return nil, model.NewAppError(model.CodeInternalServer, "復習単語の取得に失敗しました。", "", err)
	}

	due, invalid := s.scheduler.DueWithErrors(words)
	for _, rec := range invalid {
		// 不正なレコードはスキップし、他の単語の判定は続ける
		logger.Warn("Skipping word with invalid level",
			"word_id", rec.Word.WordID,
			"level", string(rec.Word.Level),
			"error", rec.Err,
		)
	}
	return due, nil
}

// SubmitReviewResult は1回分の復習結果を反映し、更新後の単語を返します。
// 単語が存在しない場合は何も書き込まず NOT_FOUND を返します。
func (s *reviewService) SubmitReviewResult(ctx context.Context, wordID uuid.UUID, isCorrect bool) (*model.Word, error) {
	word, _, err := s.submit(ctx, wordID, isCorrect)
	return word, err
}

func (s *reviewService) submit(ctx context.Context, wordID uuid.UUID, isCorrect bool) (*model.Word, srs.Transition, error) {
	logger := logging.GetLogger(ctx).With("word_id", wordID, "is_correct", isCorrect)

	var (
		updated    *model.Word
		transition srs.Transition
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.wordRepo.FindByID(ctx, tx, wordID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Info("Word not found, review result ignored")
			} else {
				logger.Error("Error finding word in transaction", "error", err)
			}
			return toAppError(err, "単語の取得中にエラーが発生しました。")
		}

		transition, err = s.scheduler.Apply(word, isCorrect)
		if err != nil {
			logger.Error("Failed to compute next review state", "level", string(word.Level), "error", err)
			return toAppError(err, "復習結果の計算に失敗しました。")
		}

		if err := s.wordRepo.ApplyReview(ctx, tx, wordID, transition.Update); err != nil {
			// 取得後に削除された場合など
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Failed to update word, record not found", "error", err)
			} else {
				logger.Error("Error applying review result", "error", err)
			}
			return toAppError(err, "学習進捗の更新に失敗しました。")
		}

		word.ApplyReview(transition.Update)
		updated = word
		return nil
	})
	if err != nil {
		return nil, srs.Transition{}, err
	}

	logger.Info("Review result applied",
		slog.String("from", string(transition.From)),
		slog.String("to", string(transition.To)),
		slog.Time("next_review_date", transition.Update.NextReviewDate),
	)
	return updated, transition, nil
}

// SubmitQuizResults はクイズの回答結果を単語ごとに独立して反映します。
// 1件の失敗は他の単語に影響しません。見つからない単語はスキップとして数えます。
func (s *reviewService) SubmitQuizResults(ctx context.Context, outcomes []quiz.Outcome) (*model.ReviewSummary, error) {
	logger := logging.GetLogger(ctx)
	summary := &model.ReviewSummary{}

	for _, o := range outcomes {
		_, tr, err := s.submit(ctx, o.WordID, o.IsCorrect)
		switch {
		case err == nil:
			summary.Applied++
			if tr.Promoted() {
				summary.Promoted++
			} else if tr.Demoted() {
				summary.Demoted++
			}
		case errors.Is(err, model.ErrNotFound):
			summary.Skipped++
		default:
			summary.Failed++
			summary.Errors = append(summary.Errors, model.ItemError{WordID: o.WordID, Err: err})
		}
	}

	logger.Info("Quiz results applied",
		"applied", summary.Applied,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}
