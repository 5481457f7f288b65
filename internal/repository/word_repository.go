//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"vocab_srs/internal/logging"
	"vocab_srs/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// WordRepository は単語レコードの永続化を担います。
// トランザクションに参加できるよう、DB接続は呼び出しごとに Service 層から渡されます。
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error)
	FindAll(ctx context.Context, db *gorm.DB, filter model.WordFilter) ([]*model.Word, error)
	ApplyReview(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, update model.ReviewUpdate) error
	Update(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, wordID uuid.UUID) error
	Exists(ctx context.Context, db *gorm.DB, word, meaning string) (bool, error)
	Groups(ctx context.Context, db *gorm.DB, stage string) ([]string, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

// pgErrUniqueViolation は PostgreSQL の一意制約違反コード
const pgErrUniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := logging.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate key error on create word",
				"error", result.Error,
				"word", word.Word,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"word", word.Word,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error) {
	logger := logging.GetLogger(ctx)
	var word model.Word
	result := db.WithContext(ctx).Where("word_id = ?", wordID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by ID in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

// FindAll は登録順 (created_at ASC) で単語を返します。
func (r *gormWordRepository) FindAll(ctx context.Context, db *gorm.DB, filter model.WordFilter) ([]*model.Word, error) {
	logger := logging.GetLogger(ctx)
	query := db.WithContext(ctx).Model(&model.Word{})
	if filter.Group != "" {
		query = query.Where("word_group = ?", filter.Group)
	}
	if filter.Stage != "" {
		query = query.Where("stage LIKE ?", "%"+filter.Stage+"%")
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.FavoriteOnly {
		query = query.Where("favorite = ?", true)
	}

	var words []*model.Word
	result := query.Order("created_at ASC").Order("word_id ASC").Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words in DB",
			"error", result.Error,
			"filter", filter,
		)
		return nil, fmt.Errorf("gormWordRepository.FindAll: %w", result.Error)
	}
	return words, nil
}

// ApplyReview は復習結果の部分更新を WordID をキーに書き込みます。
func (r *gormWordRepository) ApplyReview(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, update model.ReviewUpdate) error {
	return r.Update(ctx, tx, wordID, update.Columns())
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, updates map[string]interface{}) error {
	logger := logging.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("word_id = ?", wordID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, wordID uuid.UUID) error {
	logger := logging.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("word_id = ?", wordID).Delete(&model.Word{})
	if result.Error != nil {
		logger.Error("Error deleting word in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Exists は単語(大文字小文字を区別しない)と意味が一致するレコードがあるかを返します。
func (r *gormWordRepository) Exists(ctx context.Context, db *gorm.DB, word, meaning string) (bool, error) {
	logger := logging.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Word{}).
		Where("LOWER(word) = LOWER(?) AND meaning = ?", word, meaning).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error checking word existence in DB",
			"error", result.Error,
			"word", word,
		)
		return false, fmt.Errorf("gormWordRepository.Exists: %w", result.Error)
	}
	return count > 0, nil
}

// Groups は空でないグループ名を重複なしで返します。stage を指定すると部分一致で絞り込みます。
func (r *gormWordRepository) Groups(ctx context.Context, db *gorm.DB, stage string) ([]string, error) {
	logger := logging.GetLogger(ctx)
	query := db.WithContext(ctx).Model(&model.Word{}).Where("word_group <> ''")
	if stage != "" {
		query = query.Where("stage LIKE ?", "%"+stage+"%")
	}
	var groups []string
	result := query.Distinct("word_group").Order("word_group ASC").Pluck("word_group", &groups)
	if result.Error != nil {
		logger.Error("Error listing groups in DB", "error", result.Error)
		return nil, fmt.Errorf("gormWordRepository.Groups: %w", result.Error)
	}
	return groups, nil
}
