// internal/service/errors.go
package service

import (
	"errors"

	"vocab_srs/internal/model"
)

// toAppError はリポジトリ/スケジューラのエラーを AppError に変換します。
// 既に AppError の場合はそのまま返します。
func toAppError(err error, message string) error {
	var appErr *model.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, model.ErrNotFound):
		return model.NewAppError(model.CodeNotFound, "単語が見つかりませんでした。", "word_id", err)
	case errors.Is(err, model.ErrConflict):
		return model.NewAppError(model.CodeConflict, "同じ単語と意味の組み合わせが既に登録されています。", "word", err)
	case errors.Is(err, model.ErrInvalidState):
		return model.NewAppError(model.CodeInvalidState, "単語の学習レベルが不正です。", "level", err)
	case errors.Is(err, model.ErrInvalidInput):
		return model.NewAppError(model.CodeValidation, "入力内容が不正です。", "", err)
	default:
		return model.NewAppError(model.CodeInternalServer, message, "", err)
	}
}
