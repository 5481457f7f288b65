// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
	ErrInvalidState   = errors.New("invalid state")     // ストア上のデータ不整合
)

// エラーコード
const (
	CodeNotFound       = "NOT_FOUND"
	CodeValidation     = "VALIDATION_ERROR"
	CodeConflict       = "CONFLICT"
	CodeInvalidState   = "INVALID_STATE"
	CodeInternalServer = "INTERNAL_SERVER_ERROR"
)

var codeSentinels = map[string]error{
	CodeNotFound:       ErrNotFound,
	CodeValidation:     ErrInvalidInput,
	CodeConflict:       ErrConflict,
	CodeInvalidState:   ErrInvalidState,
	CodeInternalServer: ErrInternalServer,
}

// ErrorDetail は呼び出し元に見せるエラー内容です。
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// AppError はサービス層が返すエラーです。Err に根本原因を保持します。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is はエラーコードに対応するセンチネルエラーとの比較を可能にします。
// 例: NewAppError(CodeInternalServer, ..., dbErr) は ErrInternalServer として扱える
func (e *AppError) Is(target error) bool {
	sentinel, ok := codeSentinels[e.Detail.Code]
	return ok && sentinel == target
}
