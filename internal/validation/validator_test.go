package validation

import (
	"errors"
	"testing"

	"vocab_srs/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type levelHolder struct {
	Level model.Level `json:"level" validate:"level"`
}

func TestStruct_CreateWordRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       model.CreateWordRequest
		wantField string
		wantMsg   string
	}{
		{
			name: "正常系: 必須項目のみ",
			req:  model.CreateWordRequest{Word: "apple", Meaning: "quả táo"},
		},
		{
			name:      "異常系: word が空",
			req:       model.CreateWordRequest{Meaning: "quả táo"},
			wantField: "word",
			wantMsg:   "word is required",
		},
		{
			name:      "異常系: meaning が空",
			req:       model.CreateWordRequest{Word: "apple"},
			wantField: "meaning",
			wantMsg:   "meaning is required",
		},
		{
			name:      "異常系: audio_url がURLでない",
			req:       model.CreateWordRequest{Word: "apple", Meaning: "quả táo", AudioURL: "not a url"},
			wantField: "audio_url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidInput)

			var appErr *model.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, model.CodeValidation, appErr.Detail.Code)
			assert.Equal(t, tt.wantField, appErr.Detail.Field)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, appErr.Detail.Message)
			}
		})
	}
}

func TestStruct_Level(t *testing.T) {
	assert.NoError(t, Struct(levelHolder{Level: model.LevelMaster}))
	assert.NoError(t, Struct(levelHolder{Level: ""}), "未設定は new 扱い")

	err := Struct(levelHolder{Level: "expert"})
	require.Error(t, err)
	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "level", appErr.Detail.Field)
	assert.Contains(t, appErr.Detail.Message, "must be one of")
}

func TestStruct_SubmitReviewRequest(t *testing.T) {
	err := Struct(model.SubmitReviewRequest{})
	require.Error(t, err)

	// AppError からも違反の一覧を取り出せる
	msgs := Messages(err)
	assert.Equal(t, "word_id is required", msgs["word_id"])
	assert.Equal(t, "is_correct is required", msgs["is_correct"])
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	correct := true
	assert.NoError(t, Struct(model.SubmitReviewRequest{WordID: uuid.New(), IsCorrect: &correct}))
}

func TestStruct_WordFilter(t *testing.T) {
	assert.NoError(t, Struct(model.WordFilter{}))
	assert.NoError(t, Struct(model.WordFilter{Level: model.LevelStrong, Group: "food"}))

	err := Struct(model.WordFilter{Level: "Strong"})
	require.Error(t, err)
	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "level", appErr.Detail.Field)
}

func TestStruct_NonStruct(t *testing.T) {
	err := Struct(nil)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Nil(t, Messages(errors.New("plain")))
}
