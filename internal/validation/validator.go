// internal/validation/validator.go
package validation

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"vocab_srs/internal/model"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// model.Level 用のカスタムタグ
	if err := Validator.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		return model.Level(fl.Field().String()).IsValid()
	}); err != nil {
		log.Fatal(err)
	}

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		})
	}
	registerTranslation("required", "{0} is required")
	registerTranslation("level", "{0} must be one of new, weak, medium, strong, master, legend")
}

// Struct は構造体を検証し、最初の違反を AppError (VALIDATION_ERROR) として返します。
// 違反の一覧は Messages で取り出せます。
func Struct(v interface{}) error {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return model.NewAppError(model.CodeValidation, fe.Translate(Trans), fe.Field(), errors.Join(model.ErrInvalidInput, verrs))
	}
	// InvalidValidationError など (nil や非構造体を渡した場合)
	return model.NewAppError(model.CodeValidation, err.Error(), "", model.ErrInvalidInput)
}

// Messages はすべての違反をフィールド名 -> メッセージで返します。
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(Trans)
	}
	return out
}
