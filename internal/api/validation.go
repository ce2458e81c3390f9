package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidationErrorResponse はGinのバインディングエラーをフィールド単位の
// バリデーションレスポンスへ変換します。validator以外のエラー（JSON構文エラー等）の
// 場合はフィールド詳細なしのレスポンスを返します。
func NewValidationErrorResponse(err error) ValidationErrorResponse {
	resp := ValidationErrorResponse{Message: "validation failed"}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return resp
	}

	for _, fe := range verrs {
		resp.Errors = append(resp.Errors, FieldError{
			Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Message: fieldMessage(fe),
		})
	}
	return resp
}

// fieldMessage は代表的なバリデーションタグを人間可読なメッセージへ変換します。
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "valid email required"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
