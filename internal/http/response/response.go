// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков. Успешные ответы отдаются как есть, ошибки
// и сообщения валидации заворачиваются в единый формат.
package response

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает JSON‑ответ с ошибкой.
// Поле Status всегда "Error", поле Error содержит текст ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// FieldError - сообщение валидации для одного поля запроса.
type FieldError struct {
	Param string `json:"param" example:"email"`
	Msg   string `json:"msg" example:"Please enter your email"`
}

// ValidationErrorResponse - ответ с ошибками валидации.
// Error повторяет сообщения через запятую для клиентов, которые читают только его.
type ValidationErrorResponse struct {
	Status string       `json:"status" example:"Error"`
	Error  string       `json:"error" example:"Please enter your name"`
	Errors []FieldError `json:"errors"`
}

// TokenResponse - тело успешной регистрации и входа.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse - тело ответа с коротким сообщением.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// StatusError - значение статуса для ответа с ошибкой.
const StatusError = "Error"

// Error возвращает ответ с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// NewValidator возвращает валидатор, который называет поля по их json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError формирует ответ со списком нарушений валидации.
func ValidationError(errs validator.ValidationErrors) ValidationErrorResponse {
	return ValidationErrorWithMessages(errs, nil)
}

// ValidationErrorWithMessages работает как ValidationError, но для полей из messages
// подставляет заданный текст вместо стандартного. Ключ - имя поля структуры.
func ValidationErrorWithMessages(errs validator.ValidationErrors, messages map[string]string) ValidationErrorResponse {
	fields := make([]FieldError, 0, len(errs))
	msgs := make([]string, 0, len(errs))

	for _, err := range errs {
		msg, ok := messages[err.StructField()]
		if !ok {
			msg = defaultMessage(err)
		}
		fields = append(fields, FieldError{Param: err.Field(), Msg: msg})
		msgs = append(msgs, msg)
	}
	return ValidationErrorResponse{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
		Errors: fields,
	}
}

// FieldValidationError формирует ответ валидации для одного поля.
func FieldValidationError(param, msg string) ValidationErrorResponse {
	return ValidationErrorResponse{
		Status: StatusError,
		Error:  msg,
		Errors: []FieldError{{Param: param, Msg: msg}},
	}
}

func defaultMessage(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", err.Field())
	case "email":
		return fmt.Sprintf("field %s must be a valid email", err.Field())
	case "min":
		return fmt.Sprintf("field %s must be at least %s characters long", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("field %s must be at most %s characters long", err.Field(), err.Param())
	default:
		return fmt.Sprintf("field %s is not valid", err.Field())
	}
}
