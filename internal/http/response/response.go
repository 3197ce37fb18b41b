// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Любой ответ несет поле
// "status" ("success" или "error"), ошибки дополнительно несут машиночитаемый
// "error_type" и человекочитаемый "error".
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// M — полезная нагрузка JSON-ответа.
type M map[string]any

const (
	// StatusSuccess — значение статуса для успешного ответа.
	StatusSuccess = "success"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "error"
)

// Машиночитаемые типы ошибок. Внутренние сбои (database_error,
// password_hash_error) отдаются наружу с минимальной деталью,
// полная причина остается в серверном логе.
const (
	TypeEmailAlreadyInUse = "email_already_in_use"
	TypeInvalidUser       = "invalid_user"
	TypeInvalidPassword   = "invalid_password"
	TypePasswordHash      = "password_hash_error"
	TypeDatabase          = "database_error"
	TypeNotFound          = "not_found"
	TypeNotLoggedIn       = "not_logged_in"
	TypeValidation        = "validation_error"
)

// Success возвращает успешный ответ с переданными полями,
// развернутыми на верхнем уровне рядом со "status".
func Success(payload M) M {
	if payload == nil {
		payload = M{}
	}
	payload["status"] = StatusSuccess
	return payload
}

// Error возвращает ответ с ошибкой указанного типа и сообщением.
func Error(errType, msg string) M {
	return M{
		"status":     StatusError,
		"error_type": errType,
		"error":      msg,
	}
}

// ValidationError формирует ответ со статусом error на основе ошибок валидации.
// Каждое нарушение формируется в человеко-читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) M {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than zero", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(TypeValidation, strings.Join(errsMsgs, ", "))
}
