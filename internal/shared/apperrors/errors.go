package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError erreur métier portant son statut HTTP et son code
type AppError struct {
	Status  int
	Code    string
	Message string
	Champs  map[string]string
	Details map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail ajoute une information dans "details"
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func Validation(champs map[string]string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "Erreur de validation", Champs: champs}
}

// ValidationField erreur de validation sur un seul champ
func ValidationField(champ, message string) *AppError {
	return Validation(map[string]string{champ: message})
}

func InvalidArgument(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: "INVALID_ARGUMENT", Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

func Conflict(code, message string) *AppError {
	return &AppError{Status: http.StatusConflict, Code: code, Message: message}
}

func Unauthorized(code, message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Code: code, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: message}
}

func TooManyRequests(message string) *AppError {
	return &AppError{Status: http.StatusTooManyRequests, Code: "TOO_MANY_REQUESTS", Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// As extrait une AppError de la chaîne d'erreurs
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound vrai pour une AppError 404
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Status == http.StatusNotFound
}
