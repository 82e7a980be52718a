package types

import (
	"fmt"
	"net/http"
)

// Error types carried in API error bodies
const (
	ErrTypeBadRequest  = "badRequest"
	ErrTypeNotFound    = "notFound"
	ErrTypeConflict    = "conflict"
	ErrTypeValidation  = "validation"
	ErrTypeInternal    = "internal"
	ErrTypeUnavailable = "unavailable"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func NotFound(format string, args ...interface{}) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...), Type: ErrTypeNotFound}
}

func Conflict(format string, args ...interface{}) *CustomError {
	return &CustomError{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...), Type: ErrTypeConflict}
}

func BadRequest(format string, args ...interface{}) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), Type: ErrTypeBadRequest}
}

// Unprocessable is a semantic rejection of an otherwise valid body
func Unprocessable(format string, args ...interface{}) *CustomError {
	return &CustomError{Code: http.StatusUnprocessableEntity, Message: fmt.Sprintf(format, args...), Type: ErrTypeValidation}
}

func Internal(format string, args ...interface{}) *CustomError {
	return &CustomError{Code: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...), Type: ErrTypeInternal}
}

func Unavailable(format string, args ...interface{}) *CustomError {
	return &CustomError{Code: http.StatusServiceUnavailable, Message: fmt.Sprintf(format, args...), Type: ErrTypeUnavailable}
}
