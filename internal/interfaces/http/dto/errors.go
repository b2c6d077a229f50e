package dto

import "net/http"

// API error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodePayloadSize  = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeInternal     = "ERR_INTERNAL"
)

// domainCodeMapping translates domain error codes to API error codes.
// Domain codes not listed here fall back by prefix in
// NormalizeErrorCode.
var domainCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeConflict,
	"CONFLICT":       ErrCodeConflict,
	"INVALID_INPUT":  ErrCodeBadRequest,
	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"FORBIDDEN":      ErrCodeForbidden,
	"INVALID_STATE":  ErrCodeInvalidState,
	"INTERNAL_ERROR": ErrCodeInternal,
}

// errorCodeHTTPStatus maps API error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodePayloadSize:  http.StatusRequestEntityTooLarge,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// NormalizeErrorCode turns a domain error code into an API error code.
// Codes like INVALID_PRICE or INVALID_PHONE are validation failures of
// specific fields and map to a bad request.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainCodeMapping[code]; ok {
		return mapped
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return ErrCodeBadRequest
	}
	return ErrCodeInternal
}

// GetHTTPStatus returns the HTTP status for an API error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
