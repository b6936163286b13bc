// Package handler exposes the HTTP handlers of the service. Every endpoint
// answers with the same envelope so clients can handle success and failure
// uniformly: {success, data, message, error:{code, message, details}}.
package handler

import "github.com/labstack/echo/v4"

// ErrorDetails is the error half of the response envelope.
type ErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// Envelope is the uniform response shape of every endpoint.
type Envelope struct {
	Success bool          `json:"success"`
	Data    any           `json:"data"`
	Message *string       `json:"message"`
	Error   *ErrorDetails `json:"error"`
}

// Error codes used across handlers and middleware.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountDisabled    = "ACCOUNT_DISABLED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeAlreadyEnrolled    = "ALREADY_ENROLLED"
	CodeNotEnrolled        = "NOT_ENROLLED"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// ok writes a success envelope with optional data.
func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// okMsg writes a success envelope with data and a human-readable message.
func okMsg(c echo.Context, status int, data any, msg string) error {
	return c.JSON(status, Envelope{Success: true, Data: data, Message: &msg})
}

// fail writes a failure envelope with an error code and message.
func fail(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: &ErrorDetails{Code: code, Message: msg}})
}
