package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPStatus maps the code of err to a response status
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeDecodeError:
		return http.StatusUnprocessableEntity
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromRequestBody classifies a failure to read or bind a request body.
// Bodies cut off by http.MaxBytesReader become PAYLOAD_TOO_LARGE.
func FromRequestBody(err error) error {
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return &AppError{Code: CodeTooLarge, Message: TooLarge(tooLarge.Limit).Message, Cause: err}
	}
	return &AppError{Code: CodeInvalidInput, Message: "invalid request body", Cause: err}
}
