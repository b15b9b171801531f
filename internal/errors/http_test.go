package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{DecodeError("could not parse file", nil), http.StatusUnprocessableEntity},
		{Wrap(DecodeError("could not parse file", nil), "upload failed"), http.StatusUnprocessableEntity},
		{InvalidInput("bad key"), http.StatusBadRequest},
		{TooLarge(10), http.StatusRequestEntityTooLarge},
		{NotFound("table"), http.StatusNotFound},
		{InternalError("template failed"), http.StatusInternalServerError},
		{stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, test := range tests {
		assert.Equal(t, test.status, HTTPStatus(test.err), "error %v", test.err)
	}
}

func TestFromRequestBody(t *testing.T) {
	assert.Nil(t, FromRequestBody(nil))

	limited := fmt.Errorf("read: %w", &http.MaxBytesError{Limit: 64})
	err := FromRequestBody(limited)
	assert.Equal(t, CodeTooLarge, GetCode(err))
	assert.Contains(t, err.Error(), "64 byte limit")

	assert.Equal(t, CodeInvalidInput, GetCode(FromRequestBody(stderrors.New("unexpected EOF"))))
}
