package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsInnerCode(t *testing.T) {
	inner := DecodeError("could not parse file", fmt.Errorf("bad base64"))
	wrapped := Wrap(inner, "upload failed")

	assert.Equal(t, CodeDecodeError, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "upload failed")
	assert.Contains(t, wrapped.Error(), "bad base64")
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "context")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", InvalidInput("missing filename"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, stderrors.New("gone"))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, "gone", err.Error()[:4])
}
