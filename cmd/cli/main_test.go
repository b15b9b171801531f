package main

import (
	"io"
	"testing"

	"csvplot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryRejectsUnknownPolicy(t *testing.T) {
	cmd := newSummaryCmd()
	cmd.SetArgs([]string{"--policy", "bogus", "missing.csv"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
