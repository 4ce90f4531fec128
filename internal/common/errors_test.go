package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewUserError("could not open the pattern store", inner)

	assert.Equal(t, "could not open the pattern store: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)

	var userErr *UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, "could not open the pattern store", userErr.UserMessage)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := NewUserError("nothing to analyze", nil)
	assert.Equal(t, "nothing to analyze", err.Error())
}

func TestSentinelWrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrInvalidScore)
	assert.ErrorIs(t, wrapped, ErrInvalidScore)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
}
