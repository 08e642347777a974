package adapter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"code only", &Error{Code: CodeConfig}, "CONFIG_ERROR"},
		{"message only", NewError(CodeValidation, "bad %s", "uri"), "bad uri"},
		{"cause only", &Error{Code: CodeConnectionFailed, Err: cause}, "dial tcp: refused"},
		{"message and cause", WrapError(CodeConnectionFailed, cause, "failed to create session"), "failed to create session: dial tcp: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsMatchesCode(t *testing.T) {
	cause := errors.New("timeout")
	err := fmt.Errorf("connect: %w", WrapError(CodeConnectionFailed, cause, "failed"))

	assert.ErrorIs(t, err, ErrConnectionFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, CodeConnectionFailed, CodeOf(err))
	assert.Equal(t, Code(""), CodeOf(cause))
}
