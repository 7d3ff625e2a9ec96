package ledgererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "bad amount",
			err: &ParseError{
				Field: "amount",
				Value: "abc",
				Err:   errors.New("can't convert abc to decimal"),
			},
			expected: "failed to parse amount='abc': can't convert abc to decimal",
		},
		{
			name: "empty term",
			err: &ParseError{
				Field: "termMonths",
				Value: "",
				Err:   errors.New("empty"),
			},
			expected: "failed to parse termMonths='': empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Field: "amount", Value: "x", Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
	assert.True(t, errors.Is(parseErr, ErrValidation))
}

func TestValidationError(t *testing.T) {
	err := Invalid("transaction", "expense requires a revenue stream")

	assert.Equal(t, "invalid transaction: expense requires a revenue stream", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))

	var target *ValidationError
	assert.True(t, errors.As(fmt.Errorf("add: %w", err), &target))
	assert.Equal(t, "transaction", target.Entity)
}

func TestNotFoundError(t *testing.T) {
	err := NotFound("loan", "42")

	assert.Equal(t, "loan '42' not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("pay: %w", err), ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))

	var target *NotFoundError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "42", target.ID)
}
