package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
)

func TestKinds(t *testing.T) {
	type testCase struct {
		name string
		err  error
		kind error
		msg  string
	}

	tests := []testCase{
		{"Validation", apperr.Validation("amount %d too big", 10), apperr.ErrValidation, "validation failed: amount 10 too big"},
		{"NotFound", apperr.NotFound("account"), apperr.ErrNotFound, "not found: account"},
		{"Conflict", apperr.Conflict("already linked"), apperr.ErrConflict, "conflict: already linked"},
		{"Unexpected", apperr.Unexpected("vanished"), apperr.ErrUnexpected, "unexpected error: vanished"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("creating transaction: %w", tt.err)

			assert.ErrorIs(t, wrapped, tt.kind)
			assert.True(t, apperr.Is(wrapped))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}

	assert.False(t, apperr.Is(errors.New("db down")))
}
