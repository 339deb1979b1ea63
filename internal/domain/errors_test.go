package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAppError(t *testing.T) {
	t.Run("unwraps_through_fmt_errorf", func(t *testing.T) {
		err := fmt.Errorf("get event 7: %w", ErrNotFound("event not found"))

		ae, ok := AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, CodeNotFound, ae.Code)
		assert.Equal(t, "event not found", ae.Message)
		assert.True(t, IsCode(err, CodeNotFound))
		assert.False(t, IsCode(err, CodeForbidden))
	})

	t.Run("plain_error_is_not_app_error", func(t *testing.T) {
		ae, ok := AsAppError(errors.New("db down"))
		assert.False(t, ok)
		assert.Nil(t, ae)
		assert.False(t, IsCode(nil, CodeValidation))
	})
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "forbidden: not the organizer", ErrForbidden("not the organizer").Error())
	assert.Equal(t, "validation_error: invalid query param (map[when:bad])",
		ErrValidationMeta("invalid query param", map[string]string{"when": "bad"}).Error())
}
