package bakery_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/bakery"
	"github.com/syssam/bakery/schema"
)

func TestUnknownFieldTypeError(t *testing.T) {
	t.Parallel()

	err := bakery.NewUnknownFieldTypeError(schema.TypeEmail)
	assert.Contains(t, err.Error(), `"email"`)
	assert.ErrorIs(t, err, bakery.ErrUnknownFieldType)
	assert.True(t, bakery.IsUnknownFieldType(err))
	assert.True(t, bakery.IsUnknownFieldType(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, bakery.IsUnknownFieldType(nil))
	assert.False(t, bakery.IsUnknownFieldType(errors.New("other")))
}

func TestUnknownFieldErrorType(t *testing.T) {
	t.Parallel()

	err := bakery.NewUnknownFieldError("User", "ghost")
	assert.Contains(t, err.Error(), `"User"`)
	assert.Contains(t, err.Error(), `"ghost"`)
	assert.ErrorIs(t, err, bakery.ErrUnknownField)
	assert.True(t, bakery.IsUnknownField(err))
	assert.False(t, bakery.IsUnknownField(bakery.NewUnknownFieldTypeError(schema.TypeBool)))
}

func TestIncompleteInstanceErrorType(t *testing.T) {
	t.Parallel()

	err := bakery.NewIncompleteInstanceError("User", "name", "email")
	assert.Contains(t, err.Error(), "name, email")
	assert.ErrorIs(t, err, bakery.ErrIncompleteInstance)
	assert.True(t, bakery.IsIncompleteInstance(err))
}

func TestResolutionErrorType(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := bakery.NewResolutionError("corp.email", cause)
	assert.Contains(t, err.Error(), `"corp.email"`)
	assert.ErrorIs(t, err, bakery.ErrResolution)
	assert.ErrorIs(t, err, cause)
	assert.True(t, bakery.IsResolution(err))

	bare := bakery.NewResolutionError("corp.email", nil)
	assert.Contains(t, bare.Error(), "failed")
	assert.NoError(t, bare.Unwrap())
}

func TestErrorTypesAreDistinct(t *testing.T) {
	t.Parallel()

	err := bakery.NewUnknownFieldError("User", "ghost")
	assert.False(t, bakery.IsUnknownFieldType(err))
	assert.False(t, bakery.IsIncompleteInstance(err))
	assert.False(t, bakery.IsResolution(err))
}
