package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("load recipes: %w", ErrCatalogUnavailable.WithErr(cause))

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidRequest)

	// 同代碼的業務錯誤視為同類
	assert.ErrorIs(t, ErrEmptySelection, ErrInvalidRequest)
}

func TestCustomError_CopiesDoNotMutate(t *testing.T) {
	msg := ErrInvalidRequest.WithMessage("bad")
	assert.Equal(t, "bad", msg.Message)
	assert.Equal(t, "無效的請求", ErrInvalidRequest.Message)

	wrapped := ErrInternalError.WithErr(errors.New("x"))
	assert.Nil(t, ErrInternalError.Err)
	assert.Equal(t, "x", wrapped.Error())
}

func TestAsCustomError(t *testing.T) {
	ce := AsCustomError(fmt.Errorf("ctx: %w", ErrEmptySelection))
	assert.Same(t, ErrEmptySelection, ce)

	ce = AsCustomError(NewValidationError("requirements must not be empty"))
	assert.Equal(t, ErrCodeInvalidRequest, ce.Code)
	assert.Equal(t, http.StatusBadRequest, ce.Status)
	assert.Equal(t, "requirements must not be empty", ce.Message)

	ce = AsCustomError(errors.New("boom"))
	require.NotNil(t, ce)
	assert.Equal(t, ErrCodeInternalError, ce.Code)
	assert.Equal(t, http.StatusInternalServerError, ce.Status)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(fmt.Errorf("wrap: %w", NewValidationError("x"))))
	assert.False(t, IsValidationError(errors.New("x")))
}
