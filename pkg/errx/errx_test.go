package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_New(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BROKEN", TypeBusiness, http.StatusBadRequest, "it broke")

	assert.Equal(t, Code("TEST_BROKEN"), code)

	err := reg.New(code)
	assert.Equal(t, "TEST_BROKEN", err.Code)
	assert.Equal(t, TypeBusiness, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "it broke", err.Message)
	assert.Nil(t, err.Details)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	reg := NewRegistry("DUP")
	reg.Register("X", TypeInternal, http.StatusInternalServerError, "x")

	assert.Panics(t, func() {
		reg.Register("X", TypeInternal, http.StatusInternalServerError, "x")
	})
}

func TestRegistry_UnknownCode(t *testing.T) {
	reg := NewRegistry("EMPTY")
	err := reg.New(Code("EMPTY_NOPE"))

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestError_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "calling upstream", TypeExternal)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_IsMatchesCode(t *testing.T) {
	reg := NewRegistry("CMP")
	code := reg.Register("SAME", TypeValidation, http.StatusBadRequest, "same")

	wrapped := fmt.Errorf("outer: %w", reg.New(code).WithDetail("field", "a"))

	assert.True(t, errors.Is(wrapped, reg.New(code)))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "a", e.Details["field"])
	assert.True(t, IsType(wrapped, TypeValidation))
	assert.False(t, IsType(wrapped, TypeExternal))
}
