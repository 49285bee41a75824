package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		ErrCodeBookNotFound:     http.StatusNotFound,
		ErrCodeRecordNotFound:   http.StatusNotFound,
		ErrCodeBookNotAvailable: http.StatusBadRequest,
		ErrCodeValidation:       http.StatusBadRequest,
		ErrCodeBindError:        http.StatusBadRequest,
		ErrCodeAdapterFailure:   http.StatusInternalServerError,
		ErrCodeInternal:         http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code=%d", code)
	}
}

func TestAppError_Is(t *testing.T) {
	t.Run("包装后仍可识别预定义错误", func(t *testing.T) {
		err := fmt.Errorf("borrow: %w", ErrBookNotAvailable)
		assert.True(t, errors.Is(err, ErrBookNotAvailable))
		assert.False(t, errors.Is(err, ErrAlreadyReturned))
	})

	t.Run("IsNotFound覆盖所有404xx", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrBookNotFound))
		assert.True(t, IsNotFound(fmt.Errorf("x: %w", ErrUserNotFound)))
		assert.False(t, IsNotFound(ErrBookNotAvailable))
		assert.False(t, IsNotFound(errors.New("plain")))
	})
}

func TestValidation_KeepsStoreText(t *testing.T) {
	storeErr := errors.New("UNIQUE constraint failed: books.isbn")
	appErr := Validation(storeErr)

	assert.Equal(t, ErrCodeValidation, appErr.Code)
	assert.Equal(t, storeErr.Error(), appErr.Message)
	assert.ErrorIs(t, appErr, storeErr)
}

func TestGetAppError_WrapsPlainErrors(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(appErr.Code))
}

func TestAppError_Wrapf(t *testing.T) {
	cause := errors.New("EOF")
	appErr := ErrBindError.Wrapf(cause, "invalid request: %s", "title is required")

	assert.Equal(t, ErrCodeBindError, appErr.Code)
	assert.Equal(t, "invalid request: title is required", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(appErr.Code))
	assert.Equal(t, "malformed request body", ErrBindError.Message, "预定义错误不被修改")
}
