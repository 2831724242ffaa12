package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("message without origin", func(t *testing.T) {
		err := NotFound("post not found", nil)
		assert.Equal(t, "post not found", err.Error())
	})

	t.Run("message with origin", func(t *testing.T) {
		origin := errors.New("record not found")
		err := NotFound("post not found", origin)
		assert.Equal(t, "post not found: record not found", err.Error())
		assert.Equal(t, origin, errors.Unwrap(err))
	})

	t.Run("code matching", func(t *testing.T) {
		err := Invalid("score must be between 1 and 5", nil)
		assert.True(t, IsCode(err, ErrInvalidInput))
		assert.False(t, IsCode(err, ErrNotFound))
		assert.False(t, IsCode(errors.New("plain"), ErrInvalidInput))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("missing", nil), http.StatusNotFound},
		{Invalid("bad input", nil), http.StatusBadRequest},
		{Unauthenticated("login required"), http.StatusUnauthorized},
		{New(ErrForbidden, "not yours", nil), http.StatusForbidden},
		{New(ErrConflict, "raced", nil), http.StatusConflict},
		{New(ErrDuplicate, "taken", nil), http.StatusConflict},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err))
	}
}
