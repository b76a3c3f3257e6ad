package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("missing"), http.StatusNotFound},
		{UnauthorizedErr("who"), http.StatusUnauthorized},
		{ForbiddenErr("no"), http.StatusForbidden},
		{ConflictErr("sold out"), http.StatusConflict},
		{Wrap(errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessageHidesInternalCause(t *testing.T) {
	err := Wrap(errors.New("dial tcp 10.0.0.3:3306: refused"))
	assert.Equal(t, genericMessage, PublicMessage(err))
	assert.Contains(t, err.Error(), "refused")
}

func TestWrapKeepsExistingAppError(t *testing.T) {
	orig := NotFoundErr("Product not found.")
	wrapped := fmt.Errorf("loading page: %w", orig)

	got := Wrap(wrapped)
	assert.Same(t, orig, got)
	assert.True(t, Is(wrapped, NotFound))
	assert.False(t, Is(wrapped, Conflict))
}

func TestWithCauseUnwraps(t *testing.T) {
	cause := errors.New("duplicate key")
	err := ConflictErr("Email already registered.").WithCause(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Email already registered.", PublicMessage(err))
}
