package response

import (
	"errors"
	"net/http"
	"testing"

	xerrors "lifesure-service/internal/pkg/errors"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{xerrors.ErrUnauthorized, http.StatusUnauthorized},
		{xerrors.ErrForbidden, http.StatusForbidden},
		{xerrors.ErrNotFound, http.StatusNotFound},
		{xerrors.ErrInvalidInput, http.StatusBadRequest},
		{xerrors.ErrConflict, http.StatusConflict},
		{xerrors.ErrRateLimited, http.StatusTooManyRequests},
		{xerrors.ErrInternal, http.StatusInternalServerError},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
		// Wrapped sentinels keep their status.
		{xerrors.Wrap(xerrors.ErrForbidden, "requires role admin"), http.StatusForbidden},
		{xerrors.Wrap(xerrors.ErrConflict, "rejected application is terminal"), http.StatusConflict},
	}

	for _, tc := range cases {
		if got := StatusOf(tc.err); got != tc.want {
			t.Errorf("StatusOf(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
