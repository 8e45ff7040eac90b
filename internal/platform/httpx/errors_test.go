package httpx

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/firedesk/timecard/internal/shared"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{shared.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", shared.ErrNotFound), http.StatusNotFound},
		{shared.ErrNoValidated, http.StatusBadRequest},
		{shared.ErrInvalidPayPeriod, http.StatusBadRequest},
		{shared.ErrInvalidState, http.StatusBadRequest},
		{shared.ErrAlreadySubmitted, http.StatusConflict},
		{shared.ErrInvalidCredentials, http.StatusUnauthorized},
		{shared.ErrUpstream, http.StatusBadGateway},
		{fmt.Errorf("anything else"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusFor(c.err); got != c.want {
			t.Fatalf("StatusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
