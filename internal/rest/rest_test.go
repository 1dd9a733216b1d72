package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dealflow/internal/repository/postgres"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errors.New("investment not found"), http.StatusNotFound},
		{"cas conflict", postgres.ErrConflict, http.StatusConflict},
		{"wrapped conflict", fmt.Errorf("update activation state: %w", postgres.ErrConflict), http.StatusConflict},
		{"already exists", errors.New("email already exists"), http.StatusBadRequest},
		{"validation", errors.New("invalid status"), http.StatusBadRequest},
		{"missing field", errors.New("nudge id is required"), http.StatusBadRequest},
		{"empty portfolio", errors.New("no investments to forecast"), http.StatusBadRequest},
		{"anything else", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}
