package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/stellar-empires/internal/protocol"
)

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"direct", ErrWrongTurn, protocol.ErrCodeWrongTurn},
		{"wrapped", fmt.Errorf("submit: %w", ErrNoEmpire), protocol.ErrCodeNoEmpire},
		{"foreign", errors.New("disk on fire"), protocol.ErrCodeUnknown},
		{"nil", nil, protocol.ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}
