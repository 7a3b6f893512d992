package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errNotFound := New(KindNotFound, "mesa não encontrada")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", errNotFound, KindNotFound},
		{"wrapped with fmt", fmt.Errorf("buscar mesa: %w", errNotFound), KindNotFound},
		{"wrapped with Wrap", Wrap(New(KindConflict, "conflito"), "mesa %d", 5), KindConflict},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New(KindValidation, "valor inválido")
	err := Wrap(sentinel, "campo %s", "preco")

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, "valor inválido: campo preco", err.Error())
	assert.False(t, IsRetriable(err))
	assert.True(t, IsRetriable(New(KindConflict, "x")))
}
