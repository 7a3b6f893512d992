package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "uq_contas_mesa_aberta"})

	assert.True(t, uniqueViolation(err, "uq_contas_mesa_aberta"))
	assert.True(t, uniqueViolation(err, ""))
	assert.False(t, uniqueViolation(err, "uq_mesas_numero"))
	assert.False(t, uniqueViolation(errors.New("outro erro"), ""))
}

func TestForeignKeyViolation(t *testing.T) {
	err := fmt.Errorf("delete: %w", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "contas_mesa_id_fkey"})

	assert.True(t, foreignKeyViolation(err))
	assert.False(t, foreignKeyViolation(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, foreignKeyViolation(errors.New("outro erro")))
}

func TestMapTxError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retriable bool
	}{
		{"falha de serialização", &pgconn.PgError{Code: codeSerializationFailure, Message: "could not serialize"}, true},
		{"deadlock", fmt.Errorf("commit: %w", &pgconn.PgError{Code: codeDeadlockDetected}), true},
		{"violação de unicidade", &pgconn.PgError{Code: codeUniqueViolation}, false},
		{"erro comum", errors.New("falhou"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapTxError(tt.err)
			assert.Equal(t, tt.retriable, apperror.IsRetriable(got))
			if tt.retriable {
				assert.ErrorIs(t, got, ErrConflict)
			} else {
				assert.Equal(t, tt.err, got)
			}
		})
	}
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	if s := nullString("mesa"); assert.NotNil(t, s) {
		assert.Equal(t, "mesa", *s)
	}
}
