package apperror

import (
	"errors"
	"fmt"
)

// Kind classifica um erro de aplicação
type Kind string

const (
	KindValidation        Kind = "validation"         // Dados de entrada inválidos
	KindInvalidTransition Kind = "invalid_transition" // Transição de estado não permitida
	KindPrecondition      Kind = "precondition"       // Pré-condição de negócio não atendida
	KindNotFound          Kind = "not_found"          // Registro inexistente
	KindConflict          Kind = "conflict"           // Escrita concorrente perdeu a disputa
	KindUnauthorized      Kind = "unauthorized"       // Sessão ausente ou inválida
	KindForbidden         Kind = "forbidden"          // Papel sem permissão
	KindInternal          Kind = "internal"
)

// Error é um erro de aplicação com classificação
type Error struct {
	Kind    Kind
	Message string
}

// New cria um novo erro classificado
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Error implementa a interface error
func (e *Error) Error() string {
	return e.Message
}

// Wrap acrescenta contexto a um erro classificado mantendo a cadeia para errors.Is
func Wrap(err *Error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}

// KindOf retorna a classificação do primeiro erro classificado da cadeia
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRetriable indica se o cliente pode repetir a operação
func IsRetriable(err error) bool {
	return KindOf(err) == KindConflict
}
