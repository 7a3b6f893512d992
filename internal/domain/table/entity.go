package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
)

var (
	ErrInvalidNumber  = apperror.New(apperror.KindValidation, "número da mesa deve ser positivo")
	ErrNotFound       = apperror.New(apperror.KindNotFound, "mesa não encontrada")
	ErrDuplicate      = apperror.New(apperror.KindConflict, "já existe uma mesa com este número")
	ErrAlreadyTaken   = apperror.New(apperror.KindConflict, "mesa foi ocupada por outro usuário, tente novamente")
	ErrNotFree        = apperror.New(apperror.KindPrecondition, "mesa não está livre")
	ErrAccountDiffers = apperror.New(apperror.KindPrecondition, "mesa está vinculada a outra conta")
	ErrHasAccounts    = apperror.New(apperror.KindPrecondition, "mesa possui contas registradas")
)

// Status representa a ocupação da mesa
type Status string

const (
	StatusFree     Status = "livre"   // Mesa disponível
	StatusOccupied Status = "ocupada" // Mesa com conta aberta
)

// Table representa uma mesa física do salão
type Table struct {
	ID               string    `json:"id"`
	Number           int       `json:"numero"`
	Name             string    `json:"nome,omitempty"`
	Status           Status    `json:"status"`
	CurrentAccountID *string   `json:"conta_atual_id"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewTable cria uma nova mesa livre
func NewTable(number int, name string) (*Table, error) {
	if number <= 0 {
		return nil, ErrInvalidNumber
	}

	return &Table{
		ID:        uuid.New().String(),
		Number:    number,
		Name:      strings.TrimSpace(name),
		Status:    StatusFree,
		Version:   1,
		CreatedAt: time.Now(),
	}, nil
}

// IsFree verifica se a mesa está livre
func (t *Table) IsFree() bool {
	return t.Status == StatusFree
}

// Label retorna o nome de exibição da mesa
func (t *Table) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return "Mesa " + strconv.Itoa(t.Number)
}

// Occupy vincula a mesa a uma conta aberta
func (t *Table) Occupy(accountID string) error {
	if !t.IsFree() {
		return ErrNotFree
	}
	t.Status = StatusOccupied
	t.CurrentAccountID = &accountID
	return nil
}

// Release libera a mesa da conta informada
func (t *Table) Release(accountID string) error {
	if t.CurrentAccountID != nil && *t.CurrentAccountID != accountID {
		return ErrAccountDiffers
	}
	t.Status = StatusFree
	t.CurrentAccountID = nil
	return nil
}

// Update altera número e nome da mesa
func (t *Table) Update(number int, name string) error {
	if number <= 0 {
		return ErrInvalidNumber
	}
	t.Number = number
	t.Name = strings.TrimSpace(name)
	return nil
}
