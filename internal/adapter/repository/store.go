package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Códigos SQLSTATE tratados
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// ErrConflict indica que o banco abortou a transação por concorrência
var ErrConflict = apperror.New(apperror.KindConflict, "operação concorrente, tente novamente")

// DBTX é o subconjunto comum de pgxpool.Pool e pgx.Tx usado pelos repositórios
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implementa store.Store sobre o PostgreSQL
type Store struct {
	pool *pgxpool.Pool
	log  logger.Logger
}

// NewStore cria o store com o pool de conexões
func NewStore(pool *pgxpool.Pool, log logger.Logger) *Store {
	return &Store{pool: pool, log: log}
}

// Do executa fn dentro de uma transação. Qualquer erro desfaz todas as escritas.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}

	if err := fn(ctx, repositories(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.log.Error("Erro ao fazer rollback", "error", rbErr)
		}
		return mapTxError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("erro ao fazer commit: %w", err))
	}
	return nil
}

// Repositories retorna repositórios fora de transação
func (s *Store) Repositories() store.Repositories {
	return repositories(s.pool)
}

func repositories(db DBTX) store.Repositories {
	return store.Repositories{
		Tables:   &TableRepository{db: db},
		Accounts: &AccountRepository{db: db},
		Items:    &ItemRepository{db: db},
		Payments: &PaymentRepository{db: db},
		Cashiers: &CashierRepository{db: db},
		Products: &ProductRepository{db: db},
		Combos:   &ComboRepository{db: db},
		Settings: &SettingRepository{db: db},
		Users:    &UserRepository{db: db},
	}
}

// mapTxError converte falhas de serialização e deadlock em conflito
func mapTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return apperror.Wrap(ErrConflict, "%s", pgErr.Message)
		}
	}
	return err
}

// uniqueViolation indica se err é violação da restrição informada (ou de qualquer uma, se vazia)
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// foreignKeyViolation indica se err é violação de chave estrangeira
func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// nullString converte string vazia em NULL
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
