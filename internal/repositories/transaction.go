package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type TxManager struct {
	pool    *pgxpool.Pool
	options pgx.TxOptions
}

// NewTxManager открывает транзакции с READ COMMITTED: строку защищает SELECT ... FOR UPDATE в репозиториях.
func NewTxManager(pool *pgxpool.Pool) TxManagerInterface {
	return &TxManager{
		pool:    pool,
		options: pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
	}
}

// RunInTransaction коммитит, если fn вернула nil; при ошибке или панике изменения откатываются.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	err := pgx.BeginTxFunc(ctx, m.pool, m.options, fn)
	if err != nil {
		return fmt.Errorf("транзакция отменена: %w", err)
	}
	return nil
}
