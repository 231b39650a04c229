package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/solarsync-api/internal/application/auth"
	"github.com/jhoicas/solarsync-api/internal/application/subscription"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

// Ensure TxRunner implements subscription.TxRunner and auth.TxRunner.
var _ subscription.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSubscription inicia una transacción con los repos de suscripciones y hace Commit o Rollback.
func (r *TxRunner) RunSubscription(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	planRepo repository.PlanRepository,
	subRepo repository.SubscriptionRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCompanyRepository(tx), NewPlanRepository(tx), NewSubscriptionRepository(tx))
	})
}

// RunRegistration inicia una transacción con los repos de empresa y usuario (registro de proveedor).
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCompanyRepository(tx), NewUserRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
