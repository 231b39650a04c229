package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

const subscriptionColumns = `id, company_id, plan_id, status, start_date, end_date, created_at, updated_at`

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre PostgreSQL.
// El índice único parcial company_subscriptions_one_active garantiza una sola fila activa por empresa.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// DeactivateActive marca como inactive la fila activa de la empresa.
func (r *SubscriptionRepo) DeactivateActive(ctx context.Context, companyID string, at time.Time) (int64, error) {
	return r.closeActive(ctx, companyID, entity.SubscriptionInactive, at)
}

// CancelActive marca como cancelled la fila activa de la empresa.
func (r *SubscriptionRepo) CancelActive(ctx context.Context, companyID string, at time.Time) (int64, error) {
	return r.closeActive(ctx, companyID, entity.SubscriptionCancelled, at)
}

func (r *SubscriptionRepo) closeActive(ctx context.Context, companyID string, to entity.SubscriptionStatus, at time.Time) (int64, error) {
	if !validID(companyID) {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE company_subscriptions SET status = $2, end_date = $3, updated_at = $3
		WHERE company_id = $1 AND status = 'active'`,
		companyID, string(to), at,
	)
	if err != nil {
		return 0, fmt.Errorf("close active subscription: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Create inserta una fila del historial.
func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.CompanySubscription) error {
	query := `INSERT INTO company_subscriptions (` + subscriptionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.PlanID, string(s.Status), s.StartDate, s.EndDate, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la empresa ya tiene una suscripción activa", domain.ErrConflict)
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetActive fila activa de la empresa o nil.
func (r *SubscriptionRepo) GetActive(ctx context.Context, companyID string) (*entity.CompanySubscription, error) {
	if !validID(companyID) {
		return nil, nil
	}
	query := `SELECT ` + subscriptionColumns + ` FROM company_subscriptions WHERE company_id = $1 AND status = 'active'`
	s, err := scanSubscription(r.q.QueryRow(ctx, query, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active subscription: %w", err)
	}
	return s, nil
}

// ListByCompany historial de la empresa, más reciente primero.
func (r *SubscriptionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanySubscription, error) {
	if !validID(companyID) {
		return nil, nil
	}
	query := `SELECT ` + subscriptionColumns + ` FROM company_subscriptions WHERE company_id = $1 ORDER BY created_at DESC, seq DESC`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompanySubscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSubscription(row pgx.Row) (*entity.CompanySubscription, error) {
	var s entity.CompanySubscription
	err := row.Scan(&s.ID, &s.CompanyID, &s.PlanID, &s.Status, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
