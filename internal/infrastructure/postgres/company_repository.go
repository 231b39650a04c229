package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `c.id, c.name, c.description, c.address, c.city, c.state, c.phone, c.email, c.website, c.created_at, c.updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, description, address, city, state, phone, email, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Description, company.Address, company.City, company.State,
		company.Phone, company.Email, company.Website, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, id, "")
}

// GetForUpdate obtiene la empresa y bloquea la fila para update (SELECT FOR UPDATE).
// Solo tiene efecto dentro de una transacción.
func (r *CompanyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, id, " FOR UPDATE")
}

func (r *CompanyRepo) getOne(ctx context.Context, id, suffix string) (*entity.Company, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.id = $1` + suffix
	c, err := scanCompany(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetName devuelve el nombre visible o nil si la empresa no existe.
func (r *CompanyRepo) GetName(ctx context.Context, id string) (*string, error) {
	if !validID(id) {
		return nil, nil
	}
	var name string
	err := r.q.QueryRow(ctx, `SELECT name FROM companies WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company name: %w", err)
	}
	return &name, nil
}

// Search filtra por estado (exacto) y ciudad (ILIKE), ordenado por nombre.
func (r *CompanyRepo) Search(ctx context.Context, filter repository.CompanyFilter) ([]*entity.Company, error) {
	var (
		conds []string
		args  []any
	)
	if filter.State != "" {
		args = append(args, strings.ToUpper(filter.State))
		conds = append(conds, fmt.Sprintf("c.state = $%d", len(args)))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		conds = append(conds, fmt.Sprintf("c.city ILIKE $%d", len(args)))
	}
	query := `SELECT ` + companyColumns + ` FROM companies c`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY c.name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListWithSubscription empresas con su fila activa (LEFT JOIN), ordenadas por nombre.
func (r *CompanyRepo) ListWithSubscription(ctx context.Context, limit, offset int) ([]*entity.CompanySubscriptionSummary, error) {
	query := `
		SELECT ` + companyColumns + `, p.name, cs.status, cs.start_date, cs.end_date
		FROM companies c
		LEFT JOIN company_subscriptions cs ON cs.company_id = c.id AND cs.status = 'active'
		LEFT JOIN plans p ON p.id = cs.plan_id
		ORDER BY c.name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies with subscription: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompanySubscriptionSummary
	for rows.Next() {
		var (
			s      entity.CompanySubscriptionSummary
			status *string
		)
		c := &s.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Address, &c.City, &c.State, &c.Phone, &c.Email, &c.Website,
			&c.CreatedAt, &c.UpdatedAt,
			&s.CurrentPlan, &status, &s.SubscriptionStart, &s.SubscriptionEnd,
		); err != nil {
			return nil, fmt.Errorf("scan company subscription: %w", err)
		}
		if status != nil {
			st := entity.SubscriptionStatus(*status)
			s.PlanStatus = &st
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Address, &c.City, &c.State, &c.Phone, &c.Email, &c.Website,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
