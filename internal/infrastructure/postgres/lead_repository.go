package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

const leadColumns = `l.id, l.installer_id, l.supplier_id, l.project_description, l.project_type, l.estimated_budget,
	l.location, l.contact_email, l.contact_phone, l.preferred_contact_method, l.timeline, l.status, l.notes,
	l.created_at, l.updated_at`

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador de leads. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// Create persiste un lead nuevo.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, installer_id, supplier_id, project_description, project_type, estimated_budget,
			location, contact_email, contact_phone, preferred_contact_method, timeline, status, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.InstallerID, l.SupplierID, l.ProjectDescription, l.ProjectType, l.EstimatedBudget,
		l.Location, l.ContactEmail, l.ContactPhone, l.PreferredContactMethod, l.Timeline, string(l.Status), l.Notes,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead por ID.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	if !validID(id) {
		return nil, nil
	}
	l, err := scanLead(r.q.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads l WHERE l.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

// ListByInstaller leads del instalador con el nombre del proveedor, más recientes primero.
func (r *LeadRepo) ListByInstaller(ctx context.Context, installerID string) ([]*entity.LeadWithSupplier, error) {
	if !validID(installerID) {
		return nil, nil
	}
	query := `
		SELECT ` + leadColumns + `, c.name
		FROM leads l JOIN companies c ON c.id = l.supplier_id
		WHERE l.installer_id = $1
		ORDER BY l.created_at DESC, l.seq DESC`
	rows, err := r.q.Query(ctx, query, installerID)
	if err != nil {
		return nil, fmt.Errorf("list leads by installer: %w", err)
	}
	defer rows.Close()
	var list []*entity.LeadWithSupplier
	for rows.Next() {
		var lw entity.LeadWithSupplier
		if err := rows.Scan(append(leadDest(&lw.Lead), &lw.SupplierName)...); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, &lw)
	}
	return list, rows.Err()
}

// ListBySupplier leads recibidos por la empresa, más recientes primero. limit <= 0 no limita.
func (r *LeadRepo) ListBySupplier(ctx context.Context, companyID string, limit int) ([]*entity.Lead, error) {
	if !validID(companyID) {
		return nil, nil
	}
	query := `SELECT ` + leadColumns + ` FROM leads l WHERE l.supplier_id = $1 ORDER BY l.created_at DESC, l.seq DESC`
	args := []any{companyID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads by supplier: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza estado y notas en una sola sentencia acotada a la empresa dueña.
func (r *LeadRepo) UpdateStatus(ctx context.Context, id, companyID string, status entity.LeadStatus, notes *string, at time.Time) (bool, error) {
	if !validID(id) || !validID(companyID) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE leads SET status = $3, notes = $4, updated_at = $5
		WHERE id = $1 AND supplier_id = $2`,
		id, companyID, string(status), notes, at,
	)
	if err != nil {
		return false, fmt.Errorf("update lead status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// StatsBySupplier total de leads y pendientes de la empresa.
func (r *LeadRepo) StatsBySupplier(ctx context.Context, companyID string) (entity.LeadStats, error) {
	var st entity.LeadStats
	if !validID(companyID) {
		return st, nil
	}
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'pending')
		FROM leads WHERE supplier_id = $1`, companyID,
	).Scan(&st.Total, &st.Pending)
	if err != nil {
		return st, fmt.Errorf("lead stats: %w", err)
	}
	return st, nil
}

func leadDest(l *entity.Lead) []any {
	return []any{
		&l.ID, &l.InstallerID, &l.SupplierID, &l.ProjectDescription, &l.ProjectType, &l.EstimatedBudget,
		&l.Location, &l.ContactEmail, &l.ContactPhone, &l.PreferredContactMethod, &l.Timeline, &l.Status, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	}
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	if err := row.Scan(leadDest(&l)...); err != nil {
		return nil, err
	}
	return &l, nil
}
