package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

var _ repository.ProfileViewRepository = (*ProfileViewRepo)(nil)

// ProfileViewRepo visitas a perfiles de empresa sobre PostgreSQL.
type ProfileViewRepo struct {
	q Querier
}

// NewProfileViewRepository construye el adaptador.
func NewProfileViewRepository(q Querier) *ProfileViewRepo {
	return &ProfileViewRepo{q: q}
}

// Record inserta una visita.
func (r *ProfileViewRepo) Record(ctx context.Context, companyID string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO profile_views (company_id, viewed_at) VALUES ($1, $2)`, companyID, at); err != nil {
		return fmt.Errorf("insert profile view: %w", err)
	}
	return nil
}

// Stats total histórico y visitas por día (UTC) desde since.
func (r *ProfileViewRepo) Stats(ctx context.Context, companyID string, since time.Time) (entity.ProfileViewStats, error) {
	var st entity.ProfileViewStats
	if !validID(companyID) {
		return st, nil
	}
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM profile_views WHERE company_id = $1`, companyID).Scan(&st.Total); err != nil {
		return st, fmt.Errorf("count profile views: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT date_trunc('day', viewed_at AT TIME ZONE 'UTC') AS day, COUNT(*)
		FROM profile_views
		WHERE company_id = $1 AND viewed_at >= $2
		GROUP BY day
		ORDER BY day`, companyID, since)
	if err != nil {
		return st, fmt.Errorf("daily profile views: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DailyViews
		if err := rows.Scan(&d.Day, &d.Views); err != nil {
			return st, fmt.Errorf("scan daily views: %w", err)
		}
		st.LastPeriod += d.Views
		st.Daily = append(st.Daily, d)
	}
	return st, rows.Err()
}
