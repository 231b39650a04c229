package repository

import (
	"context"
	"time"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// ProfileViewRepository registra y agrega visitas a perfiles de empresa.
type ProfileViewRepository interface {
	Record(ctx context.Context, companyID string, at time.Time) error
	// Stats devuelve el total histórico y el detalle diario desde since.
	Stats(ctx context.Context, companyID string, since time.Time) (entity.ProfileViewStats, error)
}
