package repository

import (
	"context"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// PlanRepository define el puerto de persistencia para Plan. Los planes no se actualizan ni se borran.
type PlanRepository interface {
	// Create devuelve domain.ErrConflict si ya existe un plan con ese nombre.
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	// List devuelve los planes ordenados por precio ascendente.
	List(ctx context.Context) ([]*entity.Plan, error)
}
