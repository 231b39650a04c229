// Package bootstrap carga los datos iniciales que el marketplace necesita para operar:
// el catálogo base de planes y la cuenta de administración.
// Todas las operaciones son idempotentes y pueden ejecutarse en cada despliegue.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/solarsync-api/internal/application/ports"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
	"github.com/jhoicas/solarsync-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultPlans catálogo base de planes mensuales.
func DefaultPlans() []entity.Plan {
	intPtr := func(n int) *int { return &n }
	return []entity.Plan{
		{
			Name:         "Basic",
			Description:  "Perfil en el directorio y recepción de leads",
			Price:        decimal.NewFromInt(29),
			BillingCycle: entity.BillingMonthly,
			MaxProducts:  intPtr(10),
			MaxUsers:     intPtr(1),
			Features:     `["directory_profile","leads"]`,
		},
		{
			Name:         "Pro",
			Description:  "Catálogo ampliado y panel de analítica",
			Price:        decimal.NewFromInt(99),
			BillingCycle: entity.BillingMonthly,
			MaxProducts:  intPtr(100),
			MaxUsers:     intPtr(5),
			Features:     `["directory_profile","leads","analytics"]`,
		},
		{
			Name:         "Enterprise",
			Description:  "Sin límites de catálogo ni usuarios",
			Price:        decimal.NewFromInt(299),
			BillingCycle: entity.BillingMonthly,
			Features:     `["directory_profile","leads","analytics","priority_support"]`,
		},
	}
}

// Seeder escribe los datos iniciales a través de los puertos de persistencia.
type Seeder struct {
	users  repository.UserRepository
	plans  repository.PlanRepository
	hasher ports.PasswordHasher
	log    *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(users repository.UserRepository, plans repository.PlanRepository, hasher ports.PasswordHasher, log *logger.Logger) *Seeder {
	return &Seeder{users: users, plans: plans, hasher: hasher, log: log.Component("seed")}
}

// SeedPlans crea los planes que falten. Un plan con el mismo nombre ya existente se omite.
// Devuelve cuántos planes se crearon.
func (s *Seeder) SeedPlans(ctx context.Context, plans []entity.Plan) (int, error) {
	created := 0
	for _, p := range plans {
		p := p
		p.ID = uuid.New().String()
		p.CreatedAt = time.Now().UTC()
		if err := s.plans.Create(ctx, &p); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.log.Debug().Str("plan", p.Name).Msg("plan ya existe")
				continue
			}
			return created, fmt.Errorf("crear plan %s: %w", p.Name, err)
		}
		created++
		s.log.Info().Str("plan", p.Name).Str("price", p.Price.StringFixed(2)).Msg("plan creado")
	}
	return created, nil
}

// SeedAdmin crea la cuenta de administración si el email no existe.
// Devuelve true si la creó. Los administradores no pueden registrarse por la API.
func (s *Seeder) SeedAdmin(ctx context.Context, email, password, fullName string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, fmt.Errorf("%w: email y password del admin son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("buscar admin: %w", err)
	}
	if existing != nil {
		s.log.Debug().Str("email", email).Msg("admin ya existe")
		return false, nil
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	if fullName == "" {
		fullName = "Administrador"
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		Role:         entity.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("crear admin: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Msg("admin creado")
	return true, nil
}
