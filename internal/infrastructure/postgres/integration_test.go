//go:build integration

// Tests contra PostgreSQL real. Requieren DATABASE_URL y se ejecutan con:
//
//	DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/...
package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/application/subscription"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
	"github.com/jhoicas/solarsync-api/internal/infrastructure/postgres"
	"github.com/jhoicas/solarsync-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/solarsync-api/pkg/config"
	"github.com/jhoicas/solarsync-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var admin = entity.Identity{UserID: "admin", Role: entity.RoleAdmin}

// newTestDB migra un esquema propio del test y devuelve un pool apuntado a él.
// El esquema se elimina al terminar.
func newTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()

	root, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 2})
	require.NoError(t, err)
	schema := "it_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = root.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn + sep + "search_path=" + schema, MaxConns: 10})
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_, _ = root.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		root.Close()
	})

	db := postgres.OpenSQL(pool)
	defer db.Close()
	m, err := migrations.New(db, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx))
	return pool
}

func seedCompany(t *testing.T, pool *pgxpool.Pool, name string) string {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Company{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(context.Background(), c))
	return c.ID
}

func seedPlan(t *testing.T, pool *pgxpool.Pool, name string, price int64) string {
	t.Helper()
	p := &entity.Plan{
		ID:           uuid.NewString(),
		Name:         name,
		Price:        decimal.NewFromInt(price),
		BillingCycle: entity.BillingMonthly,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, postgres.NewPlanRepository(pool).Create(context.Background(), p))
	return p.ID
}

func countActive(t *testing.T, pool *pgxpool.Pool, companyID string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT count(*) FROM company_subscriptions WHERE company_id = $1 AND status = 'active'`, companyID).Scan(&n))
	return n
}

func newSubscriptions(pool *pgxpool.Pool) *subscription.SubscriptionUseCase {
	return subscription.NewSubscriptionUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewSubscriptionRepository(pool),
		postgres.NewPlanRepository(pool),
		postgres.NewCompanyRepository(pool),
		logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Suscripciones
// ──────────────────────────────────────────────────────────────────────────────

// Asignaciones concurrentes a la misma empresa se serializan con FOR UPDATE: todas terminan
// bien y queda exactamente una fila activa.
func TestAssign_Postgres_ConcurrentesDejanUnaSolaActiva(t *testing.T) {
	pool := newTestDB(t)
	companyID := seedCompany(t, pool, "Alfa Solar")
	plans := []string{seedPlan(t, pool, "Basic", 29), seedPlan(t, pool, "Pro", 99)}
	uc := newSubscriptions(pool)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Assign(context.Background(), admin, dto.AssignSubscriptionRequest{
				CompanyID: companyID,
				PlanID:    plans[i%len(plans)],
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	assert.Equal(t, 1, countActive(t, pool, companyID))
	history, err := uc.History(context.Background(), admin, companyID)
	require.NoError(t, err)
	require.Len(t, history, n)
	assert.Equal(t, string(entity.SubscriptionActive), history[0].Status, "la más reciente es la activa")
}

// El índice único parcial rechaza una segunda fila activa insertada fuera del caso de uso.
func TestSubscriptionRepo_Postgres_SegundaActivaEsConflict(t *testing.T) {
	pool := newTestDB(t)
	companyID := seedCompany(t, pool, "Beta Energía")
	planID := seedPlan(t, pool, "Basic", 29)
	repo := postgres.NewSubscriptionRepository(pool)

	now := time.Now().UTC()
	row := func() *entity.CompanySubscription {
		return &entity.CompanySubscription{
			ID: uuid.NewString(), CompanyID: companyID, PlanID: planID,
			Status: entity.SubscriptionActive, StartDate: now, CreatedAt: now, UpdatedAt: now,
		}
	}
	require.NoError(t, repo.Create(context.Background(), row()))
	err := repo.Create(context.Background(), row())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, countActive(t, pool, companyID))
}

// Un error dentro de la transacción revierte la desactivación ya ejecutada.
func TestTxRunner_Postgres_ErrorRevierteDesactivacion(t *testing.T) {
	pool := newTestDB(t)
	companyID := seedCompany(t, pool, "Gamma Solar")
	planID := seedPlan(t, pool, "Pro", 99)
	_, err := newSubscriptions(pool).Assign(context.Background(), admin,
		dto.AssignSubscriptionRequest{CompanyID: companyID, PlanID: planID})
	require.NoError(t, err)

	boom := errors.New("fallo a mitad de la transacción")
	err = postgres.NewTxRunner(pool).RunSubscription(context.Background(), func(
		_ repository.CompanyRepository,
		_ repository.PlanRepository,
		subRepo repository.SubscriptionRepository,
	) error {
		n, err := subRepo.DeactivateActive(context.Background(), companyID, time.Now().UTC())
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, countActive(t, pool, companyID), "la fila activa sigue activa tras el rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de listados con created_at repetido
// ──────────────────────────────────────────────────────────────────────────────

func TestSubscriptionRepo_Postgres_EmpateEnCreatedAtUltimaPrimero(t *testing.T) {
	pool := newTestDB(t)
	companyID := seedCompany(t, pool, "Delta Solar")
	planID := seedPlan(t, pool, "Basic", 29)
	repo := postgres.NewSubscriptionRepository(pool)

	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	var inserted []string
	for i := 0; i < 3; i++ {
		s := &entity.CompanySubscription{
			ID: uuid.NewString(), CompanyID: companyID, PlanID: planID,
			Status: entity.SubscriptionInactive, StartDate: at, CreatedAt: at, UpdatedAt: at,
		}
		require.NoError(t, repo.Create(context.Background(), s))
		inserted = append(inserted, s.ID)
	}

	list, err := repo.ListByCompany(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, s := range list {
		assert.Equal(t, inserted[len(inserted)-1-i], s.ID, "posición %d", i)
	}
}

func TestLeadRepo_Postgres_EmpateEnCreatedAtUltimaPrimero(t *testing.T) {
	pool := newTestDB(t)
	ctx := context.Background()
	supplierID := seedCompany(t, pool, "Epsilon Energía")

	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	installer := &entity.User{
		ID: uuid.NewString(), Email: "inst@test.io", FullName: "Instalador",
		Role: entity.RoleInstaller, PasswordHash: "x", CreatedAt: at, UpdatedAt: at,
	}
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, installer))

	repo := postgres.NewLeadRepository(pool)
	var inserted []string
	for i := 0; i < 3; i++ {
		l := &entity.Lead{
			ID:                     uuid.NewString(),
			InstallerID:            installer.ID,
			SupplierID:             supplierID,
			ProjectDescription:     fmt.Sprintf("Proyecto %d", i),
			ContactEmail:           "cliente@test.io",
			PreferredContactMethod: "email",
			Status:                 entity.LeadStatusPending,
			CreatedAt:              at,
			UpdatedAt:              at,
		}
		require.NoError(t, repo.Create(ctx, l))
		inserted = append(inserted, l.ID)
	}

	received, err := repo.ListBySupplier(ctx, supplierID, 0)
	require.NoError(t, err)
	require.Len(t, received, 3)
	mine, err := repo.ListByInstaller(ctx, installer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	for i := range inserted {
		want := inserted[len(inserted)-1-i]
		assert.Equal(t, want, received[i].ID, "recibidos, posición %d", i)
		assert.Equal(t, want, mine[i].ID, "propios, posición %d", i)
	}
}
