package subscription_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/application/subscription"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/testutil/memstore"
	"github.com/jhoicas/solarsync-api/pkg/logger"
)

var (
	admin    = entity.Identity{UserID: "u-admin", Role: entity.RoleAdmin}
	supplier = entity.Identity{UserID: "u-sup", Role: entity.RoleSupplier, CompanyID: "c-1"}
)

type fixture struct {
	store *memstore.Store
	subs  *subscription.SubscriptionUseCase
	plans *subscription.PlanUseCase
	basic string
	pro   string
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	for _, c := range []entity.Company{{ID: "c-1", Name: "Zeta Solar"}, {ID: "c-2", Name: "Alfa Solar"}} {
		c := c
		require.NoError(t, store.Companies().Create(ctx, &c))
	}
	f := fixture{
		store: store,
		subs:  subscription.NewSubscriptionUseCase(store.TxRunner(), store.Subscriptions(), store.Plans(), store.Companies(), logger.Nop()),
		plans: subscription.NewPlanUseCase(store.Plans(), logger.Nop()),
	}
	basic, err := f.plans.Create(ctx, admin, dto.CreatePlanRequest{Name: "Basic", Price: decimal.NewFromInt(29), BillingCycle: "monthly"})
	require.NoError(t, err)
	pro, err := f.plans.Create(ctx, admin, dto.CreatePlanRequest{Name: "Pro", Price: decimal.NewFromInt(99), BillingCycle: "monthly"})
	require.NoError(t, err)
	f.basic, f.pro = basic.ID, pro.ID
	return f
}

func countActive(t *testing.T, history []dto.SubscriptionResponse) int {
	t.Helper()
	n := 0
	for _, s := range history {
		if s.Status == string(entity.SubscriptionActive) {
			n++
		}
	}
	return n
}

// ── Assign ─────────────────────────────────────────────────────────────────────

func TestAssign_CambioDePlanDejaUnaSolaActiva(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: f.basic})
	require.NoError(t, err)
	assert.Equal(t, "active", first.Status)

	second, err := f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: f.pro})
	require.NoError(t, err)

	history, err := f.subs.History(ctx, admin, "c-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "más reciente primero")
	assert.Equal(t, "active", history[0].Status)
	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, "inactive", history[1].Status)
	assert.NotNil(t, history[1].EndDate)
	assert.Equal(t, 1, countActive(t, history))
}

func TestAssign_EmpresaOPlanInexistente(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-404", PlanID: f.basic})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: "p-404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	history, err := f.subs.History(ctx, admin, "c-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAssign_SoloAdmin(t *testing.T) {
	f := setup(t)

	_, err := f.subs.Assign(context.Background(), supplier, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: f.basic})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssign_FalloAlInsertarConservaLaActivaPrevia(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	prev, err := f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: f.basic})
	require.NoError(t, err)

	f.store.FailOn("subscriptions.create", errors.New("conexión perdida"))
	_, err = f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: f.pro})
	require.Error(t, err)

	history, err := f.subs.History(ctx, admin, "c-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, prev.ID, history[0].ID)
	assert.Equal(t, "active", history[0].Status, "la desactivación se deshace con el rollback")
}

func TestAssign_ConcurrenteNuncaDejaDosActivas(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		planID := f.basic
		if i%2 == 0 {
			planID = f.pro
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: planID})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := f.subs.History(ctx, admin, "c-1")
	require.NoError(t, err)
	assert.Len(t, history, 20)
	assert.Equal(t, 1, countActive(t, history))
}

// ── Cancel ─────────────────────────────────────────────────────────────────────

func TestCancel_SegundaVezEsNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: f.basic})
	require.NoError(t, err)

	require.NoError(t, f.subs.Cancel(ctx, admin, "c-1"))
	assert.ErrorIs(t, f.subs.Cancel(ctx, admin, "c-1"), domain.ErrNotFound)

	history, err := f.subs.History(ctx, admin, "c-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "cancelled", history[0].Status)
	assert.Zero(t, countActive(t, history))
}

func TestCancel_SinSuscripcion(t *testing.T) {
	f := setup(t)
	assert.ErrorIs(t, f.subs.Cancel(context.Background(), admin, "c-2"), domain.ErrNotFound)
	assert.ErrorIs(t, f.subs.Cancel(context.Background(), supplier, "c-2"), domain.ErrForbidden)
}

// ── Current / Overview ─────────────────────────────────────────────────────────

func TestCurrent_PlanActivoDeLaPropiaEmpresa(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.subs.Current(ctx, supplier)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: f.pro})
	require.NoError(t, err)

	out, err := f.subs.Current(ctx, supplier)
	require.NoError(t, err)
	assert.Equal(t, "Pro", out.Plan.Name)

	_, err = f.subs.Current(ctx, entity.Identity{UserID: "u-inst", Role: entity.RoleInstaller})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOverview_EmpresasPorNombreConPlanActivo(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.subs.Assign(ctx, admin, dto.AssignSubscriptionRequest{CompanyID: "c-1", PlanID: f.basic})
	require.NoError(t, err)

	out, err := f.subs.Overview(ctx, admin, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 50, out.Page.Limit)

	assert.Equal(t, "Alfa Solar", out.Items[0].Name)
	assert.Nil(t, out.Items[0].CurrentPlan)
	assert.Equal(t, "Zeta Solar", out.Items[1].Name)
	require.NotNil(t, out.Items[1].CurrentPlan)
	assert.Equal(t, "Basic", *out.Items[1].CurrentPlan)
	require.NotNil(t, out.Items[1].PlanStatus)
	assert.Equal(t, "active", *out.Items[1].PlanStatus)
}

// ── Planes ─────────────────────────────────────────────────────────────────────

func TestPlans_ValidacionYNombreUnico(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	negative := -1

	cases := []struct {
		name string
		in   dto.CreatePlanRequest
		want error
	}{
		{"ciclo inválido", dto.CreatePlanRequest{Name: "X", BillingCycle: "weekly"}, domain.ErrInvalidInput},
		{"sin nombre", dto.CreatePlanRequest{Name: " ", BillingCycle: "monthly"}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreatePlanRequest{Name: "X", BillingCycle: "yearly", Price: decimal.NewFromInt(-5)}, domain.ErrInvalidInput},
		{"límite negativo", dto.CreatePlanRequest{Name: "X", BillingCycle: "yearly", MaxUsers: &negative}, domain.ErrInvalidInput},
		{"nombre repetido", dto.CreatePlanRequest{Name: "Basic", BillingCycle: "yearly"}, domain.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.plans.Create(ctx, admin, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := f.plans.Create(ctx, supplier, dto.CreatePlanRequest{Name: "Y", BillingCycle: "monthly"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPlans_ListaPorPrecio(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.plans.Create(ctx, admin, dto.CreatePlanRequest{Name: "Free", BillingCycle: "monthly"})
	require.NoError(t, err)

	list, err := f.plans.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Free", "Basic", "Pro"}, []string{list[0].Name, list[1].Name, list[2].Name})
}
