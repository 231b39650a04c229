package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solarsync-api/internal/application/analytics"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/testutil/memstore"
)

func TestGetSupplierAnalytics_ResumenDelProveedor(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.ProfileViews().Record(ctx, "c-1", now.AddDate(0, 0, -90)))
	require.NoError(t, store.ProfileViews().Record(ctx, "c-1", now))
	require.NoError(t, store.ProfileViews().Record(ctx, "c-1", now))
	require.NoError(t, store.ProfileViews().Record(ctx, "c-2", now))

	for i := 0; i < 7; i++ {
		status := entity.LeadStatusPending
		if i%3 == 0 {
			status = entity.LeadStatusQuoted
		}
		require.NoError(t, store.Leads().Create(ctx, &entity.Lead{
			ID:          fmt.Sprintf("l-%d", i),
			InstallerID: "u-inst",
			SupplierID:  "c-1",
			Status:      status,
			CreatedAt:   now.Add(time.Duration(i) * time.Minute),
		}))
	}

	uc := analytics.NewDashboardUseCase(store.ProfileViews(), store.Leads())
	out, err := uc.GetSupplierAnalytics(ctx, entity.Identity{UserID: "u-sup", Role: entity.RoleSupplier, CompanyID: "c-1"})
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalViews)
	assert.Equal(t, 2, out.ViewsPast30Days)
	require.Len(t, out.DailyViews, 1)
	assert.Equal(t, now.Format("2006-01-02"), out.DailyViews[0].Date)

	assert.Equal(t, 7, out.TotalLeads)
	assert.Equal(t, 4, out.PendingLeads)
	require.Len(t, out.RecentLeads, 5)
	assert.Equal(t, "l-6", out.RecentLeads[0].ID)
}

func TestGetSupplierAnalytics_SinEmpresa(t *testing.T) {
	store := memstore.New()
	uc := analytics.NewDashboardUseCase(store.ProfileViews(), store.Leads())

	_, err := uc.GetSupplierAnalytics(context.Background(), entity.Identity{UserID: "u-inst", Role: entity.RoleInstaller})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
