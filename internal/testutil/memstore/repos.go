package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.CompanyRepository      = (*CompanyRepo)(nil)
	_ repository.LeadRepository         = (*LeadRepo)(nil)
	_ repository.PlanRepository         = (*PlanRepo)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.ReviewRepository       = (*ReviewRepo)(nil)
	_ repository.ProfileViewRepository  = (*ProfileViewRepo)(nil)
)

// ── Users ──────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.create"); err != nil {
		return err
	}
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.data.users = append(r.s.data.users, *user)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.get"); err != nil {
		return nil, err
	}
	for _, u := range r.s.data.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

// ── Companies ──────────────────────────────────────────────────────────────────

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("companies.create"); err != nil {
		return err
	}
	r.s.data.companies = append(r.s.data.companies, *company)
	return nil
}

func (r *CompanyRepo) find(id string) *entity.Company {
	for _, c := range r.s.data.companies {
		if c.ID == id {
			out := c
			return &out
		}
	}
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(id), nil
}

// GetForUpdate no necesita bloquear: las transacciones del store ya están serializadas.
func (r *CompanyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

func (r *CompanyRepo) GetName(_ context.Context, id string) (*string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.find(id)
	if c == nil {
		return nil, nil
	}
	return &c.Name, nil
}

func (r *CompanyRepo) Search(_ context.Context, filter repository.CompanyFilter) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.s.data.companies {
		if filter.State != "" && c.State != strings.ToUpper(filter.State) {
			continue
		}
		if filter.City != "" && !strings.EqualFold(c.City, filter.City) {
			continue
		}
		cc := c
		out = append(out, &cc)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CompanyRepo) ListWithSubscription(_ context.Context, limit, offset int) ([]*entity.CompanySubscriptionSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	companies := append([]entity.Company(nil), r.s.data.companies...)
	sort.SliceStable(companies, func(i, j int) bool { return companies[i].Name < companies[j].Name })

	var out []*entity.CompanySubscriptionSummary
	for i, c := range companies {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		summary := &entity.CompanySubscriptionSummary{Company: c}
		for _, sub := range r.s.data.subs {
			if sub.CompanyID != c.ID || sub.Status != entity.SubscriptionActive {
				continue
			}
			status := sub.Status
			start := sub.StartDate
			summary.PlanStatus = &status
			summary.SubscriptionStart = &start
			summary.SubscriptionEnd = sub.EndDate
			for _, p := range r.s.data.plans {
				if p.ID == sub.PlanID {
					name := p.Name
					summary.CurrentPlan = &name
				}
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

// ── Leads ──────────────────────────────────────────────────────────────────────

// LeadRepo leads en memoria.
type LeadRepo struct{ s *Store }

func (r *LeadRepo) Create(_ context.Context, lead *entity.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("leads.create"); err != nil {
		return err
	}
	r.s.data.leads = append(r.s.data.leads, *lead)
	return nil
}

func (r *LeadRepo) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.data.leads {
		if l.ID == id {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (r *LeadRepo) ListByInstaller(_ context.Context, installerID string) ([]*entity.LeadWithSupplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	names := map[string]string{}
	for _, c := range r.s.data.companies {
		names[c.ID] = c.Name
	}
	var out []*entity.LeadWithSupplier
	for _, l := range newestFirst(r.s.data.leads, func(l entity.Lead) time.Time { return l.CreatedAt }) {
		if l.InstallerID == installerID {
			out = append(out, &entity.LeadWithSupplier{Lead: l, SupplierName: names[l.SupplierID]})
		}
	}
	return out, nil
}

func (r *LeadRepo) ListBySupplier(_ context.Context, companyID string, limit int) ([]*entity.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Lead
	for _, l := range newestFirst(r.s.data.leads, func(l entity.Lead) time.Time { return l.CreatedAt }) {
		if limit > 0 && len(out) == limit {
			break
		}
		if l.SupplierID == companyID {
			ll := l
			out = append(out, &ll)
		}
	}
	return out, nil
}

func (r *LeadRepo) UpdateStatus(_ context.Context, id, companyID string, status entity.LeadStatus, notes *string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("leads.update_status"); err != nil {
		return false, err
	}
	for i := range r.s.data.leads {
		l := &r.s.data.leads[i]
		if l.ID == id && l.SupplierID == companyID {
			l.Status = status
			l.Notes = notes
			l.UpdatedAt = at
			return true, nil
		}
	}
	return false, nil
}

func (r *LeadRepo) StatsBySupplier(_ context.Context, companyID string) (entity.LeadStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var st entity.LeadStats
	for _, l := range r.s.data.leads {
		if l.SupplierID != companyID {
			continue
		}
		st.Total++
		if l.Status == entity.LeadStatusPending {
			st.Pending++
		}
	}
	return st, nil
}

// ── Plans ──────────────────────────────────────────────────────────────────────

// PlanRepo planes en memoria.
type PlanRepo struct{ s *Store }

func (r *PlanRepo) Create(_ context.Context, plan *entity.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("plans.create"); err != nil {
		return err
	}
	for _, p := range r.s.data.plans {
		if p.Name == plan.Name {
			return domain.ErrConflict
		}
	}
	r.s.data.plans = append(r.s.data.plans, *plan)
	return nil
}

func (r *PlanRepo) GetByID(_ context.Context, id string) (*entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.plans {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *PlanRepo) List(_ context.Context) ([]*entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Plan, 0, len(r.s.data.plans))
	for _, p := range r.s.data.plans {
		pp := p
		out = append(out, &pp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	return out, nil
}

// ── Subscriptions ──────────────────────────────────────────────────────────────

// SubscriptionRepo historial de suscripciones en memoria.
type SubscriptionRepo struct{ s *Store }

func (r *SubscriptionRepo) closeActive(op, companyID string, to entity.SubscriptionStatus, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return 0, err
	}
	var n int64
	for i := range r.s.data.subs {
		sub := &r.s.data.subs[i]
		if sub.CompanyID == companyID && sub.Status == entity.SubscriptionActive {
			end := at
			sub.Status = to
			sub.EndDate = &end
			sub.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

func (r *SubscriptionRepo) DeactivateActive(_ context.Context, companyID string, at time.Time) (int64, error) {
	return r.closeActive("subscriptions.deactivate", companyID, entity.SubscriptionInactive, at)
}

func (r *SubscriptionRepo) CancelActive(_ context.Context, companyID string, at time.Time) (int64, error) {
	return r.closeActive("subscriptions.cancel", companyID, entity.SubscriptionCancelled, at)
}

// Create emula el índice único parcial sobre las filas activas.
func (r *SubscriptionRepo) Create(_ context.Context, sub *entity.CompanySubscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("subscriptions.create"); err != nil {
		return err
	}
	if sub.Status == entity.SubscriptionActive {
		for _, existing := range r.s.data.subs {
			if existing.CompanyID == sub.CompanyID && existing.Status == entity.SubscriptionActive {
				return domain.ErrConflict
			}
		}
	}
	r.s.data.subs = append(r.s.data.subs, *sub)
	return nil
}

func (r *SubscriptionRepo) GetActive(_ context.Context, companyID string) (*entity.CompanySubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.data.subs {
		if sub.CompanyID == companyID && sub.Status == entity.SubscriptionActive {
			out := sub
			return &out, nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.CompanySubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CompanySubscription
	for _, sub := range newestFirst(r.s.data.subs, func(s entity.CompanySubscription) time.Time { return s.CreatedAt }) {
		if sub.CompanyID == companyID {
			ss := sub
			out = append(out, &ss)
		}
	}
	return out, nil
}

// ── Products ───────────────────────────────────────────────────────────────────

// ProductRepo catálogo en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.products {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.data.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Brand != "" && !strings.Contains(strings.ToLower(p.Brand), strings.ToLower(filter.Brand)) {
			continue
		}
		pp := p
		out = append(out, &pp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Product, error) {
	all, err := r.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	var out []*entity.Product
	for _, p := range all {
		if p.SupplierID == supplierID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── Reviews ────────────────────────────────────────────────────────────────────

// ReviewRepo reseñas en memoria.
type ReviewRepo struct{ s *Store }

func (r *ReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.data.reviews {
		if rv.ProductID == review.ProductID && rv.UserID == review.UserID {
			return domain.ErrConflict
		}
	}
	r.s.data.reviews = append(r.s.data.reviews, *review)
	return nil
}

func (r *ReviewRepo) Exists(_ context.Context, productID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.data.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReviewRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Review
	for _, rv := range newestFirst(r.s.data.reviews, func(r entity.Review) time.Time { return r.CreatedAt }) {
		if rv.ProductID == productID {
			rr := rv
			out = append(out, &rr)
		}
	}
	return out, nil
}

// ── Profile views ──────────────────────────────────────────────────────────────

// ProfileViewRepo visitas en memoria.
type ProfileViewRepo struct{ s *Store }

func (r *ProfileViewRepo) Record(_ context.Context, companyID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("profile_views.record"); err != nil {
		return err
	}
	r.s.data.views = append(r.s.data.views, viewRow{companyID: companyID, at: at})
	return nil
}

func (r *ProfileViewRepo) Stats(_ context.Context, companyID string, since time.Time) (entity.ProfileViewStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var st entity.ProfileViewStats
	perDay := map[time.Time]int{}
	for _, v := range r.s.data.views {
		if v.companyID != companyID {
			continue
		}
		st.Total++
		if !v.at.Before(since) {
			day := v.at.UTC().Truncate(24 * time.Hour)
			perDay[day]++
			st.LastPeriod++
		}
	}
	for day, n := range perDay {
		st.Daily = append(st.Daily, entity.DailyViews{Day: day, Views: n})
	}
	sort.Slice(st.Daily, func(i, j int) bool { return st.Daily[i].Day.Before(st.Daily[j].Day) })
	return st, nil
}
