// Package memstore implementa en memoria todos los puertos de repository y los runners de
// transacción. Solo para tests: las transacciones se serializan y un error en el callback
// restaura la instantánea tomada al inicio.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

type viewRow struct {
	companyID string
	at        time.Time
}

type state struct {
	users     []entity.User
	companies []entity.Company
	leads     []entity.Lead
	plans     []entity.Plan
	subs      []entity.CompanySubscription
	products  []entity.Product
	reviews   []entity.Review
	views     []viewRow
}

func (s state) clone() state {
	return state{
		users:     append([]entity.User(nil), s.users...),
		companies: append([]entity.Company(nil), s.companies...),
		leads:     append([]entity.Lead(nil), s.leads...),
		plans:     append([]entity.Plan(nil), s.plans...),
		subs:      append([]entity.CompanySubscription(nil), s.subs...),
		products:  append([]entity.Product(nil), s.products...),
		reviews:   append([]entity.Review(nil), s.reviews...),
		views:     append([]viewRow(nil), s.views...),
	}
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	data     state
	failures map[string]error
}

// New crea un store vacío.
func New() *Store {
	return &Store{failures: map[string]error{}}
}

// FailOn hace que la próxima llamada a op (ej. "subscriptions.create") devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// fail consume el fallo inyectado para op. Requiere s.mu tomado.
func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// SeedProduct inserta un producto del catálogo (el catálogo no tiene puerto de escritura).
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.products = append(s.data.products, p)
}

// ProfileViewCount número de visitas registradas para la empresa.
func (s *Store) ProfileViewCount(companyID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.data.views {
		if v.companyID == companyID {
			n++
		}
	}
	return n
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Leads repositorio de leads.
func (s *Store) Leads() *LeadRepo { return &LeadRepo{s: s} }

// Plans repositorio de planes.
func (s *Store) Plans() *PlanRepo { return &PlanRepo{s: s} }

// Subscriptions repositorio del historial de suscripciones.
func (s *Store) Subscriptions() *SubscriptionRepo { return &SubscriptionRepo{s: s} }

// Products repositorio del catálogo.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Reviews repositorio de reseñas.
func (s *Store) Reviews() *ReviewRepo { return &ReviewRepo{s: s} }

// ProfileViews repositorio de visitas a perfiles.
func (s *Store) ProfileViews() *ProfileViewRepo { return &ProfileViewRepo{s: s} }

// TxRunner runner de transacciones sobre este store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// TxRunner implementa los runners de subscription y auth.
type TxRunner struct {
	s *Store
}

// RunSubscription ejecuta fn de forma atómica con los repos de suscripciones.
func (r *TxRunner) RunSubscription(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	planRepo repository.PlanRepository,
	subRepo repository.SubscriptionRepository,
) error) error {
	return r.s.inTx(ctx, func() error {
		return fn(r.s.Companies(), r.s.Plans(), r.s.Subscriptions())
	})
}

// RunRegistration ejecuta fn de forma atómica con los repos de registro.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.s.inTx(ctx, func() error {
		return fn(r.s.Companies(), r.s.Users())
	})
}

func (s *Store) inTx(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	err := fn()
	if err == nil {
		// Un contexto cancelado antes del commit equivale a rollback.
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// newestFirst ordena por created_at descendente; a igual instante gana la última insertada.
func newestFirst[T any](rows []T, createdAt func(T) time.Time) []T {
	out := make([]T, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return createdAt(out[i]).After(createdAt(out[j]))
	})
	return out
}
