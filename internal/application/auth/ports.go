package auth

import (
	"context"

	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

// TxRunner ejecuta el registro (empresa + usuario) en una única transacción.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}
