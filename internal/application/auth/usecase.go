package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/application/ports"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
	"github.com/jhoicas/solarsync-api/pkg/jwt"
	"github.com/jhoicas/solarsync-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	txRunner    TxRunner
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	hasher      ports.PasswordHasher
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	hasher ports.PasswordHasher,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		txRunner:    txRunner,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		hasher:      hasher,
		jwtCfg:      jwtCfg,
		log:         log.Component("auth"),
	}
}

// RegisterUser crea un instalador o un proveedor. Para proveedores crea también su empresa,
// en la misma transacción que el usuario. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	role, err := entity.ParseRole(in.Role)
	if err != nil || role == entity.RoleAdmin {
		return nil, fmt.Errorf("%w: rol debe ser installer o supplier", domain.ErrInvalidInput)
	}
	email := normalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if email == "" || fullName == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email, nombre y password son obligatorios", domain.ErrInvalidInput)
	}
	var companyName string
	if in.CompanyName != nil {
		companyName = strings.TrimSpace(*in.CompanyName)
	}
	if role == entity.RoleSupplier && companyName == "" {
		return nil, fmt.Errorf("%w: company_name es obligatorio para proveedores", domain.ErrInvalidInput)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var company *entity.Company

	err = uc.txRunner.RunRegistration(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if role == entity.RoleSupplier {
			company = &entity.Company{
				ID:        uuid.New().String(),
				Name:      companyName,
				Email:     email,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := companyRepo.Create(ctx, company); err != nil {
				return fmt.Errorf("crear empresa: %w", err)
			}
			user.CompanyID = &company.ID
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("email", email).Msg("registro fallido")
		return nil, fmt.Errorf("registrar usuario: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("usuario registrado")
	resp := toUserResponse(user)
	if company != nil {
		resp.CompanyName = &company.Name
	}
	return resp, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil || !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	resp := toUserResponse(user)
	if user.CompanyID != nil {
		name, err := uc.companyRepo.GetName(ctx, *user.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("nombre de empresa: %w", err)
		}
		resp.CompanyName = name
	}
	return &dto.LoginResponse{Token: token, User: *resp}, nil
}

// Me devuelve la identidad ya resuelta del usuario autenticado.
func (uc *AuthUseCase) Me(requester entity.Identity) dto.IdentityResponse {
	out := dto.IdentityResponse{UserID: requester.UserID, Role: string(requester.Role)}
	if requester.HasCompany() {
		companyID := requester.CompanyID
		out.CompanyID = &companyID
	}
	return out
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
	}
}
