package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/application/ports"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

// ReviewUseCase reseñas de productos.
type ReviewUseCase struct {
	repo        repository.ReviewRepository
	productRepo repository.ProductRepository
	sanitizer   ports.TextSanitizer
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(repo repository.ReviewRepository, productRepo repository.ProductRepository, sanitizer ports.TextSanitizer) *ReviewUseCase {
	return &ReviewUseCase{repo: repo, productRepo: productRepo, sanitizer: sanitizer}
}

// ListByProduct reseñas del producto, más recientes primero.
func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.ReviewResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("listar reseñas: %w", err)
	}
	out := make([]dto.ReviewResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReviewResponse(r))
	}
	return out, nil
}

// Submit publica la reseña del usuario. Una por usuario y producto (ErrConflict).
func (uc *ReviewUseCase) Submit(ctx context.Context, requester entity.Identity, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < entity.MinRating || in.Rating > entity.MaxRating {
		return nil, fmt.Errorf("%w: rating debe estar entre %d y %d", domain.ErrInvalidInput, entity.MinRating, entity.MaxRating)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repo.Exists(ctx, product.ID, requester.UserID)
	if err != nil {
		return nil, fmt.Errorf("comprobar reseña: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: ya reseñaste este producto", domain.ErrConflict)
	}

	review := &entity.Review{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		UserID:    requester.UserID,
		Rating:    in.Rating,
		Comment:   uc.sanitizer.Text(in.Comment),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("crear reseña: %w", err)
	}
	out := toReviewResponse(review)
	return &out, nil
}

func toReviewResponse(r *entity.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
