package usecase

import (
	"context"
	"errors"
	"strings"

	"ordersystem/internal/domain/model"
	repo "ordersystem/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	clock       Clock
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, clock Clock) *ProductUsecase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ProductUsecase{productRepo: productRepo, clock: clock}
}

// GET /api/productsの入力DTO
type ListProductsInput struct {
	Q      string
	Active *bool
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if len(in.Q) > 100 {
		return []model.Product{}, NewValidationError("q too long")
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Q:      strings.TrimSpace(in.Q),
		Active: in.Active,
	})
	if err != nil {
		return []model.Product{}, NewInfraError(err)
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewValidationError("invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewNotFoundError("product %d not found", productID)
	}
	if err != nil {
		return model.Product{}, NewInfraError(err)
	}
	return p, nil
}

type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	Stock    int64
	IsActive bool
	Rating   *float32
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name required")
	}
	if len(in.Name) > 255 {
		return NewValidationError("name too long")
	}
	if in.Price.IsNegative() {
		return NewValidationError("price must be >= 0")
	}
	if in.Stock < 0 {
		return NewValidationError("stock must be >= 0")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5) {
		return NewValidationError("rating must be between 0 and 5")
	}
	return nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:      strings.TrimSpace(in.Name),
		Price:     in.Price,
		Stock:     in.Stock,
		IsActive:  in.IsActive,
		Rating:    in.Rating,
		CreatedAt: u.clock.Now(),
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Product{}, NewBusinessError("product name %q already exists", strings.TrimSpace(in.Name))
	}
	if err != nil {
		return model.Product{}, NewInfraError(err)
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductInput) error {
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:       productID,
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Stock:    in.Stock,
		IsActive: in.IsActive,
		Rating:   in.Rating,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("product %d not found", productID)
	}
	if errors.Is(err, repo.ErrDuplicate) {
		return NewBusinessError("product name %q already exists", strings.TrimSpace(in.Name))
	}
	if err != nil {
		return NewInfraError(err)
	}
	return nil
}

// 注文明細から参照されている商品は消せない（非公開にする）
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}

	used, err := u.productRepo.IsReferenced(ctx, productID)
	if err != nil {
		return NewInfraError(err)
	}
	if used {
		return NewBusinessError("product %d is referenced by orders; deactivate it instead", productID)
	}

	err = u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("product %d not found", productID)
	}
	if err != nil {
		return NewInfraError(err)
	}
	return nil
}
