package service

import (
	"context"
	"errors"

	"storefront-api/internal/apperror"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	ListProducts(ctx context.Context, categoryID string) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, categoryID string) ([]*model.Product, error) {
	return s.productRepo.List(ctx, categoryID)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByIDWithVariants(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperror.NotFoundError{Resource: "product", ID: productID}
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}
