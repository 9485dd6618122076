package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) ([]*model.CartItem, error)
	AddToCart(ctx context.Context, userID string, req *dto.AddToCartRequest) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveFromCart(ctx context.Context, userID, itemID string) error
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) ([]*model.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

func (s *cartServiceImpl) AddToCart(ctx context.Context, userID string, req *dto.AddToCartRequest) (*model.CartItem, error) {
	if req.ProductID == "" {
		return nil, &apperror.ValidationError{Msg: "product id is required"}
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	// Same variant discipline as order placement: a product with variants
	// needs one selected, and the selection must belong to the product.
	product, err := s.productRepo.FindByIDWithVariants(ctx, req.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperror.NotFoundError{Resource: "product", ID: req.ProductID}
	}
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}

	variantID := ""
	if req.VariantID == nil {
		if len(product.Variants) > 0 {
			return nil, &apperror.VariantRequiredError{ProductID: product.ID}
		}
	} else if findVariant(product.Variants, *req.VariantID) == nil {
		return nil, &apperror.InvalidVariantError{ProductID: product.ID, VariantID: *req.VariantID}
	} else {
		variantID = *req.VariantID
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("store cart item: %w", err)
	}

	return item, nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return &apperror.ValidationError{Msg: "quantity must be a positive integer"}
	}

	ok, err := s.cartRepo.UpdateQuantity(ctx, itemID, userID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if !ok {
		return &apperror.NotFoundError{Resource: "cart item", ID: itemID}
	}

	return nil
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, userID, itemID string) error {
	ok, err := s.cartRepo.Delete(ctx, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if !ok {
		return &apperror.NotFoundError{Resource: "cart item", ID: itemID}
	}

	return nil
}
