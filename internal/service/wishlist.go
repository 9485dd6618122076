package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-api/internal/apperror"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type WishlistService interface {
	GetWishlist(ctx context.Context, userID string) ([]*model.WishlistItem, error)
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}

type wishlistServiceImpl struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistServiceImpl{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistServiceImpl) GetWishlist(ctx context.Context, userID string) ([]*model.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(ctx, userID)
}

func (s *wishlistServiceImpl) AddToWishlist(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return &apperror.ValidationError{Msg: "product id is required"}
	}

	if _, err := s.productRepo.FindByIDWithVariants(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperror.NotFoundError{Resource: "product", ID: productID}
		}
		return fmt.Errorf("fetch product: %w", err)
	}

	return s.wishlistRepo.Add(ctx, &model.WishlistItem{UserID: userID, ProductID: productID})
}

func (s *wishlistServiceImpl) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	ok, err := s.wishlistRepo.Remove(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if !ok {
		return &apperror.NotFoundError{Resource: "wishlist item", ID: productID}
	}

	return nil
}
