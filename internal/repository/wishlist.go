package repository

import (
	"context"

	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.WishlistItem, error)
	Add(ctx context.Context, item *model.WishlistItem) error
	Remove(ctx context.Context, userID, productID string) (bool, error)
}

type wishlistRepoImpl struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepoImpl{
		db: db,
	}
}

func (r *wishlistRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.WishlistItem, error) {
	var items []*model.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *wishlistRepoImpl) Add(ctx context.Context, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(item).Error
}

func (r *wishlistRepoImpl) Remove(ctx context.Context, userID, productID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}
