package repository

import (
	"context"
	"time"

	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.CartItem, error)
	// Upsert inserts the cart line or, when the (user, product, variant)
	// line already exists, bumps its quantity.
	Upsert(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, itemID, userID string, quantity int) (bool, error)
	Delete(ctx context.Context, itemID, userID string) (bool, error)
	ClearByUser(ctx context.Context, tx *gorm.DB, userID string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Variant.Options").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) Upsert(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

func (r *cartRepoImpl) UpdateQuantity(ctx context.Context, itemID, userID string, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *cartRepoImpl) Delete(ctx context.Context, itemID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *cartRepoImpl) ClearByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	return tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
