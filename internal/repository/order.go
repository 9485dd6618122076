package repository

import (
	"context"
	"time"

	"storefront-api/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByIDForUser(ctx context.Context, tx *gorm.DB, orderID, userID string) (*model.Order, error)
	FindByTransactionID(ctx context.Context, tx *gorm.DB, transactionID, userID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	SetTransactionID(ctx context.Context, orderID, transactionID string) error
	MarkPaidConfirmed(ctx context.Context, tx *gorm.DB, orderID string) error
	// CancelPending flips order_status to cancelled only while the order is
	// still pending and owned by userID. A false return means the guard
	// matched no row, so the order is either missing or already processed.
	CancelPending(ctx context.Context, tx *gorm.DB, orderID, userID string) (bool, error)
	DeleteWithItems(ctx context.Context, tx *gorm.DB, orderID string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByIDForUser(ctx context.Context, tx *gorm.DB, orderID, userID string) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByTransactionID(ctx context.Context, tx *gorm.DB, transactionID, userID string) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).
		Preload("OrderItems").
		Where("transaction_id = ? AND user_id = ?", transactionID, userID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems.Product").
		Preload("OrderItems.Variant.Options").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) SetTransactionID(ctx context.Context, orderID, transactionID string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"transaction_id": transactionID,
			"updated_at":     time.Now(),
		}).Error
}

func (r *orderRepoImpl) MarkPaidConfirmed(ctx context.Context, tx *gorm.DB, orderID string) error {
	res := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND payment_status = ?", orderID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentStatusPaid,
			"order_status":   model.OrderStatusConfirmed,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepoImpl) CancelPending(ctx context.Context, tx *gorm.DB, orderID, userID string) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND user_id = ? AND order_status = ?", orderID, userID, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"order_status": model.OrderStatusCancelled,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *orderRepoImpl) DeleteWithItems(ctx context.Context, tx *gorm.DB, orderID string) error {
	if err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}

	return tx.WithContext(ctx).
		Where("id = ?", orderID).
		Delete(&model.Order{}).Error
}
