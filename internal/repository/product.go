package repository

import (
	"context"
	"fmt"

	"storefront-api/internal/model"

	"gorm.io/gorm"
)

// StockRef names the inventory row an order line draws from: the variant's
// counters when VariantID is set, the product's otherwise.
type StockRef struct {
	ProductID string
	VariantID *string
}

type ProductRepository interface {
	List(ctx context.Context, categoryID string) ([]*model.Product, error)
	FindByIDWithVariants(ctx context.Context, productID string) (*model.Product, error)
	FindManyWithVariants(ctx context.Context, productIDs []string) ([]*model.Product, error)

	// Reserve increments reserved_stock by qty only if
	// stock >= reserved_stock + qty holds at the moment of update. The
	// predicate is evaluated atomically with the increment; a false return
	// means the conditional update matched no row.
	Reserve(ctx context.Context, tx *gorm.DB, ref StockRef, qty int) (bool, error)
	// Release decrements reserved_stock by qty, undoing a reservation whose
	// sale never completed.
	Release(ctx context.Context, tx *gorm.DB, ref StockRef, qty int) error
	// Consume decrements both stock and reserved_stock by qty, converting a
	// reservation into a permanent decrement on verified payment.
	Consume(ctx context.Context, tx *gorm.DB, ref StockRef, qty int) error
	// Counters re-reads stock/reserved_stock, used to report availability
	// after a failed reservation.
	Counters(ctx context.Context, tx *gorm.DB, ref StockRef) (stock, reserved int, err error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) List(ctx context.Context, categoryID string) ([]*model.Product, error) {
	var products []*model.Product
	q := r.db.WithContext(ctx).Preload("Variants.Options")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	err := q.Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindByIDWithVariants(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants.Options").
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindManyWithVariants(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Reserve(ctx context.Context, tx *gorm.DB, ref StockRef, qty int) (bool, error) {
	res := r.stockRow(ctx, tx, ref).
		Where("stock >= reserved_stock + ?", qty).
		UpdateColumn("reserved_stock", gorm.Expr("reserved_stock + ?", qty))
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *productRepoImpl) Release(ctx context.Context, tx *gorm.DB, ref StockRef, qty int) error {
	res := r.stockRow(ctx, tx, ref).
		Where("reserved_stock >= ?", qty).
		UpdateColumn("reserved_stock", gorm.Expr("reserved_stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("release stock: no reservation to release for product %s", ref.ProductID)
	}

	return nil
}

func (r *productRepoImpl) Consume(ctx context.Context, tx *gorm.DB, ref StockRef, qty int) error {
	res := r.stockRow(ctx, tx, ref).
		Where("stock >= ? AND reserved_stock >= ?", qty, qty).
		UpdateColumns(map[string]interface{}{
			"stock":          gorm.Expr("stock - ?", qty),
			"reserved_stock": gorm.Expr("reserved_stock - ?", qty),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("consume stock: no reservation to consume for product %s", ref.ProductID)
	}

	return nil
}

func (r *productRepoImpl) Counters(ctx context.Context, tx *gorm.DB, ref StockRef) (int, int, error) {
	var row struct {
		Stock         int
		ReservedStock int
	}
	err := r.stockRow(ctx, tx, ref).
		Select("stock", "reserved_stock").
		Take(&row).Error
	if err != nil {
		return 0, 0, err
	}

	return row.Stock, row.ReservedStock, nil
}

func (r *productRepoImpl) stockRow(ctx context.Context, tx *gorm.DB, ref StockRef) *gorm.DB {
	if ref.VariantID != nil {
		return tx.WithContext(ctx).Model(&model.ProductVariant{}).Where("id = ?", *ref.VariantID)
	}
	return tx.WithContext(ctx).Model(&model.Product{}).Where("id = ?", ref.ProductID)
}
