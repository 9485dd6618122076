package service

import (
	"context"
	"errors"
	"testing"

	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

func newTestCartService(db *gorm.DB) CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
}

func TestAddToCartBumpsQuantityOnRepeat(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(db)
	product := seedProduct(t, db, 100, 10, 0)

	first, err := svc.AddToCart(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if _, err := svc.AddToCart(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID,
		Quantity:  2,
	}); err != nil {
		t.Fatalf("repeat add: %v", err)
	}

	var items []model.CartItem
	if err := db.Where("user_id = ?", "user-1").Find(&items).Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart rows = %d, want a single merged row", len(items))
	}
	if items[0].ID != first.ID || items[0].Quantity != 3 {
		t.Errorf("merged row = %+v, want id %s quantity 3", items[0], first.ID)
	}
}

func TestAddToCartSeparateRowsPerVariant(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(db)
	product := seedVariantProduct(t, db, 200, 250)

	for _, v := range product.Variants {
		if _, err := svc.AddToCart(context.Background(), "user-1", &dto.AddToCartRequest{
			ProductID: product.ID,
			VariantID: strptr(v.ID),
			Quantity:  1,
		}); err != nil {
			t.Fatalf("add variant %s: %v", v.ID, err)
		}
	}

	items, err := svc.GetCart(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("cart rows = %d, want one per variant", len(items))
	}
}

func TestAddToCartVariantDiscipline(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(db)
	product := seedVariantProduct(t, db, 200)
	other := seedVariantProduct(t, db, 300)

	_, err := svc.AddToCart(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID,
	})
	var variantReq *apperror.VariantRequiredError
	if !errors.As(err, &variantReq) {
		t.Fatalf("err = %v, want VariantRequiredError", err)
	}

	_, err = svc.AddToCart(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID,
		VariantID: strptr(other.Variants[0].ID),
	})
	var badVariant *apperror.InvalidVariantError
	if !errors.As(err, &badVariant) {
		t.Fatalf("err = %v, want InvalidVariantError", err)
	}

	_, err = svc.AddToCart(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: "missing-id",
	})
	var notFound *apperror.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestUpdateCartQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(db)
	product := seedProduct(t, db, 100, 10, 0)

	item, err := svc.AddToCart(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if err := svc.UpdateQuantity(context.Background(), "user-1", item.ID, 5); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	var reloaded model.CartItem
	if err := db.First(&reloaded, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if reloaded.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", reloaded.Quantity)
	}

	err = svc.UpdateQuantity(context.Background(), "user-1", item.ID, 0)
	var validation *apperror.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError for non-positive quantity", err)
	}

	// Other users cannot touch the row.
	err = svc.UpdateQuantity(context.Background(), "someone-else", item.ID, 2)
	var notFound *apperror.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestRemoveFromCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(db)
	product := seedProduct(t, db, 100, 10, 0)

	item, err := svc.AddToCart(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID,
	})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if err := svc.RemoveFromCart(context.Background(), "user-1", item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	var notFound *apperror.NotFoundError
	if err := svc.RemoveFromCart(context.Background(), "user-1", item.ID); !errors.As(err, &notFound) {
		t.Fatalf("second remove err = %v, want NotFoundError", err)
	}
}
