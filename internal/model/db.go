package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment and order lifecycle states. An order is created pending/pending,
// moves to paid/confirmed on verified payment, or to cancelled while still
// pending. Both end states are terminal.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"

	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	// Stock is the total owned units; ReservedStock the units provisionally
	// held by unpaid orders. 0 <= reserved_stock <= stock must hold at all
	// times, enforced by conditional updates in the product repository.
	Stock         int    `gorm:"not null;default:0" json:"stock"`
	ReservedStock int    `gorm:"not null;default:0" json:"reservedStock"`
	CategoryID    string `gorm:"size:36;index" json:"categoryId"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductVariant carries its own stock/reserved_stock pair; when an order
// line names a variant, the variant's counters are used instead of the
// product's.
type ProductVariant struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id"`
	ProductID     string  `gorm:"size:36;index;not null" json:"productId"`
	SKU           string  `gorm:"size:255;uniqueIndex" json:"sku"`
	Price         float64 `gorm:"not null" json:"price"`
	Stock         int     `gorm:"not null;default:0" json:"stock"`
	ReservedStock int     `gorm:"not null;default:0" json:"reservedStock"`

	Options []Option `gorm:"many2many:variant_options" json:"options,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Option is a named attribute value (e.g. name=color value=red) shared
// across variants.
type Option struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:64;not null;uniqueIndex:idx_option_name_value" json:"name"`
	Value string `gorm:"size:64;not null;uniqueIndex:idx_option_name_value" json:"value"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type Order struct {
	ID     string `gorm:"primaryKey;size:16" json:"id"` // OD-XXXXXXXX
	UserID string `gorm:"size:36;index;not null" json:"userId"`
	// TransactionID is the payment gateway's order reference, distinct from
	// the local order id.
	TransactionID     string  `gorm:"size:64;index" json:"transactionId"`
	TotalAmount       float64 `gorm:"not null" json:"totalAmount"`
	PaymentStatus     string  `gorm:"size:16;not null" json:"paymentStatus"`
	OrderStatus       string  `gorm:"size:16;not null" json:"orderStatus"`
	ShippingAddressID string  `gorm:"size:36" json:"shippingAddressId"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem snapshots quantity and line amount at order-creation time; the
// amount stays what the customer was charged even if the catalog price
// changes afterward.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"size:16;index;not null" json:"orderId"`
	ProductID string  `gorm:"size:36;index;not null" json:"productId"`
	VariantID *string `gorm:"size:36;index" json:"variantId,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Amount    float64 `gorm:"not null" json:"amount"`

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type CartItem struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;uniqueIndex:idx_cart_user_product_variant" json:"userId"`
	// VariantID is empty (not NULL) for variant-less products: unique
	// indexes treat NULLs as distinct, which would defeat the upsert.
	ProductID string `gorm:"size:36;not null;uniqueIndex:idx_cart_user_product_variant" json:"productId"`
	VariantID string `gorm:"size:36;not null;default:'';uniqueIndex:idx_cart_user_product_variant" json:"variantId,omitempty"`
	Quantity  int    `gorm:"not null;default:1" json:"quantity"`

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type WishlistItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_wishlist_user_product" json:"userId"`
	ProductID string `gorm:"size:36;not null;uniqueIndex:idx_wishlist_user_product" json:"productId"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type Address struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	UserID     string `gorm:"size:36;index;not null" json:"userId"`
	Name       string `gorm:"size:128;not null" json:"name"`
	Phone      string `gorm:"size:20;not null" json:"phone"`
	Line1      string `gorm:"size:255;not null" json:"line1"`
	Line2      string `gorm:"size:255" json:"line2"`
	City       string `gorm:"size:128;not null" json:"city"`
	State      string `gorm:"size:128;not null" json:"state"`
	PostalCode string `gorm:"size:16;not null" json:"postalCode"`
	IsDefault  bool   `gorm:"not null;default:false" json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
