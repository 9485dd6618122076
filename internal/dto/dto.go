package dto

import "storefront-api/internal/model"

type OrderItemInput struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
}

type PlaceOrderRequest struct {
	OrderItems        []OrderItemInput `json:"orderItems"`
	ShippingAddressID string           `json:"shippingAddressId"`
}

// RazorpayCheckout is everything the client needs to open the gateway's
// payment UI for the created order.
type RazorpayCheckout struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"keyId"`
	Receipt  string  `json:"receipt"`
}

type PlaceOrderResponse struct {
	Message  string           `json:"message"`
	Order    *model.Order     `json:"order"`
	Razorpay RazorpayCheckout `json:"razorpay"`
}

type VerifyOrderRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type CancelOrderRequest struct {
	OrderID string `json:"orderId"`
}

type AddToCartRequest struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type AddToWishlistRequest struct {
	ProductID string `json:"productId"`
}

type AddressRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	IsDefault  bool   `json:"isDefault"`
}
