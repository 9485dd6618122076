package apperror

import "fmt"

// ValidationError reports a malformed or incomplete request body.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports a missing resource, scoped to the requesting user
// where ownership applies.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports a request that contradicts current state, such as
// duplicate order lines or a cart entry that already exists.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// ProductUnavailableError lists requested product ids that do not exist in
// the catalog.
type ProductUnavailableError struct {
	MissingIDs []string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("some products in the order are not available: %v", e.MissingIDs)
}

// VariantRequiredError is returned when an order line omits a variant for a
// product that defines variants.
type VariantRequiredError struct {
	ProductID string
}

func (e *VariantRequiredError) Error() string {
	return fmt.Sprintf("product %s requires a variant selection", e.ProductID)
}

// InvalidVariantError is returned when the given variant does not belong to
// the referenced product.
type InvalidVariantError struct {
	ProductID string
	VariantID string
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("variant %s does not belong to product %s", e.VariantID, e.ProductID)
}

// InsufficientStockError carries enough detail for the client to reduce the
// quantity and retry.
type InsufficientStockError struct {
	ProductID string
	VariantID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	if e.VariantID != "" {
		return fmt.Sprintf("insufficient stock for variant %s of product %s: available %d, requested %d",
			e.VariantID, e.ProductID, e.Available, e.Requested)
	}
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// SignatureMismatchError is deliberately opaque: callers never learn which
// part of the signature check failed.
type SignatureMismatchError struct{}

func (e *SignatureMismatchError) Error() string { return "invalid payment signature" }

// CannotCancelError is returned when an order is no longer in a cancellable
// state.
type CannotCancelError struct {
	OrderID string
}

func (e *CannotCancelError) Error() string {
	return fmt.Sprintf("order %s is already processed and cannot be cancelled", e.OrderID)
}
