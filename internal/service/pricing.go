package service

// Flat-rate checkout charges. Orders above the discount threshold get a
// fixed discount; shipping is charged on every order.
const (
	discountThreshold = 999.0
	discountAmount    = 100.0
	shippingCharge    = 20.0
)

// ComputeTotal derives the payable total from the calculated line-item sum.
// It is pure and re-derivable for auditing: the same inputs always produce
// the same charge breakdown.
func ComputeTotal(calculatedTotal float64) (total, discount, shipping float64) {
	if calculatedTotal > discountThreshold {
		discount = discountAmount
	}
	shipping = shippingCharge
	total = calculatedTotal - discount + shipping

	return total, discount, shipping
}
