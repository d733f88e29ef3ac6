package domain

// Stock ledger arithmetic. Pure computations over value inputs; callers
// apply the returned quantity and persist it.

const (
	msgQuantityInvalid   = "Quantity is negative or zero"
	msgInsufficientStock = "Insufficient stock"
)

// ReserveStock reserves qty units out of available and returns the new
// available quantity.
func ReserveStock(available, qty int) (int, error) {
	if qty <= 0 {
		return 0, NewValidation("Quantity", msgQuantityInvalid)
	}
	if available < qty {
		return 0, NewValidation("Quantity", msgInsufficientStock)
	}
	return available - qty, nil
}

// AdjustStock restores prev units to available and reserves next in one
// computation, so no intermediate state is ever observable.
func AdjustStock(available, prev, next int) (int, error) {
	if available+prev < next {
		return 0, NewValidation("Quantity", msgInsufficientStock)
	}
	return available + prev - next, nil
}

// ReleaseStock returns qty units to available. The caller commits the
// release and the order-item removal in one transaction, so a reservation
// is released at most once.
func ReleaseStock(available, qty int) int {
	return available + qty
}
