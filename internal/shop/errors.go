package shop

import (
	"github.com/pkg/errors"
)

// Sentinel errors form the service-level taxonomy; the API layer maps them
// to HTTP statuses (invalid input 400, unauthorized 401, not found 404).
var (
	ErrProductNotFound    = errors.New("Product not found")
	ErrItemNotInCart      = errors.New("Item not in cart")
	ErrOrderNotFound      = errors.New("Order not found")
	ErrCartEmpty          = errors.New("Cart is empty")
	ErrShippingAddress    = errors.New("Shipping address is required")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrTokenInvalid       = errors.New("Invalid or expired token")
)

// FieldErrors carries per-field validation failures, serialized as a
// field-keyed map in API responses.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	for field, msg := range e {
		return field + ": " + msg
	}
	return "validation failed"
}
