package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart indicates an order was built from a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidOrder indicates the submitted order violates a pricing or
	// field invariant.
	ErrInvalidOrder = errors.New("invalid order")
)
