package store

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when a record lookup or a keyed mutation
	// matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned when a stock decrement would take the
	// product quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrZeroStockDrop is returned in legacy-compatibility mode when an order
	// would leave the product with exactly zero stock.
	ErrZeroStockDrop = errors.New("order would exhaust stock")
)
