package cart

import "errors"

var (
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrEmptyCart       = errors.New("no items found in cart")
	ErrSizeRequired    = errors.New("valid size required for this product")
	ErrInvalidSize     = errors.New("invalid size")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
