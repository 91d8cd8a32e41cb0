package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBadPrice        = errors.New("malformed catalog price")
)
