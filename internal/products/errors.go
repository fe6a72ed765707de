package products

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateName   = errors.New("a product with this name already exists")
	ErrDuplicateNumber = errors.New("this article number is already in use")
	ErrInUse           = errors.New("product is referenced by existing orders")
)
