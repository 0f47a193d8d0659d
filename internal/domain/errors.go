package domain

import "errors"

var (
	ErrInvalidCompanyID = errors.New("invalid company ID")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateSKU     = errors.New("SKU already exists")
	ErrNotFound         = errors.New("not found")
)
