// Package errors provides custom error types for catalog operations.
package errors

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
)
