package services

import "errors"

// Service-level error kinds. Handlers match these with errors.Is and map them
// to HTTP statuses; anything else is treated as an internal failure.
var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryInUse      = errors.New("cannot delete category with associated products")
	ErrInvalidPrice       = errors.New("price must be greater than zero")
)
