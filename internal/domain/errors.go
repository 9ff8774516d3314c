package domain

import "errors"

var (
	// ErrInvalidQuantity signals a non-positive quantity in a mutation request.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrCartNotInitialized signals a remote mutation attempted before a
	// remote cart id was established.
	ErrCartNotInitialized = errors.New("cart not initialized")

	// ErrCartNotFound signals the cart API does not know the given cart id.
	ErrCartNotFound = errors.New("cart not found")

	// ErrRemoteUnavailable signals a transport failure or non-2xx response
	// from the cart API.
	ErrRemoteUnavailable = errors.New("remote cart unavailable")

	// ErrAuthRequired signals an operation that needs a signed-in principal.
	ErrAuthRequired = errors.New("authentication required")

	// ErrProductNotFound signals the catalog does not know the given product id.
	ErrProductNotFound = errors.New("product not found")
)
