/*
Package errors gives every failure a code that survives the trip to the
client.

Root errors name a category:

	ErrInput         validation failure (bad royalty, price, paid amount)
	ErrUnauthorized  caller is not allowed to perform the operation
	ErrNotFound      unknown token or market item
	ErrConflict      duplicate metadata, item already or never listed
	ErrState         operation not allowed in the current state (paused)

An extension that needs a precise reason registers it under a category

	var ErrInvalidRoyalty = errors.ErrInput.Register(1000, "royalty out of range")

and both ErrInvalidRoyalty.Is and ErrInput.Is accept it.

Create errors with Wrap or New where they happen. The innermost wrap records
the stack trace, which %+v prints.
*/
package errors
