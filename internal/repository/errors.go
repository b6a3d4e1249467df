package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when creating an entity whose key is
	// already taken.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrEmptyBalance is returned when draining a balance that holds
	// nothing.
	ErrEmptyBalance = errors.New("balance is empty")
)
