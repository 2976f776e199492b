package database

import "errors"

var (
	// ErrNotFound is returned when the requested row is absent or inactive
	ErrNotFound = errors.New("record not found")

	// ErrLeadClaimed is returned when claiming a lead that already has a
	// claimant; the first claimant wins and later claims are conflicts
	ErrLeadClaimed = errors.New("lead is already claimed")

	// ErrEmptyClaimant is returned when a claim carries no claimant name
	ErrEmptyClaimant = errors.New("claimant name is required")

	// ErrDuplicateEmail is returned when creating a user with an email
	// that is already registered
	ErrDuplicateEmail = errors.New("email already registered")
)
