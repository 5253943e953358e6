package providers

import "errors"

var (
	// ErrNoMatch is returned if provider knows nothing about the given IP
	// address.
	ErrNoMatch = errors.New("no match found")

	// ErrNoLocation is returned if provider has found the IP address but
	// this record has no coordinates attached (country-level databases,
	// anycast or bogon networks).
	ErrNoLocation = errors.New("match found, but no location")

	// ErrDatabaseIsNotReadyYet returns if you are trying to access
	// an offline provider which was shut down or was never opened.
	ErrDatabaseIsNotReadyYet = errors.New("database is not initialized yet")

	// ErrCircuitBreakerOpened is returned if provider has failed too many
	// times in a row and is not asked for a while.
	ErrCircuitBreakerOpened = errors.New("circuit breaker is opened")
)
