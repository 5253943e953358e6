package csvdb

import "errors"

var (
	// ErrNoCoordinates is returned for rows which do not have a location.
	ErrNoCoordinates = errors.New("record has no coordinates")

	// ErrIncorrectIP is returned if range boundaries are not IPv4
	// addresses.
	ErrIncorrectIP = errors.New("incorrect ip address")

	// ErrIncorrectCoordinates is returned for unparseable or out of range
	// latitude and longitude.
	ErrIncorrectCoordinates = errors.New("incorrect coordinates")

	// ErrColumnsCount is returned if row has unexpected number of columns.
	ErrColumnsCount = errors.New("unexpected number of columns")
)
