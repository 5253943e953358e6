package resolver

import "errors"

// ErrInvalidAddress is returned for frequency table keys which are not
// IP addresses.
var ErrInvalidAddress = errors.New("incorrect IP address")
