package frequency

import "errors"

// ErrMalformedLine is returned for a line which is not a pair of
// a non-negative count and an IP address.
var ErrMalformedLine = errors.New("malformed line")
