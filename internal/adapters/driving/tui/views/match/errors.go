package match

import "errors"

// ErrNoMatchingService indicates that no matching service was provided.
var ErrNoMatchingService = errors.New("matching service is required")
