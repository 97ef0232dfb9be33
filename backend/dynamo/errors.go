package dynamo

import "errors"

// ErrNotFound is returned by Get when no item exists for the key.
var ErrNotFound = errors.New("dbkit: dynamodb item not found")
