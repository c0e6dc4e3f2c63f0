package identity

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrMultipleResults is returned when a single-record lookup matches more
// than one document, which means a uniqueness index is missing or broken.
// The store refuses to pick one silently.
var ErrMultipleResults = errors.New("query matched more than one record")

// ErrStoreClosed is returned by every operation after Close released the
// collection handle.
var ErrStoreClosed = errors.New("store is closed")

// ErrNilRecord is returned when a nil user or role is handed to a store call.
var ErrNilRecord = errors.New("nil record")

// IsDuplicateKey reports whether err is a uniqueness-constraint violation
// from the database, e.g. a second user with the same normalized name.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsDuplicateKeyError(err)
}

// IsMultipleResults reports whether err came from a broken single-record
// lookup.
func IsMultipleResults(err error) bool {
	return errors.Is(err, ErrMultipleResults)
}
