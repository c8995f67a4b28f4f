package repositories

import "errors"

// ErrRecordNotFound is returned by lookups that match no row. Services map it
// to their own not-found kind so handlers never see store-level errors.
var ErrRecordNotFound = errors.New("record not found")
