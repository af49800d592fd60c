// Package store defines the persistence substrate the shopping list is
// written to: a synchronous key-value store of byte strings.
package store

import "errors"

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("store: key not found")

// Substrate is an application-scoped key-value store. Set replaces any
// prior value wholesale; there are no transactions.
type Substrate interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}
