// Package id generates time-sortable run identifiers.
package id

import (
	cryptorand "crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu sync.Mutex

	// Monotonic entropy keeps IDs generated within the same millisecond
	// lexicographically increasing, so journal rows and SQLite indexes
	// stay in run order.
	entropy = ulid.Monotonic(cryptorand.Reader, 0)
)

// New returns a ULID string, sortable by generation time.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), entropy)
	if err != nil {
		panic(err)
	}
	return id.String()
}
