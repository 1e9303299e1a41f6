package blockchain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrFetchFailed is returned when the upstream API cannot be reached or
	// answers with a non-2xx status to a query.
	ErrFetchFailed = errors.New("blockchain: fetch failed")

	// ErrInvalidResponse is returned when a response body cannot be decoded.
	ErrInvalidResponse = errors.New("blockchain: invalid response")

	// ErrBroadcastRejected matches every *BroadcastError.
	ErrBroadcastRejected = errors.New("blockchain: broadcast rejected")
)

// BroadcastError carries the service's reason for rejecting a transaction.
type BroadcastError struct {
	StatusCode int
	Detail     string
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("blockchain: broadcast rejected (HTTP %d): %s", e.StatusCode, e.Detail)
}

// Is makes errors.Is(err, ErrBroadcastRejected) hold.
func (e *BroadcastError) Is(target error) bool { return target == ErrBroadcastRejected }
