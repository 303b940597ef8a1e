package explorer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey reports a lookup key of the wrong type, length or encoding.
	ErrInvalidKey = errors.New("invalid key")
	// ErrOutOfRange reports a block index before genesis or past the chain tip.
	ErrOutOfRange = errors.New("index out of range")
	// ErrNoPreviousBlock is returned when navigating back from genesis.
	ErrNoPreviousBlock = errors.New("no previous block")
	// ErrNoNextBlock is returned when navigating forward from the chain tip.
	ErrNoNextBlock = errors.New("no next block")
	// ErrChainMismatch reports broken hash linkage between neighbouring blocks,
	// typically a reorganization observed mid-traversal.
	ErrChainMismatch = errors.New("chain mismatch")
	// ErrRemoteUnavailable wraps every failed data source call.
	ErrRemoteUnavailable = errors.New("remote unavailable")
)

func remoteError(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrRemoteUnavailable, fmt.Sprintf(format, args...), err)
}
