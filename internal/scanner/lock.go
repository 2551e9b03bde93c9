package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often a blocked scan re-attempts the lock.
const lockRetryDelay = 100 * time.Millisecond

// Lock acquires the exclusive scan lock at path, waiting until it is free
// or ctx is done. The returned release function must be called when the
// scan and its catalog writes are complete.
func Lock(ctx context.Context, path string) (release func(), err error) {
	fl := flock.New(path)
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("scan lock %s held by another process", path)
	}
	return func() { _ = fl.Unlock() }, nil
}
