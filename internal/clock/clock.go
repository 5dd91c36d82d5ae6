// Package clock waits for the system clock to be synchronized before the
// face starts showing the time.
package clock

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"
)

// ErrTimeout is returned when the sync flag did not appear in time.
var ErrTimeout = errors.New("clock not synchronized")

// Synced reports whether the sync flag file exists.
func Synced(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// WaitSynced polls for path until it exists, ctx is done or timeout elapses.
// A zero timeout waits until ctx is done.
func WaitSynced(ctx context.Context, path string, poll, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	logged := false
	for {
		ok, err := Synced(path)
		if err != nil {
			return err
		}
		if ok {
			if logged {
				log.Printf("clock: synchronized")
			}
			return nil
		}
		if !logged {
			log.Printf("clock: waiting for %s", path)
			logged = true
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w after %v", ErrTimeout, timeout)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
