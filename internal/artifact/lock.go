// SPDX-License-Identifier: MIT

package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run holds the lock for the same output.
var ErrLocked = errors.New("artifact: output is locked by another run")

// Lock takes an advisory lock guarding path so two scheduled runs never write
// the same artifact concurrently. The returned release func only unlocks: the
// lock file stays on disk so every run contends on the same inode.
func Lock(path string) (release func() error, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	lockPath := path + ".lock"
	fl := flock.New(lockPath)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}

	return func() error {
		if err := fl.Unlock(); err != nil {
			return fmt.Errorf("unlock %s: %w", lockPath, err)
		}
		return nil
	}, nil
}
