//go:build !windows

package paths

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Writable reports an error if the current user cannot create files in dir.
func Writable(dir string) error {
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	return nil
}
