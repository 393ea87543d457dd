//go:build windows

package paths

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Writable reports an error if dir is missing or not a directory.
// FILE_ATTRIBUTE_READONLY is ignored: Windows does not enforce it on
// directories and sets it on customised folders. ACLs are not inspected;
// a denied write still surfaces later.
func Writable(dir string) error {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	if attrs&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
