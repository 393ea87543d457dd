package paths

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	AppDirName     = "appicon"
	ConfigFileName = "appicon-config.json"
	LogFileName    = "appicon.log"
	DBFileName     = "appicon.db"
	RasterFileName = "icon.png"
	IconFileName   = "icon.ico"
	IconDirName    = "icons"
	DirPerm        = 0755
	FilePerm       = 0644
)

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Exists reports whether path exists. Errors other than "not exist"
// (e.g. permission denied on the parent) are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// DataDir returns the platform-specific data directory for appicon:
//   - Windows: %APPDATA%\appicon
//   - Unix:    ~/.config/appicon
//
// Falls back to os.TempDir()/appicon if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// IconDir returns the default directory for the icon files. It is a
// subdirectory of DataDir so history files never share it.
func IconDir() string {
	return filepath.Join(DataDir(), IconDirName)
}
