package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigFileName   = "appicon.json"
	DefaultSource    = "assets/icon/coffee_cart_icon.svg"
	IntermediateName = "temp_icon_256.png"
	IntermediateSize = 256
	DirPerm          = 0755
	FilePerm         = 0644
)

// EnsureDir creates dir and any missing ancestors. It is a no-op when the
// directory already exists.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// EnsureParent creates the directory that will hold file.
func EnsureParent(file string) error {
	return EnsureDir(filepath.Dir(file))
}

// Resolve joins a manifest path (always slash-separated) onto root.
func Resolve(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := EnsureParent(path); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
