// Package env manages the build output tree:
//
//	<root>/
//	  debug/
//	    orca
//	    tui
//	  release/
//	    ...
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultRoot is the build root relative to the working directory.
const DefaultRoot = "build"

var (
	// ErrPathConflict indicates a path that must be a directory is something else.
	ErrPathConflict = errors.New("path exists and is not a directory")

	// ErrUnsafePath indicates a build root that must never be removed.
	ErrUnsafePath = errors.New("refusing to remove unsafe path")
)

// OutputDir returns the directory holding artifacts for config.
func OutputDir(root, config string) string {
	return filepath.Join(root, config)
}

// ArtifactPath returns the path of the compiled executable.
func ArtifactPath(root, config, name string) string {
	return filepath.Join(root, config, name)
}

// EnsureDir creates dir if it is absent. It fails with ErrPathConflict if
// dir exists but is not a directory.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%s: %w", dir, ErrPathConflict)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.Mkdir(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		return nil
	default:
		return err
	}
}

// Clean removes the build root recursively. A missing root is not an error;
// removed reports whether anything was deleted.
func Clean(root string) (removed bool, err error) {
	if err := checkRemovable(root); err != nil {
		return false, err
	}
	info, err := os.Lstat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s: %w", root, ErrPathConflict)
	}
	if err := os.RemoveAll(root); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", root, err)
	}
	return true, nil
}

func checkRemovable(root string) error {
	if root == "" {
		return fmt.Errorf("%w: empty build root", ErrUnsafePath)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	home, _ := os.UserHomeDir()
	switch abs {
	case filepath.VolumeName(abs) + string(filepath.Separator), cwd, home:
		return fmt.Errorf("%w %q", ErrUnsafePath, root)
	}
	return nil
}
