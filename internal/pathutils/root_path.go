package pathutils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FindModuleRoot returns the absolute path to the root directory of the Go module
// containing dir, by searching for a go.mod file in dir and its parent directories.
// An empty dir stands for the current working directory.
// Returns an error if dir cannot be resolved, if filesystem operations fail,
// or if no go.mod file is found.
func FindModuleRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to get current working directory")
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve absolute path of %s", dir)
	}
	for {
		goModPath := filepath.Join(dir, "go.mod")
		fi, err := os.Stat(goModPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return "", errors.Wrapf(err, "failed to stat %s", goModPath)
			}
			// File doesn't exist, continue searching parent directories
		} else if !fi.IsDir() {
			return dir, nil
		}

		d := filepath.Dir(dir)
		if d == dir {
			break
		}
		dir = d
	}
	return "", errors.New("go.mod not found in directory tree")
}

// IsModuleDir reports whether dir is the root directory of a Go module.
func IsModuleDir(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil && !fi.IsDir()
}
