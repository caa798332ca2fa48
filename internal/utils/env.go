package utils

import (
	"os"
	"path/filepath"
)

// ProjectRoot walks up from the working directory until it finds the
// directory containing go.mod. It returns os.ErrNotExist when the walk
// reaches the filesystem root without a hit, which callers treat as
// "run from outside a checkout" rather than a failure.
func ProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// DockerDir returns the checkout's docker directory, which holds the
// compose file and env fixtures.
func DockerDir() (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "docker"), nil
}
