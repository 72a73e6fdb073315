//go:build integration

package itest

import (
	"errors"
	"os"
	"path/filepath"
)

// How many parent directories to walk before giving up on the module root.
const rootSearchDepth = 10

func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < rootSearchDepth; i++ {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}
	return "", errors.New("no go.mod above " + wd)
}
