// Package filex contains small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold path, so a database
// file can be opened there. In-memory and URI-style SQLite DSNs ("file:...",
// ":memory:") are left alone. It returns the directory that was ensured, or ""
// when nothing needed to be created.
func EnsureParentDir(path string) (string, error) {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return "", nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
