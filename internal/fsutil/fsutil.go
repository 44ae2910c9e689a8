// Package fsutil has the path helpers the command-line tools share.
package fsutil

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandUser resolves "~" and "~name" prefixes through the user
// database. Other paths must already be absolute.
func ExpandUser(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if path[0] == '~' {
		name, rest := path[1:], ""
		if i := strings.IndexByte(name, '/'); i >= 0 {
			name, rest = name[:i], name[i:]
		}

		home, err := homeOf(name)
		if err != nil {
			return "", err
		}
		return filepath.Join(home, rest), nil
	}

	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("not an absolute path: %q", path)
	}
	return filepath.Clean(path), nil
}

func homeOf(name string) (string, error) {
	if name == "" {
		u, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("failed to find the current user: %w", err)
		}
		return u.HomeDir, nil
	}

	u, err := user.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("no such user %q: %w", name, err)
	}
	return u.HomeDir, nil
}
