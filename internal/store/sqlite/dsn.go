package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// parseDSN turns a sqlite:// DSN or a bare filesystem path into the driver
// path. Bare paths are the common case: the CLI's --output flag is a file
// path.
func parseDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("empty sqlite DSN")
	}

	if !strings.HasPrefix(dsn, "sqlite://") {
		return dsn, nil
	}

	rest := strings.TrimPrefix(dsn, "sqlite://")

	if rest == ":memory:" {
		return ":memory:", nil
	}

	if strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, "./") {
		return rest, nil
	}

	if strings.Contains(rest, "?") {
		parts := strings.SplitN(rest, "?", 2)
		path, query := parts[0], parts[1]

		unescaped, err := url.PathUnescape(path)
		if err != nil {
			return "", fmt.Errorf("unescaping path: %w", err)
		}
		path = unescaped

		if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
			path = "./" + path
		}
		return path + "?" + query, nil
	}

	unescaped, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("unescaping path: %w", err)
	}
	rest = unescaped

	if !filepath.IsAbs(rest) {
		rest = "./" + rest
	}

	return rest, nil
}
