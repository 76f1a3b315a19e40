package cli

import (
	"os"
	"path/filepath"
)

// appName names the per-user cache and config directories.
const appName = "quadviz"

// cacheDir returns the cache directory, honoring XDG_CACHE_HOME and
// falling back to ~/.cache/quadviz.
func cacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configSearchPaths returns the candidate config file locations in
// priority order: the working directory first, then the XDG config home.
func configSearchPaths() []string {
	paths := []string{"quadviz.toml"}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, appName, "quadviz.toml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "quadviz.toml"))
	}
	return paths
}
