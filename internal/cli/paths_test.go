package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cache", "quadviz"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", "quadviz"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	paths := configSearchPaths()
	if len(paths) != 2 {
		t.Fatalf("configSearchPaths() returned %d paths, want 2", len(paths))
	}

	// Working directory first, so a project-local quadviz.toml wins.
	if paths[0] != "quadviz.toml" {
		t.Errorf("paths[0] = %q, want %q", paths[0], "quadviz.toml")
	}
	if want := filepath.Join("/tmp/xdg-config", "quadviz", "quadviz.toml"); paths[1] != want {
		t.Errorf("paths[1] = %q, want %q", paths[1], want)
	}
}

func TestConfigSearchPathsDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	os.Unsetenv("XDG_CONFIG_HOME")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	paths := configSearchPaths()
	if len(paths) != 2 {
		t.Fatalf("configSearchPaths() returned %d paths, want 2", len(paths))
	}
	if want := filepath.Join(home, ".config", "quadviz", "quadviz.toml"); paths[1] != want {
		t.Errorf("paths[1] = %q, want %q", paths[1], want)
	}
}
