package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/quadviz/quadviz/pkg/layout"
)

// Config holds the file-configurable defaults. Command-line flags
// override whatever the file provides.
//
// Example quadviz.toml:
//
//	[grid]
//	column_spacing = 30
//	row_spacing = 80
//	node_width = 25
//	node_height = 25
//
//	[render]
//	style = "classic"
//	format = "svg"
//	type = "grid"
//	scale = 2.0
type Config struct {
	Grid   layout.Grid  `toml:"grid"`
	Render RenderConfig `toml:"render"`
}

// RenderConfig holds default render settings.
type RenderConfig struct {
	Style  string  `toml:"style"`
	Format string  `toml:"format"`
	Type   string  `toml:"type"`
	Scale  float64 `toml:"scale"`
}

// defaultConfig returns the built-in defaults used when no config file
// exists.
func defaultConfig() Config {
	return Config{
		Grid: layout.DefaultGrid(),
		Render: RenderConfig{
			Style:  "classic",
			Format: "svg",
			Type:   "grid",
			Scale:  2.0,
		},
	}
}

// loadConfig reads the config file at path, or searches the standard
// locations when path is empty. A missing file is not an error; the
// defaults are returned.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	candidates := configSearchPaths()
	if path != "" {
		candidates = []string{path}
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", p, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", p, err)
		}
		if err := cfg.Grid.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", p, err)
		}
		return cfg, nil
	}

	if path != "" {
		return cfg, fmt.Errorf("config file not found: %s", path)
	}
	return cfg, nil
}
