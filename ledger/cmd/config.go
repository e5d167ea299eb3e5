package cmd

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// rcConfig is the contents of ~/.ledgerrc.toml: defaults a user can set
// once instead of repeating on every invocation. Command-line flags
// always take precedence over these.
type rcConfig struct {
	File     string `toml:"file"`
	Columns  int    `toml:"columns"`
	Wide     bool   `toml:"wide"`
	Currency string `toml:"currency"`  // default commodity symbol for imports
	Color    string `toml:"color"`     // "auto" (default), "always", or "never"
	CacheDir string `toml:"cache_dir"` // base directory for bare `cache build` targets
}

// rcConfigPath returns the path loadRCConfig reads: $LEDGER_CONFIG if
// set, otherwise ~/.ledgerrc.toml.
func rcConfigPath() (string, error) {
	if p := os.Getenv("LEDGER_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ledgerrc.toml"), nil
}

// loadRCConfig reads the rc file if it exists. A missing file is not
// an error — it just means no defaults are applied.
func loadRCConfig() (rcConfig, error) {
	var cfg rcConfig

	path, err := rcConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyRCDefaults fills in any flag or package var left at its zero
// value with the corresponding rc setting. The print, balance, register,
// import, and cache build commands call it at the start of their RunE;
// watch and cache info do not.
func applyRCDefaults(cfg rcConfig) {
	if ledgerFilePath == "" && cfg.File != "" {
		ledgerFilePath = cfg.File
	}
	if overrideCurrency == "" && cfg.Currency != "" {
		overrideCurrency = cfg.Currency
	}
	if colorMode == "" {
		colorMode = cfg.Color
	}
	if cacheDir == "" && cfg.CacheDir != "" {
		cacheDir = cfg.CacheDir
	}
}
