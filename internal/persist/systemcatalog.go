package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SystemCatalog is the data directory's top-level index of which databases
// exist (spec.md §6: "one system metadata file listing databases"),
// realized as a small TOML document rather than the bit-for-bit text format
// §4.9 specifies for the per-database metadata and per-column files: those
// two are pinned to an exact byte layout, but nothing in spec.md constrains
// how the *list of databases* itself is recorded, so it gets the ambient
// config format this repo already carries (SPEC_FULL.md §B).
type SystemCatalog struct {
	Databases []DatabaseEntry `toml:"database"`
}

// DatabaseEntry is one row of the system catalog.
type DatabaseEntry struct {
	Name       string `toml:"name"`
	TableCount int    `toml:"table_count"`
}

func systemCatalogFile(dataDir string) string {
	return filepath.Join(dataDir, "databases.toml")
}

// LoadSystemCatalog reads the data directory's database list. A missing
// file is treated as an empty catalog: a brand-new data directory has not
// synced anything yet.
func LoadSystemCatalog(dataDir string) (*SystemCatalog, error) {
	path := systemCatalogFile(dataDir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &SystemCatalog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read system catalog %q: %w", path, err)
	}

	var cat SystemCatalog
	if _, err := toml.Decode(string(data), &cat); err != nil {
		return nil, fmt.Errorf("persist: decode system catalog %q: %w", path, err)
	}
	return &cat, nil
}

// WriteSystemCatalog overwrites the data directory's database list.
func WriteSystemCatalog(dataDir string, cat *SystemCatalog) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("persist: create data directory %q: %w", dataDir, err)
	}
	f, err := os.Create(systemCatalogFile(dataDir))
	if err != nil {
		return fmt.Errorf("persist: create system catalog %q: %w", systemCatalogFile(dataDir), err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cat); err != nil {
		return fmt.Errorf("persist: encode system catalog: %w", err)
	}
	return nil
}
