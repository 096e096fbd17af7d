package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"coldb/internal/catalog"
	"coldb/internal/index"
)

// metadataFile returns the path of db's metadata text file within dataDir
// (spec.md §4.9: "<db_name>.meta" alongside the column data files).
func metadataFile(dataDir, dbName string) string {
	return filepath.Join(dataDir, dbName+".meta")
}

// LoadDatabase reads dbName's metadata file and every column it names,
// reconstructing a fully populated catalog.Database (spec.md §4.9 load
// order: read metadata, then each column's data and index, in table and
// column order).
func LoadDatabase(dataDir, dbName string) (*catalog.Database, error) {
	f, err := os.Open(metadataFile(dataDir, dbName))
	if err != nil {
		return nil, fmt.Errorf("persist: open metadata for database %q: %w", dbName, err)
	}
	defer f.Close()

	meta, err := readMetadata(f)
	if err != nil {
		return nil, fmt.Errorf("persist: parse metadata for database %q: %w", dbName, err)
	}

	db := catalog.NewDatabase(meta.Name)
	for _, tm := range meta.Tables {
		tbl, err := db.CreateTable(tm.Name, tm.ColCount)
		if err != nil {
			return nil, fmt.Errorf("persist: create table %q: %w", tm.Name, err)
		}
		for _, cm := range tm.Columns {
			typ, err := parseValueType(cm.Type)
			if err != nil {
				return nil, fmt.Errorf("persist: table %q: %w", tm.Name, err)
			}
			kind, err := index.ParseKind(cm.IndexKind)
			if err != nil {
				return nil, fmt.Errorf("persist: table %q column %q: %w", tm.Name, cm.Name, err)
			}
			clustered := cm.Name == tm.ClusterColumn

			col, err := readColumn(dataDir, cm.Name, typ, cm.Count, kind, clustered)
			if err != nil {
				return nil, fmt.Errorf("persist: table %q: %w", tm.Name, err)
			}
			if err := tbl.AddLoadedColumn(col); err != nil {
				return nil, fmt.Errorf("persist: table %q: %w", tm.Name, err)
			}
		}
		if tm.ClusterColumn != "null" {
			if cc, ok := tbl.Column(tm.ClusterColumn); ok {
				if err := tbl.SetClusterColumn(cc); err != nil {
					return nil, fmt.Errorf("persist: table %q: %w", tm.Name, err)
				}
			}
		}
	}
	return db, nil
}

// SyncDatabase writes db's metadata file and every column's data file under
// dataDir (spec.md §4.9 sync order: data and index per column, then
// metadata last, so a crash mid-sync never leaves a metadata file pointing
// at column files that were never written).
func SyncDatabase(dataDir string, db *catalog.Database) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("persist: create data directory %q: %w", dataDir, err)
	}

	for _, tbl := range db.Tables() {
		for _, col := range tbl.Columns() {
			if err := writeColumn(dataDir, col); err != nil {
				return err
			}
		}
	}

	f, err := os.Create(metadataFile(dataDir, db.Name))
	if err != nil {
		return fmt.Errorf("persist: create metadata for database %q: %w", db.Name, err)
	}
	defer f.Close()

	if err := writeMetadata(f, db); err != nil {
		return fmt.Errorf("persist: write metadata for database %q: %w", db.Name, err)
	}
	return nil
}
