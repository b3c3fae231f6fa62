package reference

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// LoadDir reads <table>.yaml for every known table in dir. A missing file is
// an empty table; a malformed one is an error.
func LoadDir(dir string) (*Lookup, error) {
	tables := make(map[Table][]Record, len(AllTables))
	for _, t := range AllTables {
		path := filepath.Join(dir, string(t)+".yaml")
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reference: read %s: %w", path, err)
		}
		var recs []Record
		if err := yaml.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("reference: parse %s: %w", path, err)
		}
		tables[t] = recs
	}
	return New(tables), nil
}

// WriteDir writes every non-empty table of l into dir as <table>.yaml.
func WriteDir(dir string, l *Lookup) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, t := range AllTables {
		recs := l.Records(t)
		if len(recs) == 0 {
			continue
		}
		data, err := yaml.Marshal(recs)
		if err != nil {
			return fmt.Errorf("reference: encode %s: %w", t, err)
		}
		if err := os.WriteFile(filepath.Join(dir, string(t)+".yaml"), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
