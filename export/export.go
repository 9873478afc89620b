// Package export serializes scanned records into the JSON dialects of the
// downstream optimizer tools. The scan core hands over an ordered record
// slice and makes no assumption about these formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artiscan/artiscan/domain/item"
)

// Exporter renders records into one output format.
type Exporter interface {
	// Filename is the conventional output file name for the format.
	Filename() string
	// Export renders the records.
	Export(records []*item.Record) ([]byte, error)
}

// ByFormat resolves a format name ("mona", "mingyulab", "good", "all") to
// its exporters.
func ByFormat(format string) ([]Exporter, error) {
	switch format {
	case "mona":
		return []Exporter{Mona{}}, nil
	case "mingyulab":
		return []Exporter{MingyuLab{}}, nil
	case "good":
		return []Exporter{GOOD{}}, nil
	case "all":
		return []Exporter{Mona{}, MingyuLab{}, GOOD{}}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Save writes every exporter's output into dir.
func Save(dir string, exporters []Exporter, records []*item.Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, e := range exporters {
		data, err := e.Export(records)
		if err != nil {
			return fmt.Errorf("export %s: %w", e.Filename(), err)
		}
		path := filepath.Join(dir, e.Filename())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// characterKey turns an equip line ("Hu Tao") into the PascalCase key the
// downstream formats use ("HuTao"). Empty stays empty.
func characterKey(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Fields(name)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
