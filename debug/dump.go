package debug

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
)

// Dumper writes field crops to disk as PNG so model mispredictions can be
// inspected (and the crops reused as training data). Safe for concurrent use.
type Dumper struct {
	dir    string
	logger *slog.Logger
	seq    atomic.Uint64
}

// NewDumper creates the dump directory and returns a Dumper.
func NewDumper(dir string, logger *slog.Logger) (*Dumper, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Dumper{dir: dir, logger: logger}, nil
}

// Dump writes one crop named by its field and a running sequence number.
// Best-effort: failures are logged, never propagated into the scan.
func (d *Dumper) Dump(field string, img image.Image) {
	n := d.seq.Add(1)
	path := filepath.Join(d.dir, fmt.Sprintf("%06d_%s.png", n, field))
	f, err := os.Create(path)
	if err != nil {
		if d.logger != nil {
			d.logger.Warn("dump create failed", "path", path, "error", err)
		}
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil && d.logger != nil {
		d.logger.Warn("dump encode failed", "path", path, "error", err)
	}
}
