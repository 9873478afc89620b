package export

import (
	"encoding/json"

	"github.com/artiscan/artiscan/domain/item"
)

// MingyuLab emits the genshin.pub calculator format: a flat artifact list
// with slot keys shared with the Mona dialect and displayed (not fractional)
// percent values.
type MingyuLab struct{}

type mingyuFile struct {
	Version   int          `json:"version"`
	Artifacts []mingyuItem `json:"artifacts"`
}

type mingyuItem struct {
	Set      string       `json:"set"`
	Position string       `json:"position"`
	Star     int          `json:"star"`
	Level    int          `json:"level"`
	MainStat mingyuStat   `json:"main_stat"`
	SubStats []mingyuStat `json:"sub_stats"`
}

type mingyuStat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Filename implements Exporter.
func (MingyuLab) Filename() string { return "mingyulab.json" }

// Export implements Exporter.
func (MingyuLab) Export(records []*item.Record) ([]byte, error) {
	out := mingyuFile{Version: 1, Artifacts: make([]mingyuItem, 0, len(records))}
	for _, r := range records {
		mi := mingyuItem{
			Set:      r.SetKey,
			Position: monaSlot[r.Slot],
			Star:     r.Star,
			Level:    r.Level,
			MainStat: mingyuStat{Name: string(r.MainStat.Kind), Value: r.MainStat.Value},
			SubStats: make([]mingyuStat, 0, len(r.SubStats)),
		}
		for _, s := range r.SubStats {
			mi.SubStats = append(mi.SubStats, mingyuStat{Name: string(s.Kind), Value: s.Value})
		}
		out.Artifacts = append(out.Artifacts, mi)
	}
	return json.MarshalIndent(out, "", "  ")
}
