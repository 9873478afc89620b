package export

import (
	"encoding/json"

	"github.com/artiscan/artiscan/domain/item"
)

// GOOD emits the Genshin Open Object Description interchange format.
type GOOD struct{}

type goodFile struct {
	Format    string         `json:"format"`
	Version   int            `json:"version"`
	Source    string         `json:"source"`
	Artifacts []goodArtifact `json:"artifacts"`
}

type goodArtifact struct {
	SetKey      string        `json:"setKey"`
	SlotKey     string        `json:"slotKey"`
	Level       int           `json:"level"`
	Rarity      int           `json:"rarity"`
	MainStatKey string        `json:"mainStatKey"`
	Location    string        `json:"location"`
	Lock        bool          `json:"lock"`
	Substats    []goodSubstat `json:"substats"`
}

type goodSubstat struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Filename implements Exporter.
func (GOOD) Filename() string { return "good.json" }

// Export implements Exporter.
func (GOOD) Export(records []*item.Record) ([]byte, error) {
	out := goodFile{
		Format:    "GOOD",
		Version:   2,
		Source:    "artiscan",
		Artifacts: make([]goodArtifact, 0, len(records)),
	}
	for _, r := range records {
		a := goodArtifact{
			SetKey:      r.SetKey,
			SlotKey:     string(r.Slot),
			Level:       r.Level,
			Rarity:      r.Star,
			MainStatKey: string(r.MainStat.Kind),
			Location:    characterKey(r.EquippedBy),
			Substats:    make([]goodSubstat, 0, len(r.SubStats)),
		}
		for _, s := range r.SubStats {
			a.Substats = append(a.Substats, goodSubstat{Key: string(s.Kind), Value: s.Value})
		}
		out.Artifacts = append(out.Artifacts, a)
	}
	return json.MarshalIndent(out, "", "  ")
}
