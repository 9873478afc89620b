package export

import (
	"encoding/json"

	"github.com/artiscan/artiscan/domain/item"
)

// Mona emits the mona-uranai optimizer format: records grouped per slot,
// percent values as fractions, its own stat-name dialect.
type Mona struct{}

type monaFile struct {
	Version string       `json:"version"`
	Flower  []monaItem   `json:"flower"`
	Feather []monaItem   `json:"feather"`
	Sand    []monaItem   `json:"sand"`
	Cup     []monaItem   `json:"cup"`
	Head    []monaItem   `json:"head"`
}

type monaItem struct {
	SetName    string    `json:"setName"`
	Position   string    `json:"position"`
	MainTag    monaTag   `json:"mainTag"`
	NormalTags []monaTag `json:"normalTags"`
	Level      int       `json:"level"`
	Star       int       `json:"star"`
	Equip      string    `json:"equip,omitempty"`
}

type monaTag struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

var monaSlot = map[item.Slot]string{
	item.SlotFlower:  "flower",
	item.SlotPlume:   "feather",
	item.SlotSands:   "sand",
	item.SlotGoblet:  "cup",
	item.SlotCirclet: "head",
}

var monaStat = map[item.StatKind]string{
	item.StatHP:         "lifeStatic",
	item.StatHPPercent:  "lifePercentage",
	item.StatATK:        "attackStatic",
	item.StatATKPercent: "attackPercentage",
	item.StatDEF:        "defendStatic",
	item.StatDEFPercent: "defendPercentage",
	item.StatEM:         "elementalMastery",
	item.StatER:         "recharge",
	item.StatCritRate:   "critical",
	item.StatCritDMG:    "criticalDamage",
	item.StatHealing:    "cureEffect",
	item.StatPhysical:   "physicalBonus",
	item.StatPyro:       "fireBonus",
	item.StatHydro:      "waterBonus",
	item.StatElectro:    "thunderBonus",
	item.StatCryo:       "iceBonus",
	item.StatAnemo:      "windBonus",
	item.StatGeo:        "rockBonus",
	item.StatDendro:     "grassBonus",
}

// Filename implements Exporter.
func (Mona) Filename() string { return "mona.json" }

// Export implements Exporter.
func (Mona) Export(records []*item.Record) ([]byte, error) {
	out := monaFile{
		Version: "1",
		Flower:  []monaItem{},
		Feather: []monaItem{},
		Sand:    []monaItem{},
		Cup:     []monaItem{},
		Head:    []monaItem{},
	}
	for _, r := range records {
		mi := monaItem{
			SetName:    r.SetKey,
			Position:   monaSlot[r.Slot],
			MainTag:    monaTagOf(r.MainStat),
			NormalTags: make([]monaTag, 0, len(r.SubStats)),
			Level:      r.Level,
			Star:       r.Star,
			Equip:      characterKey(r.EquippedBy),
		}
		for _, s := range r.SubStats {
			mi.NormalTags = append(mi.NormalTags, monaTagOf(s))
		}
		switch r.Slot {
		case item.SlotFlower:
			out.Flower = append(out.Flower, mi)
		case item.SlotPlume:
			out.Feather = append(out.Feather, mi)
		case item.SlotSands:
			out.Sand = append(out.Sand, mi)
		case item.SlotGoblet:
			out.Cup = append(out.Cup, mi)
		case item.SlotCirclet:
			out.Head = append(out.Head, mi)
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// monaTagOf converts a stat; mona stores percents as fractions.
func monaTagOf(s item.Stat) monaTag {
	v := s.Value
	if s.Kind.IsPercent() {
		v /= 100
	}
	return monaTag{Name: monaStat[s.Kind], Value: v}
}
