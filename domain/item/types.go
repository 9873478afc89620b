// Package item defines the structured record produced per scanned item and
// the parser that builds it from raw recognized strings.
package item

import (
	"fmt"

	"github.com/artiscan/artiscan/domain/layout"
)

// StatKind identifies a stat using GOOD-format keys, the lingua franca of
// the downstream tools.
type StatKind string

const (
	StatHP         StatKind = "hp"
	StatHPPercent  StatKind = "hp_"
	StatATK        StatKind = "atk"
	StatATKPercent StatKind = "atk_"
	StatDEF        StatKind = "def"
	StatDEFPercent StatKind = "def_"
	StatEM         StatKind = "eleMas"
	StatER         StatKind = "enerRech_"
	StatCritRate   StatKind = "critRate_"
	StatCritDMG    StatKind = "critDMG_"
	StatHealing    StatKind = "heal_"
	StatPhysical   StatKind = "physical_dmg_"
	StatPyro       StatKind = "pyro_dmg_"
	StatHydro      StatKind = "hydro_dmg_"
	StatElectro    StatKind = "electro_dmg_"
	StatCryo       StatKind = "cryo_dmg_"
	StatAnemo      StatKind = "anemo_dmg_"
	StatGeo        StatKind = "geo_dmg_"
	StatDendro     StatKind = "dendro_dmg_"
)

// IsPercent reports whether the kind carries a percentage value.
func (k StatKind) IsPercent() bool {
	switch k {
	case StatHP, StatATK, StatDEF, StatEM:
		return false
	}
	return true
}

// Stat is one (kind, value) pair. Percent kinds store the displayed number
// (46.6 for "46.6%"), not a fraction.
type Stat struct {
	Kind  StatKind `json:"kind"`
	Value float64  `json:"value"`
}

// Slot is the equipment slot an item occupies.
type Slot string

const (
	SlotFlower  Slot = "flower"
	SlotPlume   Slot = "plume"
	SlotSands   Slot = "sands"
	SlotGoblet  Slot = "goblet"
	SlotCirclet Slot = "circlet"
)

// Record is the durable per-item output unit.
type Record struct {
	Name       string `json:"name"`
	SetKey     string `json:"set_key"`
	Slot       Slot   `json:"slot"`
	Star       int    `json:"star"`
	Level      int    `json:"level"`
	MainStat   Stat   `json:"main_stat"`
	SubStats   []Stat `json:"sub_stats"`
	EquippedBy string `json:"equipped_by,omitempty"`
}

// RawField is one recognized field string with its model confidence.
type RawField struct {
	Text       string
	Confidence float64
}

// RawFieldSet maps detail-pane fields to their recognized strings. Transient:
// produced per cell visit and consumed immediately by the parser.
type RawFieldSet map[layout.Field]RawField

// MalformedFieldError reports a field whose recognized text could not be
// parsed even after vocabulary correction. Per-item, never fatal to a scan.
type MalformedFieldError struct {
	Field layout.Field
	Text  string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed field %s: %q", e.Field, e.Text)
}
