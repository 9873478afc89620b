package item

import (
	"errors"
	"testing"

	"github.com/artiscan/artiscan/domain/layout"
)

func rawSet(title, level, mainName, mainValue string, subs [4]string, equip string) RawFieldSet {
	raw := RawFieldSet{
		layout.FieldTitle:         {Text: title, Confidence: 0.99},
		layout.FieldLevel:         {Text: level, Confidence: 0.99},
		layout.FieldMainStatName:  {Text: mainName, Confidence: 0.99},
		layout.FieldMainStatValue: {Text: mainValue, Confidence: 0.99},
		layout.FieldEquip:         {Text: equip, Confidence: 0.99},
	}
	for i, f := range layout.SubStatFields {
		raw[f] = RawField{Text: subs[i], Confidence: 0.99}
	}
	return raw
}

func TestParseFullRecord(t *testing.T) {
	raw := rawSet("Royal Flora", "+20", "HP", "4,780",
		[4]string{"CRIT Rate+3.9%", "CRIT DMG+7.8%", "ATK+19", "Energy Recharge+5.2%"},
		"Equipped: Hu Tao")
	rec, err := NewParser().Parse(raw, 5)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.Name != "Royal Flora" || rec.SetKey != "NoblesseOblige" || rec.Slot != SlotFlower {
		t.Fatalf("identity: %+v", rec)
	}
	if rec.Star != 5 || rec.Level != 20 {
		t.Fatalf("star/level: %+v", rec)
	}
	if rec.MainStat.Kind != StatHP || rec.MainStat.Value != 4780 {
		t.Fatalf("main stat: %+v", rec.MainStat)
	}
	want := []Stat{
		{StatCritRate, 3.9},
		{StatCritDMG, 7.8},
		{StatATK, 19},
		{StatER, 5.2},
	}
	if len(rec.SubStats) != len(want) {
		t.Fatalf("substats: %+v", rec.SubStats)
	}
	for i, s := range want {
		if rec.SubStats[i] != s {
			t.Errorf("substat %d: got %+v, want %+v", i, rec.SubStats[i], s)
		}
	}
	if rec.EquippedBy != "Hu Tao" {
		t.Fatalf("equipped by: %q", rec.EquippedBy)
	}
}

func TestParseCorrectsRecognitionNoise(t *testing.T) {
	// One-glyph errors must snap back to the vocabulary.
	raw := rawSet("Roya1 Flora", "+16", "E1emental Mastery", "187",
		[4]string{"CRIT Rete+3.1%", "", "", ""}, "")
	rec, err := NewParser().Parse(raw, 5)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.Name != "Royal Flora" {
		t.Fatalf("name: %q", rec.Name)
	}
	if rec.MainStat.Kind != StatEM {
		t.Fatalf("main stat kind: %s", rec.MainStat.Kind)
	}
	if len(rec.SubStats) != 1 || rec.SubStats[0].Kind != StatCritRate {
		t.Fatalf("substats: %+v", rec.SubStats)
	}
}

func TestParsePercentSelectsVariant(t *testing.T) {
	raw := rawSet("Royal Pocket Watch", "+20", "ATK", "46.6%",
		[4]string{"HP+4.1%", "HP+239", "", ""}, "")
	rec, err := NewParser().Parse(raw, 5)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.MainStat.Kind != StatATKPercent || rec.MainStat.Value != 46.6 {
		t.Fatalf("main stat: %+v", rec.MainStat)
	}
	if rec.SubStats[0].Kind != StatHPPercent || rec.SubStats[1].Kind != StatHP {
		t.Fatalf("percent variants: %+v", rec.SubStats)
	}
}

func TestParseUnmatchedStatIsHardError(t *testing.T) {
	raw := rawSet("Royal Flora", "+20", "HP", "4780",
		[4]string{"Zzzzzzz+10", "", "", ""}, "")
	_, err := NewParser().Parse(raw, 5)
	var mf *MalformedFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("expected MalformedFieldError, got %v", err)
	}
	if mf.Field != layout.FieldSubStat1 {
		t.Fatalf("field: %s", mf.Field)
	}
}

func TestParseRejectsOutOfRangeLevel(t *testing.T) {
	for _, lvl := range []string{"+21", "-1", "", "abc"} {
		raw := rawSet("Royal Flora", lvl, "HP", "4780", [4]string{}, "")
		if _, err := NewParser().Parse(raw, 5); err == nil {
			t.Errorf("level %q: expected error", lvl)
		}
	}
}

func TestParseUnknownTitleIsHardError(t *testing.T) {
	raw := rawSet("Completely Unknown Thing", "+0", "HP", "717", [4]string{}, "")
	_, err := NewParser().Parse(raw, 3)
	var mf *MalformedFieldError
	if !errors.As(err, &mf) || mf.Field != layout.FieldTitle {
		t.Fatalf("expected title error, got %v", err)
	}
}

func TestEditDistanceBound(t *testing.T) {
	if d := editDistance("HP", "HP", 3); d != 0 {
		t.Fatalf("identical: %d", d)
	}
	if d := editDistance("CRIT Rate", "CRIT Rete", 3); d != 1 {
		t.Fatalf("one substitution: %d", d)
	}
	if d := editDistance("HP", "Elemental Mastery", 2); d <= 2 {
		t.Fatalf("bound not enforced: %d", d)
	}
}
