package export

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/artiscan/artiscan/domain/item"
)

func closeTo(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

func sampleRecords() []*item.Record {
	return []*item.Record{
		{
			Name:     "Royal Flora",
			SetKey:   "NoblesseOblige",
			Slot:     item.SlotFlower,
			Star:     5,
			Level:    20,
			MainStat: item.Stat{Kind: item.StatHP, Value: 4780},
			SubStats: []item.Stat{
				{Kind: item.StatCritRate, Value: 3.9},
				{Kind: item.StatATK, Value: 19},
			},
			EquippedBy: "Hu Tao",
		},
		{
			Name:     "Royal Pocket Watch",
			SetKey:   "NoblesseOblige",
			Slot:     item.SlotSands,
			Star:     5,
			Level:    16,
			MainStat: item.Stat{Kind: item.StatATKPercent, Value: 46.6},
			SubStats: []item.Stat{
				{Kind: item.StatER, Value: 11.7},
			},
		},
	}
}

func TestGOODExportRoundTrip(t *testing.T) {
	data, err := GOOD{}.Export(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}
	var got goodFile
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Format != "GOOD" || got.Version != 2 || got.Source != "artiscan" {
		t.Fatalf("header: %+v", got)
	}
	if len(got.Artifacts) != 2 {
		t.Fatalf("artifacts: %d", len(got.Artifacts))
	}
	a := got.Artifacts[0]
	if a.SetKey != "NoblesseOblige" || a.SlotKey != "flower" || a.Rarity != 5 || a.Level != 20 {
		t.Fatalf("artifact identity: %+v", a)
	}
	if a.MainStatKey != "hp" || a.Location != "HuTao" {
		t.Fatalf("artifact keys: %+v", a)
	}
	if a.Substats[0].Key != "critRate_" || a.Substats[0].Value != 3.9 {
		t.Fatalf("substat: %+v", a.Substats[0])
	}
	if got.Artifacts[1].MainStatKey != "atk_" || got.Artifacts[1].Location != "" {
		t.Fatalf("second artifact: %+v", got.Artifacts[1])
	}
}

func TestMonaExportGroupsAndScales(t *testing.T) {
	data, err := Mona{}.Export(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}
	var got monaFile
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Flower) != 1 || len(got.Sand) != 1 {
		t.Fatalf("slot grouping: %+v", got)
	}
	if len(got.Feather) != 0 || len(got.Cup) != 0 || len(got.Head) != 0 {
		t.Fatalf("empty slots must stay empty arrays: %+v", got)
	}
	flower := got.Flower[0]
	if flower.MainTag.Name != "lifeStatic" || flower.MainTag.Value != 4780 {
		t.Fatalf("flat main stat: %+v", flower.MainTag)
	}
	if flower.NormalTags[0].Name != "critical" || !closeTo(flower.NormalTags[0].Value, 0.039) {
		t.Fatalf("percent substat must be a fraction: %+v", flower.NormalTags[0])
	}
	if flower.Equip != "HuTao" {
		t.Fatalf("equip: %q", flower.Equip)
	}
	sand := got.Sand[0]
	if sand.MainTag.Name != "attackPercentage" || !closeTo(sand.MainTag.Value, 0.466) {
		t.Fatalf("percent main stat must be a fraction: %+v", sand.MainTag)
	}
}

func TestMingyuLabExportKeepsDisplayedValues(t *testing.T) {
	data, err := MingyuLab{}.Export(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}
	var got mingyuFile
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Artifacts) != 2 {
		t.Fatalf("artifacts: %d", len(got.Artifacts))
	}
	sand := got.Artifacts[1]
	if sand.Position != "sand" || sand.MainStat.Value != 46.6 {
		t.Fatalf("percent values are displayed, not fractional: %+v", sand)
	}
}

func TestByFormat(t *testing.T) {
	for format, count := range map[string]int{"mona": 1, "mingyulab": 1, "good": 1, "all": 3} {
		exps, err := ByFormat(format)
		if err != nil {
			t.Errorf("%s: %v", format, err)
			continue
		}
		if len(exps) != count {
			t.Errorf("%s: %d exporters, want %d", format, len(exps), count)
		}
	}
	if _, err := ByFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSaveWritesEveryFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	exps, err := ByFormat("all")
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(dir, exps, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"mona.json", "mingyulab.json", "good.json"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestCharacterKey(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"Hu Tao":      "HuTao",
		"Zhongli":     "Zhongli",
		"Kamisato(?)": "Kamisato(?)",
	}
	for in, want := range cases {
		if got := characterKey(in); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}
