package item

import "testing"

func record(level int, main Stat, subs ...Stat) *Record {
	return &Record{
		Name:     "Royal Flora",
		SetKey:   "NoblesseOblige",
		Slot:     SlotFlower,
		Star:     5,
		Level:    level,
		MainStat: main,
		SubStats: subs,
	}
}

func TestFingerprintStableAcrossSubstatOrder(t *testing.T) {
	a := record(20, Stat{StatHP, 4780}, Stat{StatCritRate, 3.9}, Stat{StatATK, 19})
	b := record(20, Stat{StatHP, 4780}, Stat{StatATK, 19}, Stat{StatCritRate, 3.9})
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("substat order changed the fingerprint")
	}
}

func TestFingerprintDistinguishesContent(t *testing.T) {
	base := record(20, Stat{StatHP, 4780}, Stat{StatCritRate, 3.9})
	cases := map[string]*Record{
		"level":         record(19, Stat{StatHP, 4780}, Stat{StatCritRate, 3.9}),
		"main value":    record(20, Stat{StatHP, 4270}, Stat{StatCritRate, 3.9}),
		"substat value": record(20, Stat{StatHP, 4780}, Stat{StatCritRate, 3.5}),
		"substat count": record(20, Stat{StatHP, 4780}),
	}
	for name, other := range cases {
		if base.Fingerprint() == other.Fingerprint() {
			t.Errorf("%s: fingerprints collide", name)
		}
	}
}

func TestFingerprintEquippedByIgnored(t *testing.T) {
	// Re-equipping an item between scans must not create a "new" item.
	a := record(20, Stat{StatHP, 4780})
	b := record(20, Stat{StatHP, 4780})
	b.EquippedBy = "Hu Tao"
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("equip state changed the fingerprint")
	}
}
