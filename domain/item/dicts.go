package item

// Closed vocabularies for lexical matching. Recognition output is matched
// against these, never treated as free text.

// statNames maps the on-screen stat label to its flat kind. The percent
// variant is selected later from the parsed value's "%" suffix.
var statNames = map[string]StatKind{
	"HP":                 StatHP,
	"ATK":                StatATK,
	"DEF":                StatDEF,
	"Elemental Mastery":  StatEM,
	"Energy Recharge":    StatER,
	"CRIT Rate":          StatCritRate,
	"CRIT DMG":           StatCritDMG,
	"Healing Bonus":      StatHealing,
	"Physical DMG Bonus": StatPhysical,
	"Pyro DMG Bonus":     StatPyro,
	"Hydro DMG Bonus":    StatHydro,
	"Electro DMG Bonus":  StatElectro,
	"Cryo DMG Bonus":     StatCryo,
	"Anemo DMG Bonus":    StatAnemo,
	"Geo DMG Bonus":      StatGeo,
	"Dendro DMG Bonus":   StatDendro,
}

// percentKind maps a flat kind to its percent variant where one exists.
var percentKind = map[StatKind]StatKind{
	StatHP:  StatHPPercent,
	StatATK: StatATKPercent,
	StatDEF: StatDEFPercent,
}

// pieceIdentity resolves an item name to its set key and slot.
type pieceIdentity struct {
	SetKey string
	Slot   Slot
}

// setPiece builds the five-piece name table for one set.
func setPieces(setKey, flower, plume, sands, goblet, circlet string) map[string]pieceIdentity {
	return map[string]pieceIdentity{
		flower:  {setKey, SlotFlower},
		plume:   {setKey, SlotPlume},
		sands:   {setKey, SlotSands},
		goblet:  {setKey, SlotGoblet},
		circlet: {setKey, SlotCirclet},
	}
}

// pieces maps every known item name to its identity. Extend alongside the
// recognition vocabulary when new sets ship.
var pieces = func() map[string]pieceIdentity {
	all := map[string]pieceIdentity{}
	for _, m := range []map[string]pieceIdentity{
		setPieces("GladiatorsFinale",
			"Gladiator's Nostalgia", "Gladiator's Destiny",
			"Gladiator's Longing", "Gladiator's Intoxication",
			"Gladiator's Triumphus"),
		setPieces("WanderersTroupe",
			"Troupe's Dawnlight", "Bard's Arrow Feather",
			"Concert's Final Hour", "Wanderer's String-Kettle",
			"Conductor's Top Hat"),
		setPieces("NoblesseOblige",
			"Royal Flora", "Royal Plume",
			"Royal Pocket Watch", "Royal Silver Urn",
			"Royal Masque"),
		setPieces("BloodstainedChivalry",
			"Bloodstained Flower of Iron", "Bloodstained Black Plume",
			"Bloodstained Final Hour", "Bloodstained Chevalier's Goblet",
			"Bloodstained Iron Mask"),
		setPieces("CrimsonWitchOfFlames",
			"Witch's Flower of Blaze", "Witch's Ever-Burning Plume",
			"Witch's End Time", "Witch's Heart Flames",
			"Witch's Scorching Hat"),
		setPieces("ViridescentVenerer",
			"In Remembrance of Viridescent Fields", "Viridescent Arrow Feather",
			"Viridescent Venerer's Determination", "Viridescent Venerer's Vessel",
			"Viridescent Venerer's Diadem"),
		setPieces("EmblemOfSeveredFate",
			"Magnificent Tsuba", "Sundered Feather",
			"Storm Cage", "Scarlet Vessel",
			"Ornate Kabuto"),
		setPieces("ShimenawasReminiscence",
			"Entangling Bloom", "Shaft of Remembrance",
			"Morning Dew's Moment", "Hopeful Heart",
			"Capricious Visage"),
		setPieces("HuskOfOpulentDreams",
			"Bloom Times", "Plume of Luxury",
			"Song of Life", "Calabash of Awakening",
			"Skeletal Hat"),
		setPieces("OceanHuedClam",
			"Sea-Dyed Blossom", "Deep Palace's Plume",
			"Cowry of Parting", "Pearl Cage",
			"Crown of Watatsumi"),
	} {
		for name, id := range m {
			all[name] = id
		}
	}
	return all
}()

// itemNames is the flat list of known names for nearest-match correction.
var itemNames = func() []string {
	names := make([]string, 0, len(pieces))
	for n := range pieces {
		names = append(names, n)
	}
	return names
}()

// statNameList is the flat list of stat labels for nearest-match correction.
var statNameList = func() []string {
	names := make([]string, 0, len(statNames))
	for n := range statNames {
		names = append(names, n)
	}
	return names
}()
