package item

import (
	"strconv"
	"strings"

	"github.com/artiscan/artiscan/domain/layout"
)

// Parser converts a RawFieldSet into a typed Record. Recognized strings are
// matched against closed vocabularies with bounded edit-distance correction,
// so single-glyph recognition noise does not discard an item.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser { return &Parser{} }

// Parse builds a Record from raw field strings plus the separately counted
// star rarity. An unmatched token after nearest-match correction is a hard
// parse error, never a silent drop.
func (p *Parser) Parse(raw RawFieldSet, star int) (*Record, error) {
	rec := &Record{Star: star}

	// Title → name, set, slot.
	title := strings.TrimSpace(raw[layout.FieldTitle].Text)
	name, ok := nearestMatch(title, itemNames)
	if !ok {
		return nil, &MalformedFieldError{Field: layout.FieldTitle, Text: title}
	}
	id := pieces[name]
	rec.Name = name
	rec.SetKey = id.SetKey
	rec.Slot = id.Slot

	// Level: displayed as "+NN".
	levelText := strings.TrimSpace(raw[layout.FieldLevel].Text)
	level, err := strconv.Atoi(strings.TrimPrefix(levelText, "+"))
	if err != nil || level < 0 || level > 20 {
		return nil, &MalformedFieldError{Field: layout.FieldLevel, Text: levelText}
	}
	rec.Level = level

	// Main stat: label and value live in separate regions.
	mainName := strings.TrimSpace(raw[layout.FieldMainStatName].Text)
	mainKind, ok := matchStat(mainName)
	if !ok {
		return nil, &MalformedFieldError{Field: layout.FieldMainStatName, Text: mainName}
	}
	mainValueText := strings.TrimSpace(raw[layout.FieldMainStatValue].Text)
	mainValue, percent, err := parseNumber(mainValueText)
	if err != nil {
		return nil, &MalformedFieldError{Field: layout.FieldMainStatValue, Text: mainValueText}
	}
	rec.MainStat = Stat{Kind: resolveKind(mainKind, percent), Value: mainValue}

	// Substats: up to four "<label>+<value>" lines; blank lines are normal
	// on low-level items.
	for _, f := range layout.SubStatFields {
		text := strings.TrimSpace(raw[f].Text)
		if text == "" {
			continue
		}
		stat, err := parseSubStat(f, text)
		if err != nil {
			return nil, err
		}
		rec.SubStats = append(rec.SubStats, stat)
	}

	// Equip status is legitimately blank for unequipped items.
	equip := strings.TrimSpace(raw[layout.FieldEquip].Text)
	if equip != "" {
		rec.EquippedBy = strings.TrimSpace(strings.TrimPrefix(equip, "Equipped:"))
	}

	return rec, nil
}

func parseSubStat(f layout.Field, text string) (Stat, error) {
	label, valueText, found := strings.Cut(text, "+")
	if !found {
		return Stat{}, &MalformedFieldError{Field: f, Text: text}
	}
	kind, ok := matchStat(strings.TrimSpace(label))
	if !ok {
		return Stat{}, &MalformedFieldError{Field: f, Text: text}
	}
	value, percent, err := parseNumber(strings.TrimSpace(valueText))
	if err != nil {
		return Stat{}, &MalformedFieldError{Field: f, Text: text}
	}
	return Stat{Kind: resolveKind(kind, percent), Value: value}, nil
}

// matchStat matches a recognized label against the stat vocabulary.
func matchStat(label string) (StatKind, bool) {
	name, ok := nearestMatch(label, statNameList)
	if !ok {
		return "", false
	}
	return statNames[name], true
}

// resolveKind upgrades a flat kind to its percent variant when the value
// carried a "%" suffix. Kinds that are inherently percent stay unchanged.
func resolveKind(kind StatKind, percent bool) StatKind {
	if percent {
		if pk, ok := percentKind[kind]; ok {
			return pk
		}
	}
	return kind
}

// parseNumber parses a displayed value: optional comma thousands separators,
// "." decimal point, optional "%" suffix.
func parseNumber(s string) (value float64, percent bool, err error) {
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSuffix(s, "%")
	}
	s = strings.ReplaceAll(s, ",", "")
	value, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
	return value, percent, err
}

// nearestMatch returns the vocabulary entry closest to token, accepting it
// only within an edit-distance budget proportional to the token length.
// Exact matches short-circuit.
func nearestMatch(token string, vocab []string) (string, bool) {
	if token == "" {
		return "", false
	}
	budget := len(token) / 4
	if budget < 1 {
		budget = 1
	}
	best := ""
	bestDist := budget + 1
	for _, cand := range vocab {
		if cand == token {
			return cand, true
		}
		d := editDistance(token, cand, bestDist)
		if d < bestDist {
			best, bestDist = cand, d
		}
	}
	if bestDist > budget {
		return "", false
	}
	return best, true
}

// editDistance is Levenshtein with an early-exit bound: once every entry of
// a row exceeds bound the result cannot come back under it.
func editDistance(a, b string, bound int) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(rb)-len(ra) >= bound+1 {
		return bound + 1
	}
	prev := make([]int, len(ra)+1)
	cur := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		cur[0] = j
		rowMin := cur[0]
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[i] = min(prev[i]+1, min(cur[i-1]+1, prev[i-1]+cost))
			if cur[i] < rowMin {
				rowMin = cur[i]
			}
		}
		if rowMin > bound {
			return bound + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(ra)]
}
