package item

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Fingerprint identifies an item by content. The UI exposes no stable
// per-item identifier, so dedup across scroll overlap keys on
// (name, slot, level, full stat tuple). Two genuinely distinct items with
// identical rolls collapse to one fingerprint, an accepted approximation.
type Fingerprint uint64

// Fingerprint derives the content fingerprint of the record. Substat order
// is canonicalized so recognition-order jitter cannot split duplicates.
func (r *Record) Fingerprint() Fingerprint {
	subs := make([]string, len(r.SubStats))
	for i, s := range r.SubStats {
		subs[i] = fmt.Sprintf("%s=%.1f", s.Kind, s.Value)
	}
	sort.Strings(subs)

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d|%d|%s=%.1f|%s",
		r.Name, r.Slot, r.Star, r.Level,
		r.MainStat.Kind, r.MainStat.Value,
		strings.Join(subs, "|"))
	return Fingerprint(h.Sum64())
}
