package recognize

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// BlankIndex is the CTC blank class. Class 0 of the pretrained weights.
const BlankIndex = 0

// Vocab maps model class indices to output tokens. Index 0 is the blank
// symbol and decodes to nothing.
type Vocab []string

// LoadVocab reads an index→token JSON dictionary, the companion artifact of
// the model weights: {"0": "", "1": "A", "2": "B", ...}.
func LoadVocab(path string) (Vocab, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}
	var byIndex map[string]string
	if err := json.Unmarshal(raw, &byIndex); err != nil {
		return nil, fmt.Errorf("parse vocab: %w", err)
	}
	if len(byIndex) == 0 {
		return nil, fmt.Errorf("vocab %s is empty", path)
	}
	v := make(Vocab, len(byIndex))
	for k, tok := range byIndex {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(byIndex) {
			return nil, fmt.Errorf("vocab %s: bad index %q", path, k)
		}
		v[i] = tok
	}
	return v, nil
}

// Token returns the token for a class index, empty for blank or out of range.
func (v Vocab) Token(i int) string {
	if i == BlankIndex || i < 0 || i >= len(v) {
		return ""
	}
	return v[i]
}
