package recognize

import (
	"os"
	"path/filepath"
	"testing"
)

func writeVocab(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadVocab(t *testing.T) {
	path := writeVocab(t, `{"0": "", "1": "H", "2": "P", "3": "%"}`)
	v, err := LoadVocab(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 4 {
		t.Fatalf("len: %d", len(v))
	}
	if v.Token(1) != "H" || v.Token(3) != "%" {
		t.Fatalf("tokens: %q %q", v.Token(1), v.Token(3))
	}
	if v.Token(BlankIndex) != "" {
		t.Fatalf("blank token: %q", v.Token(BlankIndex))
	}
	if v.Token(99) != "" || v.Token(-1) != "" {
		t.Fatal("out-of-range index must decode to nothing")
	}
}

func TestLoadVocabRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"missing index": `{"0": "", "5": "A"}`,
		"non-numeric":   `{"zero": ""}`,
		"empty":         `{}`,
		"not json":      `hello`,
	}
	for name, content := range cases {
		if _, err := LoadVocab(writeVocab(t, content)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadVocabMissingFile(t *testing.T) {
	if _, err := LoadVocab(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
