//go:build tesseract

package recognize

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is the alternate OCR backend, useful when the CRNN weights are
// unavailable. Single-line page mode, dictionary correction off: field
// strings are stat tokens and numbers, not prose, and Tesseract must not
// "fix" them into English words.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseract creates a configured client.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page seg mode: %w", err)
	}
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("language_model_penalty_non_dict_word", "0")
	_ = client.SetVariable("language_model_penalty_non_freq_dict_word", "0")
	return &Tesseract{client: client}, nil
}

// Recognize implements Recognizer. The image goes through the same
// normalization contract as the CRNN so both backends see identical input.
func (t *Tesseract) Recognize(img image.Image) (string, float64, error) {
	norm := Preprocess(img)
	gray := image.NewGray(image.Rect(0, 0, ModelWidth, ModelHeight))
	for i, v := range norm {
		gray.Pix[i] = uint8(v * 255)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return "", 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", 0, err
	}
	text, err := t.client.Text()
	if err != nil {
		return "", 0, err
	}
	// gosseract exposes no per-word confidence on the plain Text call;
	// report a flat mid confidence and let the parser's vocabulary matching
	// reject garbage.
	return strings.TrimSpace(text), 0.5, nil
}

// Close releases the tesseract client.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client != nil {
		err := t.client.Close()
		t.client = nil
		return err
	}
	return nil
}

var _ Recognizer = (*Tesseract)(nil)
