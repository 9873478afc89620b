package scan

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/artiscan/artiscan/domain/capture"
	"github.com/artiscan/artiscan/domain/item"
	"github.com/artiscan/artiscan/domain/layout"
	"github.com/artiscan/artiscan/domain/recognize"
)

// ItemSource reads the currently selected item. Satisfied by ItemReader;
// tests substitute scripted implementations.
type ItemSource interface {
	ReadItem() (item.RawFieldSet, int, error)
}

// ReaderFactory builds the per-scan item source once the layout is resolved.
type ReaderFactory func(source capture.Source, rec recognize.Recognizer, table *layout.Table, origin image.Point) ItemSource

// ItemReader reads the currently selected item's detail pane: one capture,
// sliced into field crops, each pushed through the recognizer. All crops come
// from the same frame so the fields of a record can never mix two items.
type ItemReader struct {
	source capture.Source
	rec    recognize.Recognizer
	table  *layout.Table
	origin image.Point // window origin in screen coordinates

	// Dump, when set, receives every field crop (debugging hook).
	Dump func(field layout.Field, img image.Image)
}

// NewItemReader wires a reader for one resolved layout.
func NewItemReader(source capture.Source, rec recognize.Recognizer, table *layout.Table, origin image.Point) *ItemReader {
	return &ItemReader{source: source, rec: rec, table: table, origin: origin}
}

// ReadItem captures the detail pane and recognizes every text field.
// Recognition of a frame's regions has no ordering dependency, so the fields
// fan out to goroutines and join before returning. Returns the raw field
// set and the counted star rarity.
func (r *ItemReader) ReadItem() (item.RawFieldSet, int, error) {
	paneRect := r.table.Pane.Add(r.origin)
	frame, err := r.source.Capture(paneRect)
	if err != nil {
		return nil, 0, fmt.Errorf("capture pane: %w", err)
	}

	stars := CountStars(cropField(frame, r.table.Fields[layout.FieldStars]))
	if stars < 1 || stars > 5 {
		return nil, 0, fmt.Errorf("%w: counted %d stars", ErrUnreadableRarity, stars)
	}

	raw := make(item.RawFieldSet, len(layout.TextFields))
	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error
	for _, f := range layout.TextFields {
		crop := cropField(frame, r.table.Fields[f])
		if r.Dump != nil {
			r.Dump(f, crop)
		}
		wg.Add(1)
		go func(f layout.Field, crop *image.RGBA) {
			defer wg.Done()
			text, conf, err := r.rec.Recognize(crop)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("recognize %s: %w", f, err)
				}
				return
			}
			raw[f] = item.RawField{Text: text, Confidence: conf}
		}(f, crop)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, 0, firstErr
	}
	return raw, stars, nil
}

// cropField extracts a pane-relative rectangle from the pane frame, clamped
// to frame bounds, as an independently owned RGBA image.
func cropField(frame *image.RGBA, rect image.Rectangle) *image.RGBA {
	r := rect.Intersect(frame.Bounds())
	if r.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), frame.SubImage(r), r.Min, draw.Src)
	return out
}
