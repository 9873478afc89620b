package scan

import (
	"fmt"
	"image"
	"log/slog"
	"testing"

	"github.com/artiscan/artiscan/config"
	"github.com/artiscan/artiscan/domain/capture"
	"github.com/artiscan/artiscan/domain/input"
	"github.com/artiscan/artiscan/domain/item"
	"github.com/artiscan/artiscan/domain/layout"
	"github.com/artiscan/artiscan/domain/recognize"
	"github.com/artiscan/artiscan/domain/window"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// fakeLocator reports a fixed geometry.
type fakeLocator struct {
	geom window.Geometry
	err  error
}

func (f fakeLocator) Locate(string) (window.Geometry, error) { return f.geom, f.err }

// fakeDriver counts input events; onClick fires after each click.
type fakeDriver struct {
	clicks  int
	scrolls int
	onClick func(n int)
}

func (d *fakeDriver) MoveAndClick(x, y int) {
	d.clicks++
	if d.onClick != nil {
		d.onClick(d.clicks)
	}
}
func (d *fakeDriver) Scroll(ticks int) { d.scrolls++ }

// stubSource returns blank frames sized to the request, always stable.
func stubSource() capture.Source {
	return capture.SourceFunc(func(r image.Rectangle) (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
	})
}

// scriptItem is one synthetic inventory entry.
type scriptItem struct {
	star int
	raw  item.RawFieldSet
}

// scriptedReader replays a fixed inventory, cycling from the start once
// exhausted, exactly what a wrapped scroll list looks like to the scanner.
type scriptedReader struct {
	items             []scriptItem
	next              int
	calls             int
	failuresRemaining int
	err               error // failure mode, ErrUnreadableRarity when unset
}

func (s *scriptedReader) ReadItem() (item.RawFieldSet, int, error) {
	s.calls++
	if s.failuresRemaining > 0 {
		s.failuresRemaining--
		if s.err != nil {
			return nil, 0, s.err
		}
		return nil, 0, ErrUnreadableRarity
	}
	it := s.items[s.next%len(s.items)]
	s.next++
	return it.raw, it.star, nil
}

// synthItem builds a parseable raw field set; mainValue varies the
// fingerprint so tests can mint unique or duplicate items at will.
func synthItem(star, level int, mainValue float64) scriptItem {
	raw := item.RawFieldSet{
		layout.FieldTitle:         {Text: "Royal Flora", Confidence: 0.99},
		layout.FieldLevel:         {Text: fmt.Sprintf("+%d", level), Confidence: 0.99},
		layout.FieldMainStatName:  {Text: "HP", Confidence: 0.99},
		layout.FieldMainStatValue: {Text: fmt.Sprintf("%.0f", mainValue), Confidence: 0.99},
		layout.FieldEquip:         {Text: "", Confidence: 0.99},
	}
	for _, f := range layout.SubStatFields {
		raw[f] = item.RawField{Text: "", Confidence: 0.99}
	}
	return scriptItem{star: star, raw: raw}
}

func testConfig() *config.Config {
	return &config.Config{
		MinStar:       1,
		MinLevel:      0,
		ReadRetries:   1,
		MinConfidence: 0.1,
		WindowTitle:   "test",
	}
}

func newTestController(t *testing.T, cfg *config.Config, reader ItemSource, driver input.Driver, canceller *input.Canceller) *Controller {
	t.Helper()
	geom, err := window.NewGeometry(0, 0, 1600, 900)
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(cfg, discardLogger, fakeLocator{geom: geom}, stubSource(), driver, nil, canceller)
	c.SetReaderFactory(func(capture.Source, recognize.Recognizer, *layout.Table, image.Point) ItemSource {
		return reader
	})
	return c
}

func TestScanWrapDeduplicatesAndCompletes(t *testing.T) {
	items := make([]scriptItem, 12)
	for i := range items {
		items[i] = synthItem(5, i%21, 100+float64(i))
	}
	reader := &scriptedReader{items: items}
	c := newTestController(t, testConfig(), reader, &fakeDriver{}, &input.Canceller{})

	res := c.Run()
	if res.State != StateCompleted {
		t.Fatalf("state: %s", res.State)
	}
	if len(res.Records) != len(items) {
		t.Fatalf("records: %d, want %d", len(res.Records), len(items))
	}
	seen := map[item.Fingerprint]bool{}
	for _, r := range res.Records {
		fp := r.Fingerprint()
		if seen[fp] {
			t.Fatalf("duplicate fingerprint in output: %v", fp)
		}
		seen[fp] = true
	}
}

func TestRarityFilterPreservesEncounterOrder(t *testing.T) {
	stars := []int{3, 4, 5, 4, 2}
	items := make([]scriptItem, len(stars))
	for i, s := range stars {
		items[i] = synthItem(s, 20, 100+float64(i))
	}
	cfg := testConfig()
	cfg.MinStar = 4
	reader := &scriptedReader{items: items}
	c := newTestController(t, cfg, reader, &fakeDriver{}, &input.Canceller{})

	res := c.Run()
	if res.State != StateCompleted {
		t.Fatalf("state: %s", res.State)
	}
	wantStars := []int{4, 5, 4}
	wantValues := []float64{101, 102, 103}
	if len(res.Records) != len(wantStars) {
		t.Fatalf("records: %d, want %d", len(res.Records), len(wantStars))
	}
	for i, r := range res.Records {
		if r.Star != wantStars[i] || r.MainStat.Value != wantValues[i] {
			t.Errorf("record %d: star %d value %.0f, want star %d value %.0f",
				i, r.Star, r.MainStat.Value, wantStars[i], wantValues[i])
		}
	}
}

func TestRetryBoundSkipsAndResumes(t *testing.T) {
	items := make([]scriptItem, 6)
	for i := range items {
		items[i] = synthItem(5, 20, 100+float64(i))
	}
	cfg := testConfig()
	cfg.ReadRetries = 3
	// Every attempt on the first cell fails; the retry budget must be spent
	// exactly once and the scan must move on.
	reader := &scriptedReader{items: items, failuresRemaining: 3}
	c := newTestController(t, cfg, reader, &fakeDriver{}, &input.Canceller{})

	res := c.Run()
	if res.State != StateCompleted {
		t.Fatalf("state: %s", res.State)
	}
	if res.Skipped != 1 {
		t.Fatalf("skipped: %d, want 1", res.Skipped)
	}
	if len(res.Records) != len(items) {
		t.Fatalf("records: %d, want %d", len(res.Records), len(items))
	}
}

func TestCancellationBetweenCellsKeepsCompleteRecords(t *testing.T) {
	items := make([]scriptItem, 100)
	for i := range items {
		items[i] = synthItem(5, i%21, 100+float64(i))
	}
	canceller := &input.Canceller{}
	driver := &fakeDriver{}
	driver.onClick = func(n int) {
		if n == 4 {
			canceller.Cancel()
		}
	}
	reader := &scriptedReader{items: items}
	c := newTestController(t, testConfig(), reader, driver, canceller)

	res := c.Run()
	if res.State != StateCancelled {
		t.Fatalf("state: %s", res.State)
	}
	if len(res.Records) != 4 {
		t.Fatalf("records: %d, want 4", len(res.Records))
	}
	for i, r := range res.Records {
		if r.MainStat.Kind == "" || r.Name == "" {
			t.Errorf("record %d is partial: %+v", i, r)
		}
	}
}

func TestUnsupportedWindowFailsBeforeScanning(t *testing.T) {
	geom, err := window.NewGeometry(0, 0, 1000, 900)
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(testConfig(), discardLogger, fakeLocator{geom: geom},
		stubSource(), &fakeDriver{}, nil, &input.Canceller{})
	res := c.Run()
	if res.State != StateFailed {
		t.Fatalf("state: %s", res.State)
	}
	if len(res.Records) != 0 {
		t.Fatalf("records on failed start: %d", len(res.Records))
	}
}

func TestFilteredTailTerminates(t *testing.T) {
	// A star-sorted inventory ends in a run of below-minimum items. Once the
	// list stops advancing the scanner sees the same filtered items forever;
	// their fingerprints must still trip wrap detection or the scan scrolls
	// without end.
	items := []scriptItem{synthItem(3, 12, 100), synthItem(3, 8, 200)}
	cfg := testConfig()
	cfg.MinStar = 4
	reader := &scriptedReader{items: items}
	c := newTestController(t, cfg, reader, &fakeDriver{}, &input.Canceller{})

	res := c.Run()
	if res.State != StateCompleted {
		t.Fatalf("state: %s", res.State)
	}
	if len(res.Records) != 0 {
		t.Fatalf("records: %d, want 0", len(res.Records))
	}
	// Two full pages at most: one discovering the fingerprints, one all
	// duplicates.
	if reader.calls > 80 {
		t.Fatalf("scan did not stop promptly: %d reads", reader.calls)
	}
}

func TestCaptureLossFailsButKeepsRecords(t *testing.T) {
	items := make([]scriptItem, 100)
	for i := range items {
		items[i] = synthItem(5, i%21, 100+float64(i))
	}
	reader := &scriptedReader{items: items}
	driver := &fakeDriver{}
	// Pull the rug after three successful reads.
	driver.onClick = func(n int) {
		if n == 4 {
			reader.failuresRemaining = 1 << 30
			reader.err = fmt.Errorf("capture pane: %w", capture.ErrCaptureUnavailable)
		}
	}
	c := newTestController(t, testConfig(), reader, driver, &input.Canceller{})

	res := c.Run()
	if res.State != StateFailed {
		t.Fatalf("state: %s", res.State)
	}
	if len(res.Records) != 3 {
		t.Fatalf("records: %d, want 3", len(res.Records))
	}
}

func TestFullyUnreadablePageFails(t *testing.T) {
	reader := &scriptedReader{
		items:             []scriptItem{synthItem(5, 20, 100)},
		failuresRemaining: 1 << 30,
	}
	c := newTestController(t, testConfig(), reader, &fakeDriver{}, &input.Canceller{})

	res := c.Run()
	if res.State != StateFailed {
		t.Fatalf("state: %s", res.State)
	}
	if res.Skipped == 0 {
		t.Fatal("expected skipped cells to be counted")
	}
	if len(res.Records) != 0 {
		t.Fatalf("records: %d", len(res.Records))
	}
}

func TestMaxItemsStopsScan(t *testing.T) {
	items := make([]scriptItem, 100)
	for i := range items {
		items[i] = synthItem(5, i%21, 100+float64(i))
	}
	cfg := testConfig()
	cfg.MaxItems = 7
	reader := &scriptedReader{items: items}
	c := newTestController(t, cfg, reader, &fakeDriver{}, &input.Canceller{})

	res := c.Run()
	if res.State != StateCompleted {
		t.Fatalf("state: %s", res.State)
	}
	if len(res.Records) != cfg.MaxItems {
		t.Fatalf("records: %d, want %d", len(res.Records), cfg.MaxItems)
	}
}
