package scan

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/artiscan/artiscan/config"
	"github.com/artiscan/artiscan/domain/capture"
	"github.com/artiscan/artiscan/domain/input"
	"github.com/artiscan/artiscan/domain/item"
	"github.com/artiscan/artiscan/domain/layout"
	"github.com/artiscan/artiscan/domain/recognize"
	"github.com/artiscan/artiscan/domain/window"
)

// Controller is the scan state machine. It owns the session, drives the
// input driver and reader in strict order, and is the only component that
// mutates scan state. All UI-facing steps run on the single Run goroutine;
// the canceller is the only cross-goroutine signal and is polled at cell
// boundaries, never mid-capture, so no partial record is ever committed.
type Controller struct {
	cfg       *config.Config
	logger    *slog.Logger
	locator   window.Locator
	source    capture.Source
	driver    input.Driver
	rec       recognize.Recognizer
	parser    *item.Parser
	canceller *input.Canceller

	state     State
	session   *Session
	listeners []StateListener

	// Dump forwards field crops to a debug sink when set.
	Dump func(field layout.Field, img image.Image)

	// newReader builds the item source once the layout is known; tests
	// substitute scripted readers here.
	newReader ReaderFactory
}

// NewController wires a controller from its collaborators.
func NewController(cfg *config.Config, logger *slog.Logger, locator window.Locator,
	source capture.Source, driver input.Driver, rec recognize.Recognizer,
	canceller *input.Canceller) *Controller {
	return &Controller{
		cfg:       cfg,
		logger:    logger,
		locator:   locator,
		source:    source,
		driver:    driver,
		rec:       rec,
		parser:    item.NewParser(),
		canceller: canceller,
		state:     StateIdle,
	}
}

// SetReaderFactory replaces the item-source constructor (test seam).
func (c *Controller) SetReaderFactory(f ReaderFactory) { c.newReader = f }

// AddListener registers a transition listener.
func (c *Controller) AddListener(l StateListener) { c.listeners = append(c.listeners, l) }

// Current returns the current state.
func (c *Controller) Current() State { return c.state }

func (c *Controller) transition(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	if c.logger != nil {
		c.logger.Debug("scan state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}

// Run executes one full scan and always returns whatever records
// accumulated, whichever terminal state ends it.
func (c *Controller) Run() *Result {
	c.session = NewSession()

	c.transition(StateLocatingWindow)
	geom, err := c.locator.Locate(c.cfg.WindowTitle)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("window location failed", "title", c.cfg.WindowTitle, "error", err)
		}
		return c.finish(StateFailed)
	}
	geom.Left += c.cfg.OffsetX
	geom.Top += c.cfg.OffsetY

	table, err := layout.Resolve(geom)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("layout resolution failed", "aspect", geom.Aspect.String(), "error", err)
		}
		return c.finish(StateFailed)
	}
	if c.logger != nil {
		c.logger.Info("window located",
			"session", c.session.ID.String(),
			"left", geom.Left, "top", geom.Top,
			"width", geom.Width, "height", geom.Height,
			"aspect", geom.Aspect.String(),
			"grid", len(table.Grid))
	}

	origin := image.Pt(geom.Left, geom.Top)
	var reader ItemSource
	if c.newReader != nil {
		reader = c.newReader(c.source, c.rec, table, origin)
	} else {
		ir := NewItemReader(c.source, c.rec, table, origin)
		ir.Dump = c.Dump
		reader = ir
	}

	c.transition(StateScanning)
	c.scanLoop(table, origin, reader)
	return c.finish(c.state)
}

// scanLoop iterates pages until a terminal condition fires. Per page the
// grid cells run in row-major order; a page boundary issues a scroll.
func (c *Controller) scanLoop(table *layout.Table, origin image.Point, reader ItemSource) {
	for {
		wrapped := false
		newThisPage := 0
		skippedThisPage := 0

		for _, cell := range table.Grid {
			// Cancellation is honored only here, between discrete steps.
			if c.canceller != nil && c.canceller.Cancelled() {
				c.transition(StateCancelled)
				return
			}
			if c.cfg.MaxItems > 0 && len(c.session.Records) >= c.cfg.MaxItems {
				c.transition(StateCompleted)
				return
			}

			center := cell.Center().Add(origin)
			c.driver.MoveAndClick(center.X, center.Y)
			c.settle(table.Pane.Add(origin))

			rec, err := c.readCell(reader)
			if err != nil {
				// A vanished capture target will not come back by scrolling.
				if errors.Is(err, capture.ErrCaptureUnavailable) {
					if c.logger != nil {
						c.logger.Error("capture lost", "error", err)
					}
					c.transition(StateFailed)
					return
				}
				// One bad frame never halts the scan: count and move on.
				c.session.Skipped++
				skippedThisPage++
				if c.logger != nil {
					c.logger.Warn("item skipped",
						"row", cell.Row, "col", cell.Col, "error", err)
				}
				continue
			}

			keep := rec.Star >= c.cfg.MinStar && rec.Level >= c.cfg.MinLevel
			if !c.session.Admit(rec, keep) {
				// Duplicate fingerprint: the list wrapped or stopped
				// advancing. A signal, not an error.
				wrapped = true
				continue
			}
			newThisPage++
			if keep && c.logger != nil && c.cfg.Verbose {
				c.logger.Info("item scanned",
					"name", rec.Name, "star", rec.Star, "level", rec.Level,
					"total", len(c.session.Records))
			}
		}

		c.session.ScrolledRows += table.Rows
		if c.cfg.MaxRows > 0 && c.session.ScrolledRows >= c.cfg.MaxRows {
			c.transition(StateCompleted)
			return
		}
		if wrapped && newThisPage == 0 {
			// Stall: a whole page produced nothing new.
			c.transition(StateCompleted)
			return
		}
		if skippedThisPage == len(table.Grid) {
			// Every single cell failed to read. The pane is gone or the
			// layout no longer matches; scrolling further cannot help.
			if c.logger != nil {
				c.logger.Error("entire page unreadable", "cells", len(table.Grid))
			}
			c.transition(StateFailed)
			return
		}
		if c.canceller != nil && c.canceller.Cancelled() {
			c.transition(StateCancelled)
			return
		}
		c.scrollPage(table)
	}
}

// readCell reads the selected item with the bounded retry policy: rarity and
// confidence failures re-capture the same cell; the last error surfaces once
// the budget is spent and the item is skipped by the caller.
func (c *Controller) readCell(reader ItemSource) (*item.Record, error) {
	var rec *item.Record
	err := retry.Do(
		func() error {
			raw, stars, err := reader.ReadItem()
			if err != nil {
				return err
			}
			if f, conf, low := belowConfidence(raw, c.cfg.MinConfidence); low {
				return fmt.Errorf("%w: field %s at %.2f", ErrLowConfidence, f, conf)
			}
			parsed, err := c.parser.Parse(raw, stars)
			if err != nil {
				return err
			}
			rec = parsed
			return nil
		},
		retry.Attempts(uint(c.cfg.ReadRetries)),
		retry.Delay(time.Duration(c.cfg.SettleMs)*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// belowConfidence reports the first field under the confidence floor.
func belowConfidence(raw item.RawFieldSet, floor float64) (layout.Field, float64, bool) {
	for f, rf := range raw {
		if rf.Confidence < floor {
			return f, rf.Confidence, true
		}
	}
	return "", 0, false
}

// settle waits for the pane to stop changing after an input action: a base
// sleep for render latency, then re-captures until two consecutive frames
// are pixel-stable or the ceiling elapses. Capture errors here just extend
// the wait; the real read reports them.
func (c *Controller) settle(paneRect image.Rectangle) {
	base := time.Duration(c.cfg.SettleMs) * time.Millisecond
	ceiling := time.Duration(c.cfg.MaxSettleMs) * time.Millisecond
	time.Sleep(base)

	deadline := time.Now().Add(ceiling - base)
	prev, err := c.source.Capture(paneRect)
	for time.Now().Before(deadline) {
		time.Sleep(base / 2)
		cur, cerr := c.source.Capture(paneRect)
		if err == nil && cerr == nil && capture.FramesStable(prev, cur) {
			return
		}
		prev, err = cur, cerr
	}
}

// scrollPage advances the grid one page with per-tick pauses; the target UI
// drops wheel events delivered faster than it re-renders.
func (c *Controller) scrollPage(table *layout.Table) {
	ticks := table.Rows * table.ScrollTicksPerRow
	pause := time.Duration(c.cfg.ScrollStopMs) * time.Millisecond
	for i := 0; i < ticks; i++ {
		c.driver.Scroll(1)
		time.Sleep(pause)
	}
}

func (c *Controller) finish(state State) *Result {
	if !state.Terminal() {
		state = StateFailed
	}
	c.transition(state)
	res := &Result{State: state, Skipped: c.session.Skipped, Records: c.session.Records}
	if c.logger != nil {
		c.logger.Info("scan finished",
			"session", c.session.ID.String(),
			"state", state.String(),
			"records", len(res.Records),
			"skipped", res.Skipped)
	}
	return res
}
