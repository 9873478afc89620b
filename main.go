package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/artiscan/artiscan/config"
	"github.com/artiscan/artiscan/debug"
	"github.com/artiscan/artiscan/domain/capture"
	"github.com/artiscan/artiscan/domain/input"
	"github.com/artiscan/artiscan/domain/layout"
	"github.com/artiscan/artiscan/domain/recognize"
	"github.com/artiscan/artiscan/domain/scan"
	"github.com/artiscan/artiscan/domain/window"
	"github.com/artiscan/artiscan/export"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "artiscan",
	Short: "Artifact inventory scanner and exporter",
	Long: `artiscan drives the in-game artifact inventory with synthetic input,
reads each item's detail pane with a pretrained recognition model, and
exports the parsed records for external optimizer tools.

The target window must be visible and unobstructed for the duration of
the scan. Press the cancel hotkey (default F11) or Ctrl-C to stop; all
records scanned so far are still written.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

func init() {
	f := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "artiscan.json", "config file path")

	f.Int("min-star", 0, "minimum rarity to keep")
	f.Int("min-level", 0, "minimum level to keep")
	f.Int("max-row", 0, "maximum rows to scan (0 = unlimited)")
	f.Int("number", 0, "maximum items to scan (0 = unlimited)")
	f.Int("settle", 0, "base settle delay after selecting an item (ms)")
	f.Int("max-wait-switch", 0, "ceiling for the frame-stability wait (ms)")
	f.Int("scroll-stop", 0, "pause between scroll ticks (ms)")
	f.Int("offset-x", 0, "manual horizontal layout offset (px)")
	f.Int("offset-y", 0, "manual vertical layout offset (px)")
	f.String("backend", "", "recognition backend: crnn or tesseract")
	f.String("model", "", "path to the ONNX model weights")
	f.String("dict", "", "path to the index-to-token vocabulary")
	f.String("ort-lib", "", "path to the onnxruntime shared library")
	f.String("window-title", "", "target window title substring")
	f.String("cancel-key", "", "cancellation hotkey")
	f.StringP("output-dir", "o", "", "output directory")
	f.StringP("output-format", "f", "", "output format: mona, mingyulab, good, all")
	f.String("dump", "", "write per-field crops into this directory")
	f.Bool("capture-only", false, "capture the detail pane once and exit")
	f.Bool("verbose", false, "log every scanned item")
	f.Bool("debug", false, "enable debug logging and memstats")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stderr, level)
	if cfg.Debug {
		debug.StartMemLogger(10*time.Second, logger)
	}

	canceller := &input.Canceller{}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("interrupt received, stopping at next item boundary")
		canceller.Cancel()
	}()
	input.WatchCancelKey(cfg.CancelKey, canceller)

	source := capture.NewSource()
	locator := window.NewLocator()

	if cfg.CaptureOnly {
		return captureOnly(cfg, logger, locator, source)
	}

	rec, closeRec, err := newRecognizer(cfg)
	if err != nil {
		return err
	}
	defer closeRec()

	controller := scan.NewController(cfg, logger, locator, source, input.NewDriver(), rec, canceller)
	if cfg.DumpDir != "" {
		dumper, err := debug.NewDumper(cfg.DumpDir, logger)
		if err != nil {
			return err
		}
		controller.Dump = func(field layout.Field, img image.Image) {
			dumper.Dump(string(field), img)
		}
	}

	start := time.Now()
	result := controller.Run()
	logger.Info("scan summary",
		"state", result.State.String(),
		"records", len(result.Records),
		"skipped", result.Skipped,
		"elapsed", time.Since(start).Round(time.Millisecond).String())

	// Partial results are written even on failure or cancellation.
	if len(result.Records) > 0 {
		exporters, err := export.ByFormat(cfg.OutputFormat)
		if err != nil {
			return err
		}
		if err := export.Save(cfg.OutputDir, exporters, result.Records); err != nil {
			return err
		}
		logger.Info("export written", "dir", cfg.OutputDir, "format", cfg.OutputFormat)
	}

	// Deferred cleanup must run on every path, so non-zero exits travel as
	// a typed error up to main instead of calling os.Exit here.
	switch result.State {
	case scan.StateCompleted:
		return nil
	case scan.StateCancelled:
		return exitError{code: 130}
	default:
		return exitError{code: 1}
	}
}

// exitError carries a process exit code out of runScan.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// captureOnly locates the window and writes a single detail-pane capture,
// for layout calibration without running a scan.
func captureOnly(cfg *config.Config, logger *slog.Logger, locator window.Locator, source capture.Source) error {
	geom, err := locator.Locate(cfg.WindowTitle)
	if err != nil {
		return err
	}
	geom.Left += cfg.OffsetX
	geom.Top += cfg.OffsetY
	table, err := layout.Resolve(geom)
	if err != nil {
		return err
	}
	frame, err := source.Capture(table.Pane.Add(image.Pt(geom.Left, geom.Top)))
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, "pane.png")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		return err
	}
	logger.Info("pane capture written", "path", path)
	return nil
}

// newRecognizer builds the configured recognition backend.
func newRecognizer(cfg *config.Config) (recognize.Recognizer, func(), error) {
	switch cfg.Backend {
	case "tesseract":
		t, err := recognize.NewTesseract()
		if err != nil {
			return nil, nil, err
		}
		return t, func() { _ = t.Close() }, nil
	default:
		m, err := recognize.NewCRNN(recognize.CRNNOptions{
			ModelPath: cfg.ModelPath,
			DictPath:  cfg.DictPath,
			LibPath:   cfg.OrtLibPath,
		})
		if err != nil {
			return nil, nil, err
		}
		return m, func() { _ = m.Close() }, nil
	}
}

// loadConfig reads the config file and applies explicit flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", cfgFile, err)
	}

	fl := cmd.Flags()
	overrideInt(fl, "min-star", &cfg.MinStar)
	overrideInt(fl, "min-level", &cfg.MinLevel)
	overrideInt(fl, "max-row", &cfg.MaxRows)
	overrideInt(fl, "number", &cfg.MaxItems)
	overrideInt(fl, "settle", &cfg.SettleMs)
	overrideInt(fl, "max-wait-switch", &cfg.MaxSettleMs)
	overrideInt(fl, "scroll-stop", &cfg.ScrollStopMs)
	overrideInt(fl, "offset-x", &cfg.OffsetX)
	overrideInt(fl, "offset-y", &cfg.OffsetY)
	overrideString(fl, "backend", &cfg.Backend)
	overrideString(fl, "model", &cfg.ModelPath)
	overrideString(fl, "dict", &cfg.DictPath)
	overrideString(fl, "ort-lib", &cfg.OrtLibPath)
	overrideString(fl, "window-title", &cfg.WindowTitle)
	overrideString(fl, "cancel-key", &cfg.CancelKey)
	overrideString(fl, "output-dir", &cfg.OutputDir)
	overrideString(fl, "output-format", &cfg.OutputFormat)
	overrideString(fl, "dump", &cfg.DumpDir)
	overrideBool(fl, "capture-only", &cfg.CaptureOnly)
	overrideBool(fl, "verbose", &cfg.Verbose)
	overrideBool(fl, "debug", &cfg.Debug)

	_ = cfg.Validate()
	return cfg, nil
}

type flagSet interface {
	Changed(name string) bool
	GetInt(name string) (int, error)
	GetString(name string) (string, error)
	GetBool(name string) (bool, error)
}

func overrideInt(fl flagSet, name string, dst *int) {
	if fl.Changed(name) {
		if v, err := fl.GetInt(name); err == nil {
			*dst = v
		}
	}
}

func overrideString(fl flagSet, name string, dst *string) {
	if fl.Changed(name) {
		if v, err := fl.GetString(name); err == nil {
			*dst = v
		}
	}
}

func overrideBool(fl flagSet, name string, dst *bool) {
	if fl.Changed(name) {
		if v, err := fl.GetBool(name); err == nil {
			*dst = v
		}
	}
}
