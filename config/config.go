package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the scanner. Fields may be loaded
// from a JSON file and overridden by command-line flags.
type Config struct {
	Debug   bool `json:"debug"`
	Verbose bool `json:"verbose"`

	// Filtering
	MinStar  int `json:"min_star"`
	MinLevel int `json:"min_level"`

	// Scan limits. Zero means unlimited.
	MaxRows  int `json:"max_rows"`
	MaxItems int `json:"max_items"`

	// Timing (milliseconds)
	SettleMs     int `json:"settle_ms"`      // base wait after selecting an item
	MaxSettleMs  int `json:"max_settle_ms"`  // ceiling for the stability wait
	ScrollStopMs int `json:"scroll_stop_ms"` // pause between scroll ticks

	// Recognition
	ReadRetries   int     `json:"read_retries"`   // re-captures per item before skipping
	MinConfidence float64 `json:"min_confidence"` // per-field confidence floor
	Backend       string  `json:"backend"`        // "crnn" or "tesseract"
	ModelPath     string  `json:"model_path"`
	DictPath      string  `json:"dict_path"`
	OrtLibPath    string  `json:"ort_lib_path"`

	// Layout offset correction for captures that are shifted by a few pixels.
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`

	// Target window and cancellation hotkey.
	WindowTitle string `json:"window_title"`
	CancelKey   string `json:"cancel_key"`

	// Output
	OutputDir    string `json:"output_dir"`
	OutputFormat string `json:"output_format"` // mona, mingyulab, good, all
	DumpDir      string `json:"dump_dir"`      // when set, write per-field crops
	CaptureOnly  bool   `json:"capture_only"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		MinStar:       4,
		MinLevel:      0,
		MaxRows:       0,
		MaxItems:      0,
		SettleMs:      80,
		MaxSettleMs:   800,
		ScrollStopMs:  80,
		ReadRetries:   3,
		MinConfidence: 0.30,
		Backend:       "crnn",
		ModelPath:     "model.onnx",
		DictPath:      "index_2_word.json",
		WindowTitle:   "Genshin Impact",
		CancelKey:     "F11",
		OutputDir:     ".",
		OutputFormat:  "mona",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.MinStar < 1 || c.MinStar > 5 {
		c.MinStar = 4
	}
	if c.MinLevel < 0 || c.MinLevel > 20 {
		c.MinLevel = 0
	}
	if c.MaxRows < 0 {
		c.MaxRows = 0
	}
	if c.MaxItems < 0 {
		c.MaxItems = 0
	}
	if c.SettleMs <= 0 {
		c.SettleMs = 80
	}
	if c.MaxSettleMs < c.SettleMs {
		c.MaxSettleMs = c.SettleMs * 10
	}
	if c.ScrollStopMs <= 0 {
		c.ScrollStopMs = 80
	}
	if c.ReadRetries <= 0 {
		c.ReadRetries = 3
	}
	if c.MinConfidence < 0 || c.MinConfidence >= 1 {
		c.MinConfidence = 0.30
	}
	if c.Backend != "crnn" && c.Backend != "tesseract" {
		c.Backend = "crnn"
	}
	switch c.OutputFormat {
	case "mona", "mingyulab", "good", "all":
	default:
		c.OutputFormat = "mona"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
