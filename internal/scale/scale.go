// Package scale maps a window size to font sizes.
//
// Title text scales with the window width and body text with the window
// height, each relative to a reference window. Wide-but-short and
// narrow-but-tall windows both scale along the dimension that dominates
// their layout.
package scale

import "math"

// WindowSize is the drawable area in display units.
type WindowSize struct {
	Width  float64
	Height float64
}

// Result holds the font sizes for a window.
type Result struct {
	TitleFontSize int
	BodyFontSize  int
}

// Config parameterizes a Calculator.
type Config struct {
	BaseWidth     float64
	BaseHeight    float64
	BaseTitleSize int
	BaseBodySize  int

	// MaxFactor caps each scale ratio. Zero disables the cap.
	MaxFactor float64
	// MinRatio floors each scale ratio. Zero, negative and NaN ratios
	// also get it.
	MinRatio float64
	// MinFontSize floors both results.
	MinFontSize int
}

// DefaultConfig returns the 480x320 reference window with 16/12 base sizes.
func DefaultConfig() Config {
	return Config{
		BaseWidth:     480,
		BaseHeight:    320,
		BaseTitleSize: 16,
		BaseBodySize:  12,
		MaxFactor:     3,
		MinRatio:      0.01,
		MinFontSize:   1,
	}
}

// Calculator computes font sizes. It holds no state besides its config,
// so Scale is deterministic.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a Calculator. A zero or negative reference
// dimension falls back to the default one, and a cap below MinRatio is
// raised to it.
func NewCalculator(cfg Config) *Calculator {
	def := DefaultConfig()
	if !(cfg.BaseWidth > 0) {
		cfg.BaseWidth = def.BaseWidth
	}
	if !(cfg.BaseHeight > 0) {
		cfg.BaseHeight = def.BaseHeight
	}
	if !(cfg.MinRatio > 0) {
		cfg.MinRatio = def.MinRatio
	}
	if cfg.MaxFactor < 0 || math.IsNaN(cfg.MaxFactor) {
		cfg.MaxFactor = 0
	}
	if cfg.MaxFactor > 0 && cfg.MaxFactor < cfg.MinRatio {
		cfg.MaxFactor = cfg.MinRatio
	}
	return &Calculator{cfg: cfg}
}

// Config returns the effective configuration.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Scale returns the font sizes for w.
func (c *Calculator) Scale(w WindowSize) Result {
	scaleW := c.ratio(w.Width, c.cfg.BaseWidth)
	scaleH := c.ratio(w.Height, c.cfg.BaseHeight)

	return Result{
		TitleFontSize: c.size(scaleW, c.cfg.BaseTitleSize),
		BodyFontSize:  c.size(scaleH, c.cfg.BaseBodySize),
	}
}

// IsDegenerate reports whether either dimension of w is zero, negative or
// NaN and therefore gets clamped by Scale.
func (c *Calculator) IsDegenerate(w WindowSize) bool {
	return !(w.Width > 0) || !(w.Height > 0)
}

func (c *Calculator) ratio(dim, base float64) float64 {
	r := dim / base
	if math.IsNaN(r) || r < c.cfg.MinRatio {
		r = c.cfg.MinRatio
	}
	if c.cfg.MaxFactor > 0 && r > c.cfg.MaxFactor {
		r = c.cfg.MaxFactor
	}
	return r
}

func (c *Calculator) size(ratio float64, base int) int {
	v := ratio * float64(base)
	if math.IsInf(v, 0) || v > math.MaxInt32 {
		v = math.MaxInt32
	}
	size := int(v)
	if size < c.cfg.MinFontSize {
		size = c.cfg.MinFontSize
	}
	return size
}
