package dashboard

import (
	"time"

	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/scale"
	"github.com/rileyhilliard/sysmon/internal/theme"
)

// surface is what the loop paints into. View reads it on every frame.
type surface struct {
	snapshot    metrics.Snapshot
	hasSnapshot bool
	updated     time.Time
	fonts       scale.Result
	palette     theme.Palette
	sampleErr   error
	now         func() time.Time
}

func (s *surface) DisplaySnapshot(snapshot metrics.Snapshot) {
	s.snapshot = snapshot
	s.hasSnapshot = true
	s.updated = s.now()
}

func (s *surface) ApplyFontSizes(sizes scale.Result) {
	s.fonts = sizes
}

func (s *surface) ApplyPalette(palette theme.Palette) {
	s.palette = palette
}

func (s *surface) DisplaySampleError(err error) {
	s.sampleErr = err
}
