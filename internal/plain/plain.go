// Package plain renders snapshots as one line of text each, for pipes,
// logs and terminals where the full-screen dashboard doesn't fit.
package plain

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/scale"
	"github.com/rileyhilliard/sysmon/internal/theme"
)

// Renderer writes one line per snapshot. Fonts and palettes have no
// meaning here and are ignored.
type Renderer struct {
	w   io.Writer
	err error
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// DisplaySnapshot writes the snapshot as a single line.
func (r *Renderer) DisplaySnapshot(s metrics.Snapshot) {
	r.write(FormatLine(s))
}

// DisplaySampleError writes a line when sampling fails or recovers.
func (r *Renderer) DisplaySampleError(err error) {
	if err == nil {
		return
	}
	r.write(fmt.Sprintf("%s  sample failed: %s", time.Now().Format(time.TimeOnly), errors.Summary(err)))
}

func (r *Renderer) ApplyFontSizes(scale.Result) {}
func (r *Renderer) ApplyPalette(theme.Palette)  {}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) write(line string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.w, line)
}

// FormatLine renders a snapshot the way the plain renderer prints it.
func FormatLine(s metrics.Snapshot) string {
	parts := []string{
		s.Timestamp.Format(time.TimeOnly),
		s.CPULabel(),
		s.RAMLabel(),
	}
	if s.HasGPU {
		parts = append(parts, s.GPULabel(), s.VRAMLabel())
	}
	return strings.Join(parts, "  ")
}
