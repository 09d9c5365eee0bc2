package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysmon/internal/errors"
)

// Rows reserved above and below the gauge body.
const (
	headerHeight = 2
	footerHeight = 2
)

// renderDashboard renders the complete dashboard view.
func (m *Model) renderDashboard() string {
	st := NewStyles(m.surface.palette)

	if m.width == 0 || m.height == 0 {
		return st.Muted.Render("Starting...")
	}
	if m.TooSmall() {
		return m.renderTooSmall(st)
	}
	if m.showHelp {
		return m.renderHelpOverlay(st)
	}

	body := m.renderGauges(st)
	if m.bodyReady {
		m.body.SetContent(body)
		body = m.body.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(st),
		"",
		body,
		"",
		m.renderFooter(st),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(m.surface.palette.Background))
}

// renderHeader renders the title, spaced to reflect the title font size,
// plus the source and last update.
func (m *Model) renderHeader(st Styles) string {
	title := Spaced(m.title, m.titleGap())

	var updated string
	switch secs := m.SecondsSinceUpdate(); {
	case !m.surface.hasSnapshot:
		updated = "waiting for first sample"
	case secs == 0:
		updated = "just now"
	default:
		updated = fmt.Sprintf("%ds ago", secs)
	}

	info := " | " + updated
	if m.sourceName != "" {
		info = " | " + m.sourceName + info
	}

	return st.Title.Render(title) + st.Muted.Render(info)
}

// titleGap returns how many spaces go between title letters. It shrinks
// when the spaced title wouldn't fit on one line.
func (m *Model) titleGap() int {
	base := m.scale.Config().BaseTitleSize
	if base <= 0 {
		return 0
	}
	gap := m.surface.fonts.TitleFontSize/base - 1
	letters := len([]rune(m.title))
	for gap > 0 && letters+(letters-1)*gap > m.width/2 {
		gap--
	}
	return gap
}

// rowGap returns how many blank lines go between gauge rows.
func (m *Model) rowGap() int {
	base := m.scale.Config().BaseBodySize
	if base <= 0 {
		return 0
	}
	gap := m.surface.fonts.BodyFontSize/base - 1
	if gap < 0 {
		gap = 0
	}
	return gap
}

type gaugeRow struct {
	label   string
	percent float64
}

// renderGauges renders one bordered section per resource.
func (m *Model) renderGauges(st Styles) string {
	snap := m.surface.snapshot
	width := m.width

	gpuTitle := "Accelerator"
	gpuValue := "none detected"
	if snap.HasGPU {
		gpuTitle = snap.GPUName
		gpuValue = fmt.Sprintf("%.0f%%", snap.GPUPercent)
	}

	sections := []string{
		m.renderSection(st, "Processor", fmt.Sprintf("%.0f%%", snap.CPUPercent), width,
			gaugeRow{snap.CPULabel(), snap.CPUPercent}),
		m.renderSection(st, "Memory", fmt.Sprintf("%.0f%%", snap.RAMPercent), width,
			gaugeRow{snap.RAMLabel(), snap.RAMPercent}),
		m.renderSection(st, gpuTitle, gpuValue, width,
			gaugeRow{snap.GPULabel(), snap.GPUPercent},
			gaugeRow{snap.VRAMLabel(), snap.VRAMPercent}),
	}

	return strings.Join(sections, "\n")
}

func (m *Model) renderSection(st Styles, title, value string, width int, rows ...gaugeRow) string {
	gap := m.rowGap()
	barWidth := width - 4
	if barWidth < 1 {
		barWidth = 1
	}

	lines := []string{st.SectionHeader(title, value, width)}
	for i, row := range rows {
		if i > 0 {
			for j := 0; j < gap; j++ {
				lines = append(lines, st.SectionContentLine("", width))
			}
		}
		lines = append(lines,
			st.SectionContentLine(st.Label.Render(row.label), width),
			st.SectionContentLine(st.Gauge(barWidth, row.percent), width),
		)
	}
	lines = append(lines, st.SectionFooter(width))

	// Spacing between sections follows the body size too
	for j := 0; j < gap; j++ {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders the dark mode checkbox, key hints and staleness.
func (m *Model) renderFooter(st Styles) string {
	box := "[ ]"
	if m.darkMode {
		box = "[x]"
	}

	hints := []string{
		box + " Dark mode (t)",
		"r refresh",
		"? help",
		"q quit",
	}
	footer := st.Label.Render(strings.Join(hints, " | "))

	if err := m.surface.sampleErr; err != nil {
		footer += st.Stale.Render("  stale: " + errors.Summary(err))
	}
	return footer
}

// renderTooSmall tells the user to enlarge the terminal.
func (m *Model) renderTooSmall(st Styles) string {
	minCols := int(m.minSize.Width/m.cellWidth + 0.999)
	minRows := int(m.minSize.Height/m.cellHeight + 0.999)

	msg := lipgloss.JoinVertical(lipgloss.Center,
		st.Title.Render("Window too small"),
		st.Muted.Render(fmt.Sprintf("need %dx%d, have %dx%d", minCols, minRows, m.width, m.height)),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(m.surface.palette.Background))
}
