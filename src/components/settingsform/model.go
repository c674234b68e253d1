// components/settingsform/model.go - settings pane: a navigable list of
// preference rows. The form never writes settings itself; it hands a patch
// back to the app, which applies it through the settings store.

package settingsform

import (
	"fmt"
	"strings"

	"docchat/src/components/common"
	"docchat/src/settings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Row indices, in display order.
const (
	rowAnswerStyle = iota
	rowTemperature
	rowTopK
	rowShowSources
	rowAutoSummarize
	rowAutoScroll
	rowShowTimestamps
	rowTheme
	rowCompactMode
	rowReset
	rowCount
)

const (
	temperatureStep = 0.05
	topKMin         = 2
	topKMax         = 10
)

var answerStyles = []string{settings.StyleConcise, settings.StyleBalanced, settings.StyleDetailed}

// Model manages the settings form selection.
type Model struct {
	Index int
}

// New returns a form with the first row selected.
func New() Model {
	return Model{}
}

// Update handles navigation and edits against the current settings value.
// It returns the patch to apply, and reset=true when the reset row fires.
func (m Model) Update(msg tea.KeyMsg, cur settings.Settings) (Model, settings.Patch, bool) {
	switch msg.String() {
	case "up":
		if m.Index == 0 {
			m.Index = rowCount - 1
		} else {
			m.Index--
		}
	case "down":
		if m.Index == rowCount-1 {
			m.Index = 0
		} else {
			m.Index++
		}
	case "left":
		return m, m.adjust(cur, -1), false
	case "right":
		return m, m.adjust(cur, +1), false
	case "enter", " ":
		if m.Index == rowReset {
			return m, settings.Patch{}, true
		}
		return m, m.adjust(cur, +1), false
	}
	return m, settings.Patch{}, false
}

// adjust builds the patch for moving the selected row by dir.
func (m Model) adjust(cur settings.Settings, dir int) settings.Patch {
	switch m.Index {
	case rowAnswerStyle:
		next := cycle(answerStyles, cur.AnswerStyle, dir)
		return settings.Patch{AnswerStyle: &next}
	case rowTemperature:
		t := clampFloat(cur.Temperature+float64(dir)*temperatureStep, 0, 1)
		return settings.Patch{Temperature: &t}
	case rowTopK:
		k := clampInt(cur.TopK+dir, topKMin, topKMax)
		return settings.Patch{TopK: &k}
	case rowShowSources:
		v := !cur.ShowSources
		return settings.Patch{ShowSources: &v}
	case rowAutoSummarize:
		v := !cur.AutoSummarize
		return settings.Patch{AutoSummarize: &v}
	case rowAutoScroll:
		v := !cur.AutoScroll
		return settings.Patch{AutoScroll: &v}
	case rowShowTimestamps:
		v := !cur.ShowTimestamps
		return settings.Patch{ShowTimestamps: &v}
	case rowTheme:
		next := settings.ThemeDark
		if cur.Theme == settings.ThemeDark {
			next = settings.ThemeLight
		}
		return settings.Patch{Theme: &next}
	case rowCompactMode:
		v := !cur.CompactMode
		return settings.Patch{CompactMode: &v}
	}
	return settings.Patch{}
}

// View renders the form.
func (m Model) View(cur settings.Settings, th common.Theme) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Text)
	labelStyle := lipgloss.NewStyle().Foreground(th.Text).Width(34)
	valueStyle := lipgloss.NewStyle().Foreground(th.Accent)
	hintStyle := lipgloss.NewStyle().Foreground(th.Dim)
	selectedStyle := lipgloss.NewStyle().Bold(true).Background(th.SelectionBg)

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	type rowDef struct {
		label string
		value string
	}
	rows := []rowDef{
		{"Answer style", cur.AnswerStyle},
		{fmt.Sprintf("Temperature (%.2f)", cur.Temperature), bar(cur.Temperature)},
		{fmt.Sprintf("Top K (chunks): %d", cur.TopK), fmt.Sprintf("%d", cur.TopK)},
		{"Show sources", onOff(cur.ShowSources)},
		{"Auto summarize long answers", onOff(cur.AutoSummarize)},
		{"Auto-scroll to latest message", onOff(cur.AutoScroll)},
		{"Show timestamps", onOff(cur.ShowTimestamps)},
		{"Theme", cur.Theme},
		{"Compact mode", onOff(cur.CompactMode)},
		{"Reset to defaults", ""},
	}

	// Section headers above their first row.
	sections := map[int]string{
		rowAnswerStyle: "AI & Answers",
		rowAutoScroll:  "Chat",
		rowTheme:       "Appearance",
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n")
	b.WriteString(hintStyle.Render("Saved to the config directory") + "\n\n")
	for i, r := range rows {
		if head, ok := sections[i]; ok {
			b.WriteString(sectionStyle.Render(head) + "\n")
		}
		marker := "  "
		line := labelStyle.Render(r.label) + "  " + valueStyle.Render(r.value)
		if i == m.Index {
			marker = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("up/down to move, left/right or enter to change, esc to go back"))
	return b.String()
}

// bar renders a coarse slider for the temperature row.
func bar(v float64) string {
	const width = 20
	filled := int(v*width + 0.5)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

func cycle(options []string, cur string, dir int) string {
	idx := 0
	for i, o := range options {
		if o == cur {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(options)) % len(options)
	return options[idx]
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
