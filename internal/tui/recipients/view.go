package recipients

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/format"
	"github.com/leadline/crmdesk/internal/tui/styles"
)

// Panel copy.
const (
	RecentHeader     = "Recent contacts"
	SuggestionHeader = "Suggestions"
	EmptyPrompt      = "Type a name or email address"
	InvalidHint      = "Enter a valid email address"
	dismissGlyph     = "×"
)

// AddHint renders the affordance shown when the draft matches no contact
// but would be accepted as typed.
func AddHint(draft string) string {
	return fmt.Sprintf("Press Enter to add %s", draft)
}

type dismissZone struct {
	x    int
	addr string
}

// viewLayout is the rendered widget split into the pieces hit testing needs.
// Rows and columns are relative to the widget's top-left corner.
type viewLayout struct {
	label    string
	line     string
	tagRow   int
	panelTop int
	dismiss  []dismissZone
}

func (m *Model) layout() viewLayout {
	style := m.props.Style
	left := style.GetMarginLeft() + style.GetBorderLeftSize() + style.GetPaddingLeft()
	top := style.GetMarginTop() + style.GetBorderTopSize() + style.GetPaddingTop()

	var b strings.Builder
	var zones []dismissZone
	x := left
	for _, addr := range m.props.Selected {
		tag := styles.Tag.Render(addr + " " + dismissGlyph)
		w := lipgloss.Width(tag)
		// right padding is one cell, so the glyph sits just before it
		zones = append(zones, dismissZone{x: x + w - 2, addr: addr})
		b.WriteString(tag)
		b.WriteString(" ")
		x += w + 1
	}
	b.WriteString(m.input.View())

	labelStyle := styles.FieldLabel
	if m.focused {
		labelStyle = styles.FieldLabelFocused
	}

	line := style.Render(b.String())
	return viewLayout{
		label:    labelStyle.Render(m.props.Label),
		line:     line,
		tagRow:   1 + top,
		panelTop: 1 + lipgloss.Height(line),
		dismiss:  zones,
	}
}

// View renders the label, the tag and input line, and, when open, the
// suggestion panel.
func (m *Model) View() string {
	l := m.layout()
	parts := []string{l.label, l.line}
	if m.open {
		parts = append(parts, styles.Panel.Render(strings.Join(m.panelLines(time.Now()), "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Height returns the number of rows View occupies.
func (m *Model) Height() int {
	return lipgloss.Height(m.View())
}

func (m *Model) panelLines(now time.Time) []string {
	draft := m.input.Value()

	if len(m.suggestions) == 0 {
		switch {
		case strings.TrimSpace(draft) == "":
			return []string{styles.PanelHeader.Render(EmptyPrompt)}
		case contact.IsValidAddress(strings.TrimSpace(draft)):
			return []string{styles.AddHint.Render(AddHint(strings.TrimSpace(draft)))}
		default:
			return []string{styles.InvalidHint.Render(InvalidHint)}
		}
	}

	header := SuggestionHeader
	if draft == "" {
		header = RecentHeader
	}
	lines := make([]string, 0, len(m.suggestions)+1)
	lines = append(lines, styles.PanelHeader.Render(header))

	width := m.bounds.Width - 8 // panel border, padding, and avatar
	for i, c := range m.suggestions {
		label := c.Label()
		if width > 0 {
			label = format.Truncate(label, width)
		}
		itemStyle := styles.SuggestionItem
		if i == m.highlighted {
			itemStyle = styles.SuggestionItemSelected
		}
		row := styles.Avatar.Render(c.Initials()) + " " + itemStyle.Render(label)
		if !c.LastInteraction.IsZero() {
			row += styles.SuggestionMeta.Render("  · " + format.RelativeTime(c.LastInteraction, now))
		}
		if selected := Contains(m.props.Selected, c.Address); selected {
			row += styles.SuggestionMeta.Render("  ✓")
		}
		lines = append(lines, row)
	}
	return lines
}
