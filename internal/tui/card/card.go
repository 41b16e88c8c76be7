// Package card renders a single contact as a bordered summary card.
package card

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/format"
	"github.com/leadline/crmdesk/internal/tui/styles"
)

// MinWidth is the narrowest card Render will produce.
const MinWidth = 24

// Render draws c with its avatar initials, name, address, and last
// interaction relative to now.
func Render(c contact.Contact, now time.Time, width int) string {
	if width < MinWidth {
		width = MinWidth
	}
	inner := width - 4 // border and padding
	textWidth := inner - lipgloss.Width(styles.Avatar.Render("")) - 1

	name := c.DisplayName
	if name == "" {
		name = c.Address
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(format.Truncate(name, textWidth)))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(format.Truncate(c.Address, textWidth)))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Last contact: " + format.RelativeTime(c.LastInteraction, now)))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Avatar.Render(c.Initials()),
		" ",
		b.String(),
	)
	return styles.ContentBox.Width(inner + 2).Render(body)
}
