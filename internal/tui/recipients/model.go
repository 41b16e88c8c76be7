// Package recipients implements the recipient selector: a tag input with
// autocomplete that builds an ordered, de-duplicated list of email
// addresses.
//
// The selector does not own the selection. The parent passes the current
// selection and candidate contacts through Props before every update and
// receives each change through Props.OnChange, always as the full new
// selection. Local state is limited to the draft text, the highlighted
// suggestion, and whether the suggestion panel is open.
//
// Presses outside the widget close the panel. The widget learns about them
// through a pointer subscription acquired by Mount and released by Unmount.
package recipients

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/tui/pointer"
)

// Props is everything the parent supplies on each render.
type Props struct {
	Label       string
	Placeholder string
	Selected    []string
	Contacts    []contact.Contact
	// OnChange receives the full new selection after each add or remove.
	OnChange func([]string)
	// Style wraps the tag and input line.
	Style lipgloss.Style
	// Limit caps the suggestion list; zero means DefaultLimit.
	Limit int
}

// Model is the recipient selector component.
type Model struct {
	props       Props
	input       textinput.Model
	keys        KeyMap
	suggestions []contact.Contact
	highlighted int
	open        bool
	focused     bool
	bounds      pointer.Rect
	sub         *pointer.Subscription
}

// New creates a selector with the given props. The widget starts blurred
// with the suggestion panel closed.
func New(props Props) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 254

	m := &Model{
		input:       input,
		keys:        DefaultKeyMap(),
		highlighted: NoHighlight,
	}
	m.SetProps(props)
	return m
}

// SetProps replaces the parent-supplied props. Suggestions are recomputed
// against the new contacts; the highlight resets only when the visible
// suggestion list actually changed.
func (m *Model) SetProps(props Props) {
	m.props = props
	m.input.Placeholder = props.Placeholder

	next := Filter(props.Contacts, m.input.Value(), props.Limit)
	if !sameAddresses(next, m.suggestions) {
		m.highlighted = NoHighlight
	}
	m.suggestions = next
}

// Props returns the props most recently supplied.
func (m *Model) Props() Props {
	return m.props
}

// KeyMap returns the widget's bindings, for help rendering.
func (m *Model) KeyMap() KeyMap {
	return m.keys
}

// Mount subscribes to presses on bus so that presses outside the widget
// close the panel. Mounting an already mounted widget is a no-op.
func (m *Model) Mount(bus *pointer.Bus) {
	if m.sub.Active() {
		return
	}
	m.sub = bus.Subscribe(m.handleOutsidePress)
}

// Unmount releases the pointer subscription and discards the draft.
// It is safe to call more than once.
func (m *Model) Unmount() {
	m.sub.Close()
	m.sub = nil
	m.input.Reset()
	m.closePanel()
}

// Mounted reports whether the widget holds a live pointer subscription.
func (m *Model) Mounted() bool {
	return m.sub.Active()
}

// SetBounds records where the widget was laid out on screen.
func (m *Model) SetBounds(r pointer.Rect) {
	m.bounds = r
}

// Bounds returns the last recorded screen region.
func (m *Model) Bounds() pointer.Rect {
	return m.bounds
}

// Focus gives the widget keyboard focus and opens the suggestion panel.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	m.open = true
	return m.input.Focus()
}

// Blur removes keyboard focus and closes the suggestion panel.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
	m.closePanel()
}

// Dismiss closes the suggestion panel without changing focus.
func (m *Model) Dismiss() {
	m.closePanel()
}

// Focused reports whether the widget has keyboard focus.
func (m *Model) Focused() bool {
	return m.focused
}

// Draft returns the uncommitted input text.
func (m *Model) Draft() string {
	return m.input.Value()
}

// Open reports whether the suggestion panel is showing.
func (m *Model) Open() bool {
	return m.open
}

// HighlightedIndex returns the highlighted suggestion index, or NoHighlight.
func (m *Model) HighlightedIndex() int {
	return m.highlighted
}

// Highlighted returns the highlighted suggestion, if any.
func (m *Model) Highlighted() (contact.Contact, bool) {
	if m.highlighted < 0 || m.highlighted >= len(m.suggestions) {
		return contact.Contact{}, false
	}
	return m.suggestions[m.highlighted], true
}

// Suggestions returns the current filtered suggestion list.
func (m *Model) Suggestions() []contact.Contact {
	return m.suggestions
}

// Update handles key presses (when focused), mouse presses inside the
// widget, and input housekeeping messages such as cursor blinks.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		if i := slices.IndexFunc(msg.Runes, isSeparator); i >= 0 {
			return m.splitRunes(msg, i)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Commit):
		m.commit()
		return nil
	case key.Matches(msg, m.keys.Next):
		m.open = true
		m.highlighted = Cycle(m.highlighted, len(m.suggestions), 1)
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.open = true
		m.highlighted = Cycle(m.highlighted, len(m.suggestions), -1)
		return nil
	case key.Matches(msg, m.keys.Close):
		m.closePanel()
		return nil
	case key.Matches(msg, m.keys.Backspace) && m.input.Value() == "":
		if next, ok := RemoveLast(m.props.Selected); ok {
			m.emit(next)
		}
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.open = true
		m.refilter()
	}
	return cmd
}

// isSeparator reports whether r commits the draft when typed.
func isSeparator(r rune) bool {
	return r == ',' || r == ';'
}

// splitRunes handles a run of characters that arrived as one message, as
// happens with fast typing or a paste. Text before the separator at i goes
// into the draft, the separator commits, and the rest is handled as if typed
// next.
func (m *Model) splitRunes(msg tea.KeyMsg, i int) tea.Cmd {
	var cmds []tea.Cmd
	if i > 0 {
		head := msg
		head.Runes = msg.Runes[:i]
		cmds = append(cmds, m.handleKey(head))
	}
	m.commit()
	if rest := msg.Runes[i+1:]; len(rest) > 0 {
		tail := msg
		tail.Runes = rest
		cmds = append(cmds, m.handleKey(tail))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !pointer.IsLeftPress(msg) || !m.bounds.Contains(msg.X, msg.Y) {
		return nil
	}
	x, y := msg.X-m.bounds.X, msg.Y-m.bounds.Y
	l := m.layout()

	if y == l.tagRow {
		for _, z := range l.dismiss {
			if x == z.x {
				if next, ok := Remove(m.props.Selected, z.addr); ok {
					m.emit(next)
				}
				return nil
			}
		}
	}

	if m.open && y >= l.panelTop {
		row := y - l.panelTop
		switch {
		case len(m.suggestions) > 0:
			if idx := row - 1; idx >= 0 && idx < len(m.suggestions) {
				m.highlighted = idx
				m.commit()
			}
		case row == 0:
			// the add hint; commit rejects the draft if it is not addable
			m.commit()
		}
		return nil
	}

	if !m.focused {
		return m.Focus()
	}
	m.open = true
	return nil
}

// handleOutsidePress is the pointer subscription callback.
func (m *Model) handleOutsidePress(msg tea.MouseMsg) {
	if !m.bounds.Contains(msg.X, msg.Y) {
		m.closePanel()
	}
}

// commit adds the highlighted suggestion, or the trimmed draft when nothing
// is highlighted. Invalid or duplicate values leave everything unchanged.
func (m *Model) commit() {
	addr := strings.TrimSpace(m.input.Value())
	if c, ok := m.Highlighted(); ok {
		addr = c.Address
	}
	if addr == "" {
		return
	}

	next, ok := Add(m.props.Selected, addr)
	if !ok {
		return
	}
	m.emit(next)
	m.input.Reset()
	m.refilter()
	m.closePanel()
}

func (m *Model) emit(next []string) {
	m.props.Selected = next
	if m.props.OnChange != nil {
		m.props.OnChange(next)
	}
}

func (m *Model) refilter() {
	m.suggestions = Filter(m.props.Contacts, m.input.Value(), m.props.Limit)
	m.highlighted = NoHighlight
}

func (m *Model) closePanel() {
	m.open = false
	m.highlighted = NoHighlight
}

func sameAddresses(a, b []contact.Contact) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Address != b[i].Address {
			return false
		}
	}
	return true
}
