// Package compose is the message compose page: a To field and a Cc field,
// each a recipient selector, plus a preview card for the highlighted
// suggestion.
//
// The page owns both selections and the candidate contacts. It re-supplies
// each field's props before forwarding a message, publishes every mouse
// press on a pointer bus so fields can close on outside presses, and
// reports the final selection through Result.
package compose

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/directory"
	"github.com/leadline/crmdesk/internal/logging"
	"github.com/leadline/crmdesk/internal/tui/card"
	"github.com/leadline/crmdesk/internal/tui/pointer"
	"github.com/leadline/crmdesk/internal/tui/recipients"
	"github.com/leadline/crmdesk/internal/tui/styles"
)

// Field identifies a recipient field on the page.
type Field int

const (
	FieldTo Field = iota
	FieldCc
	numFields
)

func (f Field) String() string {
	switch f {
	case FieldTo:
		return "To"
	case FieldCc:
		return "Cc"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Title is the page header.
const Title = "New message"

// defaultWidth is used until the terminal reports its size.
const defaultWidth = 80

// previewWidth caps the contact preview card.
const previewWidth = 48

// ContactsLoadedMsg replaces the candidate contacts.
type ContactsLoadedMsg struct {
	Contacts []contact.Contact
}

// contactsErrMsg reports a failed directory load.
type contactsErrMsg struct {
	err error
}

// Result is the outcome of a compose session.
type Result struct {
	To        []string `json:"to"`
	Cc        []string `json:"cc"`
	Confirmed bool     `json:"-"`
}

// Options configures a compose page.
type Options struct {
	To       []string
	Cc       []string
	Contacts []contact.Contact
	// Directory, when set, is listed on Init and its contacts replace
	// Contacts.
	Directory   directory.Directory
	Placeholder string
	Limit       int
	Logger      *logging.Logger
	// Now is the clock for relative times; defaults to time.Now.
	Now func() time.Time
}

// Model is the compose page. It is used through a pointer so that field
// change callbacks can write back into it.
type Model struct {
	selections [numFields][]string
	contacts   []contact.Contact
	fields     [numFields]*recipients.Model
	focus      Field

	bus  *pointer.Bus
	keys KeyMap
	help help.Model

	dir         directory.Directory
	placeholder string
	limit       int
	logger      *logging.Logger
	now         func() time.Time

	width   int
	loadErr error
	result  Result
	done    bool
}

var _ tea.Model = (*Model)(nil)

// New builds the page with both fields mounted and the To field focused.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		contacts:    opts.Contacts,
		bus:         pointer.NewBus(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		dir:         opts.Directory,
		placeholder: opts.Placeholder,
		limit:       opts.Limit,
		logger:      logger.WithComponent("compose"),
		now:         now,
		width:       defaultWidth,
	}
	m.selections[FieldTo] = opts.To
	m.selections[FieldCc] = opts.Cc

	for f := range numFields {
		m.fields[f] = recipients.New(m.props(f))
		m.fields[f].Mount(m.bus)
	}
	m.fields[FieldTo].Focus()
	m.relayout()

	m.logger.Debug("compose mounted", "to", len(opts.To), "cc", len(opts.Cc))
	return m
}

// Init starts the cursor blinking and, when a directory is configured,
// loads contacts from it.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.dir != nil {
		cmds = append(cmds, loadContacts(m.dir))
	}
	return tea.Batch(cmds...)
}

func loadContacts(dir directory.Directory) tea.Cmd {
	return func() tea.Msg {
		contacts, err := dir.List(context.Background())
		if err != nil {
			return contactsErrMsg{err: err}
		}
		return ContactsLoadedMsg{Contacts: contacts}
	}
}

// props builds the props for field f from the page's current state.
func (m *Model) props(f Field) recipients.Props {
	return recipients.Props{
		Label:       f.String(),
		Placeholder: m.placeholder,
		Selected:    m.selections[f],
		Contacts:    m.contacts,
		Limit:       m.limit,
		OnChange: func(next []string) {
			m.selections[f] = next
			m.logger.Debug("recipients changed", "field", f.String(), "count", len(next))
		},
	}
}

func (m *Model) syncProps() {
	for f, w := range m.fields {
		w.SetProps(m.props(Field(f)))
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case ContactsLoadedMsg:
		m.contacts = msg.Contacts
		m.loadErr = nil
		m.syncProps()
		m.relayout()
		m.logger.Info("contacts loaded", "count", len(msg.Contacts))
		return m, nil

	case contactsErrMsg:
		m.loadErr = msg.err
		m.logger.Error("loading contacts failed", "error", msg.err)
		return m, nil

	case tea.BlurMsg:
		// The terminal lost focus; treat it like a press outside every field.
		for _, w := range m.fields {
			w.Dismiss()
		}
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}

	m.syncProps()
	cmd := m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.fields[m.focus]

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.finish(false)
	case key.Matches(msg, m.keys.Confirm):
		return m, m.finish(true)
	case key.Matches(msg, m.keys.Cancel) && !w.Open():
		return m, m.finish(false)
	case key.Matches(msg, m.keys.NextField) && idle(w):
		return m, m.setFocus((m.focus + 1) % numFields)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.setFocus((m.focus + numFields - 1) % numFields)
	}

	m.syncProps()
	cmd := w.Update(msg)
	m.relayout()
	return m, cmd
}

// idle reports whether a field has nothing Tab would commit.
func idle(w *recipients.Model) bool {
	return strings.TrimSpace(w.Draft()) == "" && w.HighlightedIndex() == recipients.NoHighlight
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !pointer.IsLeftPress(msg) {
		return nil
	}

	m.syncProps()
	m.bus.Publish(msg)

	var cmds []tea.Cmd
	for f, w := range m.fields {
		if !w.Bounds().Contains(msg.X, msg.Y) {
			continue
		}
		// The press is resolved against the layout that was clicked; focus
		// follows, even when the press only dismissed a tag.
		cmds = append(cmds, w.Update(msg))
		if Field(f) != m.focus {
			cmds = append(cmds, m.setFocus(Field(f)))
		}
		break
	}
	m.relayout()
	return tea.Batch(cmds...)
}

func (m *Model) setFocus(f Field) tea.Cmd {
	m.fields[m.focus].Blur()
	m.focus = f
	cmd := m.fields[f].Focus()
	m.relayout()
	return cmd
}

func (m *Model) finish(confirmed bool) tea.Cmd {
	m.result = Result{
		To:        m.selections[FieldTo],
		Cc:        m.selections[FieldCc],
		Confirmed: confirmed,
	}
	m.done = true
	m.Close()
	m.logger.Info("compose finished",
		"confirmed", confirmed,
		"to", len(m.result.To),
		"cc", len(m.result.Cc),
	)
	return tea.Quit
}

// Close unmounts both fields, releasing their pointer subscriptions.
// It is safe to call more than once.
func (m *Model) Close() {
	for _, w := range m.fields {
		if w.Mounted() {
			w.Unmount()
		}
	}
}

// relayout records each field's screen region for hit testing. Field
// heights change as panels open and close, so this runs after every
// update that can affect them.
func (m *Model) relayout() {
	y := lipgloss.Height(m.header()) + 1
	for _, w := range m.fields {
		h := w.Height()
		w.SetBounds(pointer.Rect{X: 0, Y: y, Width: m.width, Height: h})
		y += h + 1
	}
}

// Result returns the outcome once the page has finished.
func (m *Model) Result() Result {
	return m.result
}

// Done reports whether the user confirmed or canceled.
func (m *Model) Done() bool {
	return m.done
}

// Selection returns the current recipients of field f.
func (m *Model) Selection(f Field) []string {
	return m.selections[f]
}

// Focus returns the focused field.
func (m *Model) Focus() Field {
	return m.focus
}

// Recipients returns the selector for field f.
func (m *Model) Recipients(f Field) *recipients.Model {
	return m.fields[f]
}

// Bus returns the page's pointer bus.
func (m *Model) Bus() *pointer.Bus {
	return m.bus
}

func (m *Model) header() string {
	return styles.Header.Render(Title)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	sections := []string{m.header(), ""}
	for f, w := range m.fields {
		if f > 0 {
			sections = append(sections, "")
		}
		sections = append(sections, w.View())
	}

	if c, ok := m.fields[m.focus].Highlighted(); ok {
		sections = append(sections, "", card.Render(c, m.now(), min(m.width, previewWidth)))
	}

	if m.loadErr != nil {
		sections = append(sections, "", styles.ErrorMsg.Render("Could not load contacts: "+m.loadErr.Error()))
	}

	bindings := append(m.keys.ShortHelp(), m.fields[m.focus].KeyMap().ShortHelp()...)
	sections = append(sections, styles.HelpBar.Render(m.help.ShortHelpView(bindings)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
