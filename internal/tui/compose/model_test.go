package compose

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/errors"
)

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func testContacts() []contact.Contact {
	return []contact.Contact{
		{Address: "ada@lovelace.org", DisplayName: "Ada Lovelace", LastInteraction: fixedNow.Add(-2 * time.Hour)},
		{Address: "bob@x.com", DisplayName: "Bob"},
		{Address: "carol@acme.io"},
	}
}

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	m := New(opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, s string) {
	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNew_MountsAndFocusesTo(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})

	if m.Focus() != FieldTo {
		t.Errorf("Focus() = %v, want To", m.Focus())
	}
	if !m.Recipients(FieldTo).Focused() || m.Recipients(FieldCc).Focused() {
		t.Error("only the To field should have focus")
	}
	if got := m.Bus().Len(); got != 2 {
		t.Errorf("bus subscribers = %d, want 2", got)
	}
	if !m.Recipients(FieldTo).Open() {
		t.Error("focused field should show its suggestion panel")
	}
}

func TestCompose_AddToBothFieldsAndConfirm(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})

	typeText(m, "new@client.com")
	send(m, keyEnter)
	if got := m.Selection(FieldTo); !slices.Equal(got, []string{"new@client.com"}) {
		t.Fatalf("To = %v", got)
	}

	send(m, keyTab)
	if m.Focus() != FieldCc {
		t.Fatalf("Tab with an empty draft should move to Cc, focus = %v", m.Focus())
	}

	typeText(m, "bob")
	send(m, keyDown, keyEnter)
	if got := m.Selection(FieldCc); !slices.Equal(got, []string{"bob@x.com"}) {
		t.Fatalf("Cc = %v", got)
	}

	cmd := send(m, keyCtrlS)
	if !isQuit(cmd) {
		t.Error("Ctrl+S should quit")
	}
	res := m.Result()
	if !res.Confirmed {
		t.Error("Result should be confirmed")
	}
	if !slices.Equal(res.To, []string{"new@client.com"}) || !slices.Equal(res.Cc, []string{"bob@x.com"}) {
		t.Errorf("Result = %+v", res)
	}
	if m.Bus().Len() != 0 {
		t.Errorf("fields should be unmounted after finishing, bus has %d subscribers", m.Bus().Len())
	}
	if m.View() != "" {
		t.Error("finished page should render nothing")
	}
}

func TestCompose_TabCommitsDraftBeforeMovingFocus(t *testing.T) {
	m := newTestModel(t, Options{})

	typeText(m, "a@x.com")
	send(m, keyTab)

	if m.Focus() != FieldTo {
		t.Errorf("Tab with a draft should commit, not move focus")
	}
	if got := m.Selection(FieldTo); !slices.Equal(got, []string{"a@x.com"}) {
		t.Errorf("To = %v, want the draft committed", got)
	}

	send(m, keyTab)
	if m.Focus() != FieldCc {
		t.Errorf("second Tab should move focus, focus = %v", m.Focus())
	}
}

func TestCompose_TabCommitsHighlightedSuggestion(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})

	send(m, keyDown, keyTab)

	if m.Focus() != FieldTo {
		t.Error("Tab with a highlight should commit, not move focus")
	}
	if got := m.Selection(FieldTo); !slices.Equal(got, []string{"ada@lovelace.org"}) {
		t.Errorf("To = %v", got)
	}
}

func TestCompose_ShiftTabWraps(t *testing.T) {
	m := newTestModel(t, Options{})

	send(m, keyShiftTab)
	if m.Focus() != FieldCc {
		t.Errorf("Shift+Tab from To should wrap to Cc, focus = %v", m.Focus())
	}
	send(m, keyShiftTab)
	if m.Focus() != FieldTo {
		t.Errorf("Shift+Tab from Cc should go to To, focus = %v", m.Focus())
	}
	if m.Recipients(FieldCc).Open() {
		t.Error("blurred field should close its panel")
	}
}

func TestCompose_EscClosesPanelThenCancels(t *testing.T) {
	m := newTestModel(t, Options{To: []string{"keep@x.com"}, Contacts: testContacts()})

	if cmd := send(m, keyEsc); isQuit(cmd) {
		t.Fatal("first Esc should only close the panel")
	}
	if m.Recipients(FieldTo).Open() {
		t.Fatal("panel should be closed")
	}
	if m.Done() {
		t.Fatal("page should still be open")
	}

	cmd := send(m, keyEsc)
	if !isQuit(cmd) {
		t.Error("Esc with the panel closed should quit")
	}
	res := m.Result()
	if res.Confirmed {
		t.Error("Esc should cancel")
	}
	if !slices.Equal(res.To, []string{"keep@x.com"}) {
		t.Errorf("canceled Result.To = %v, want the selection so far", res.To)
	}
}

func TestCompose_CtrlCCancelsWithPanelOpen(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})

	cmd := send(m, keyCtrlC)
	if !isQuit(cmd) || m.Result().Confirmed {
		t.Error("Ctrl+C should cancel")
	}

	// Messages after finishing are ignored.
	if cmd := send(m, keyEnter); cmd != nil {
		t.Error("finished page should ignore input")
	}
}

func TestCompose_InitialSelectionAndBackspace(t *testing.T) {
	m := newTestModel(t, Options{To: []string{"a@x.com", "b@x.com"}})

	send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Selection(FieldTo); !slices.Equal(got, []string{"a@x.com"}) {
		t.Errorf("To = %v, want last recipient removed", got)
	}
}

func TestCompose_ContactsLoaded(t *testing.T) {
	m := newTestModel(t, Options{})
	if n := len(m.Recipients(FieldTo).Suggestions()); n != 0 {
		t.Fatalf("suggestions before load = %d", n)
	}

	send(m, ContactsLoadedMsg{Contacts: testContacts()})

	for _, f := range []Field{FieldTo, FieldCc} {
		if n := len(m.Recipients(f).Suggestions()); n != 3 {
			t.Errorf("%v suggestions = %d, want 3", f, n)
		}
	}
}

type stubDirectory struct {
	contacts []contact.Contact
	err      error
}

func (d stubDirectory) List(context.Context) ([]contact.Contact, error) { return d.contacts, d.err }
func (d stubDirectory) Close() error                                     { return nil }

func TestCompose_LoadContactsFromDirectory(t *testing.T) {
	m := newTestModel(t, Options{Directory: stubDirectory{contacts: testContacts()}})

	msg := loadContacts(m.dir)()
	loaded, ok := msg.(ContactsLoadedMsg)
	if !ok {
		t.Fatalf("load returned %T", msg)
	}
	send(m, loaded)
	if n := len(m.Recipients(FieldTo).Suggestions()); n != 3 {
		t.Errorf("suggestions = %d, want 3", n)
	}

	failing := stubDirectory{err: errors.ErrMalformedDirectory}
	send(m, loadContacts(failing)())
	if !strings.Contains(m.View(), "Could not load contacts") {
		t.Error("load failure should be shown")
	}
}

func TestCompose_ClickFocusesOtherField(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})
	if !m.Recipients(FieldTo).Open() {
		t.Fatal("To panel should start open")
	}

	cc := m.Recipients(FieldCc).Bounds()
	send(m, press(2, cc.Y+1))

	if m.Focus() != FieldCc {
		t.Errorf("focus = %v, want Cc", m.Focus())
	}
	if m.Recipients(FieldTo).Open() || m.Recipients(FieldTo).Focused() {
		t.Error("To should be blurred with its panel closed")
	}
	if !m.Recipients(FieldCc).Open() || !m.Recipients(FieldCc).Focused() {
		t.Error("Cc should be focused with its panel open")
	}
}

func TestCompose_DismissInOtherFieldMovesFocus(t *testing.T) {
	m := newTestModel(t, Options{Cc: []string{"c@x.com"}})
	if m.Focus() != FieldTo {
		t.Fatalf("focus = %v, want To", m.Focus())
	}

	// " c@x.com × " puts the dismiss glyph in column 9 of the tag row
	cc := m.Recipients(FieldCc).Bounds()
	send(m, press(9, cc.Y+1))

	if got := m.Selection(FieldCc); len(got) != 0 {
		t.Fatalf("Cc = %v, want the tag dismissed", got)
	}
	if m.Focus() != FieldCc || !m.Recipients(FieldCc).Focused() {
		t.Fatal("Cc should have keyboard focus after the dismiss click")
	}
	if m.Recipients(FieldTo).Focused() {
		t.Error("To should be blurred")
	}

	typeText(m, "d@x.com")
	send(m, keyEnter)

	if got := m.Selection(FieldCc); !slices.Equal(got, []string{"d@x.com"}) {
		t.Errorf("Cc = %v, want [d@x.com]", got)
	}
	if got := m.Selection(FieldTo); len(got) != 0 {
		t.Errorf("To = %v, want empty", got)
	}
}

func TestCompose_LayoutStacksFields(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})

	to := m.Recipients(FieldTo).Bounds()
	cc := m.Recipients(FieldCc).Bounds()
	if to.Width != 100 {
		t.Errorf("field width = %d, want terminal width", to.Width)
	}
	if cc.Y != to.Y+to.Height+1 {
		t.Errorf("Cc starts at row %d, want %d", cc.Y, to.Y+to.Height+1)
	}

	send(m, keyEsc)
	closed := m.Recipients(FieldCc).Bounds()
	if closed.Y >= cc.Y {
		t.Errorf("closing the To panel should move Cc up: %d -> %d", cc.Y, closed.Y)
	}
}

func TestCompose_OutsidePressClosesPanel(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})

	send(m, press(5, 0))

	if m.Recipients(FieldTo).Open() {
		t.Error("press on the header should close the panel")
	}
	if m.Focus() != FieldTo || !m.Recipients(FieldTo).Focused() {
		t.Error("outside press should not move focus")
	}
}

func TestCompose_TerminalBlurClosesPanel(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})

	send(m, tea.BlurMsg{})

	if m.Recipients(FieldTo).Open() {
		t.Error("terminal blur should close the panel")
	}
}

func TestCompose_PreviewCard(t *testing.T) {
	m := newTestModel(t, Options{Contacts: testContacts()})

	if strings.Contains(m.View(), "Last contact:") {
		t.Fatal("no preview without a highlight")
	}

	send(m, keyDown)
	view := m.View()
	if !strings.Contains(view, "Last contact: 2 hours ago") {
		t.Errorf("preview card missing from view:\n%s", view)
	}
}

func TestCompose_ViewShowsHeaderAndHelp(t *testing.T) {
	m := newTestModel(t, Options{})

	view := m.View()
	for _, want := range []string{Title, "To", "Cc", "ctrl+s", "next field"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestField_String(t *testing.T) {
	if FieldTo.String() != "To" || FieldCc.String() != "Cc" {
		t.Errorf("String() = %q, %q", FieldTo, FieldCc)
	}
	if got := Field(7).String(); got != "Field(7)" {
		t.Errorf("String() = %q", got)
	}
}
