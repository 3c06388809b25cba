package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/validate"
	"github.com/jask/aegisdeck/widgets"
)

// VaultItem is what the add form submits.
type VaultItem struct {
	Title   string `validate:"notblank" label:"title"`
	Kind    string `validate:"oneof=password note" label:"type"`
	Content string `validate:"notblank" label:"content"`
}

var vaultKinds = []string{"password", "note"}

const (
	focusTitle = iota
	focusKind
	focusContent
	vaultFormFields
)

// VaultFormScreen collects a new vault item. It stays open until the input
// validates or the user cancels.
type VaultFormScreen struct {
	keys     *core.KeyRegistry
	title    textinput.Model
	content  textinput.Model
	kind     int
	focus    int
	err      string
	onSubmit func(VaultItem) tea.Msg
}

// NewVaultForm builds the form. keys resolves the close, save and field
// movement actions; nil uses the default bindings.
func NewVaultForm(keys *core.KeyRegistry, mask rune, onSubmit func(VaultItem) tea.Msg) *VaultFormScreen {
	if keys == nil {
		keys = core.NewKeyRegistry(core.DefaultKeyBindings())
	}
	title := textinput.New()
	title.Placeholder = "e.g. Work Email"
	title.Prompt = ""
	title.CharLimit = 120
	title.Focus()

	content := textinput.New()
	content.Placeholder = "secret or note"
	content.Prompt = ""
	content.CharLimit = 1024
	content.EchoCharacter = mask

	s := &VaultFormScreen{keys: keys, title: title, content: content, onSubmit: onSubmit}
	s.syncEcho()
	return s
}

func (s *VaultFormScreen) Title() string { return "Add vault item" }
func (s *VaultFormScreen) Scope() string { return core.VaultFormScope }

// Value returns the form contents as they would be submitted.
func (s *VaultFormScreen) Value() VaultItem {
	return VaultItem{
		Title:   strings.TrimSpace(s.title.Value()),
		Kind:    vaultKinds[s.kind],
		Content: s.content.Value(),
	}
}

func (s *VaultFormScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		is := func(action string) bool { return s.keys.IsAction(msg, action, s.Scope()) }
		switch {
		case is("close"):
			return s, nil, true
		case is("save"):
			return s.submit()
		case is("next-field"):
			s.move(1)
			return s, nil, false
		case is("prev-field"):
			s.move(-1)
			return s, nil, false
		case msg.Type == tea.KeyEnter:
			if s.focus == focusContent {
				return s.submit()
			}
			s.move(1)
			return s, nil, false
		case s.focus == focusKind:
			if is("choice-next") || is("choice-prev") {
				s.kind = (s.kind + 1) % len(vaultKinds)
				s.syncEcho()
			}
			return s, nil, false
		}
	}
	var cmd tea.Cmd
	switch s.focus {
	case focusTitle:
		s.title, cmd = s.title.Update(msg)
	case focusContent:
		s.content, cmd = s.content.Update(msg)
	}
	return s, cmd, false
}

func (s *VaultFormScreen) submit() (core.Screen, tea.Cmd, bool) {
	item := s.Value()
	if err := validate.Struct(item); err != nil {
		s.err = err.Error()
		return s, nil, false
	}
	if s.onSubmit == nil {
		return s, nil, true
	}
	return s, func() tea.Msg { return s.onSubmit(item) }, true
}

func (s *VaultFormScreen) move(delta int) {
	s.focus = (s.focus + delta + vaultFormFields) % vaultFormFields
	s.title.Blur()
	s.content.Blur()
	switch s.focus {
	case focusTitle:
		s.title.Focus()
	case focusContent:
		s.content.Focus()
	}
}

func (s *VaultFormScreen) syncEcho() {
	if vaultKinds[s.kind] == "password" {
		s.content.EchoMode = textinput.EchoPassword
		return
	}
	s.content.EchoMode = textinput.EchoNormal
}

func (s *VaultFormScreen) View(width, height int) string {
	s.title.Width = max(10, width-6)
	s.content.Width = max(10, width-6)
	fields := widgets.Fields{
		{Label: "Title", Value: s.title.View(), Focused: s.focus == focusTitle, Invalid: strings.Contains(s.err, "title")},
		{Label: "Type", Value: widgets.Choice(vaultKinds, s.kind), Focused: s.focus == focusKind},
		{Label: "Content", Value: s.content.View(), Focused: s.focus == focusContent, Invalid: strings.Contains(s.err, "content")},
	}
	out := fields.Render(width, 6)
	if s.err != "" {
		out += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Render(s.err)
	}
	out += "\n\ntab: next field  ctrl+s: save  esc: cancel"
	return core.ClipHeight(out, max(6, height))
}
