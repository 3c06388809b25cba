package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/core"
)

// CommandOption is one palette row.
type CommandOption struct {
	ID       string
	Name     string
	Desc     string
	Disabled bool
	Reason   string
}

func (o CommandOption) Title() string {
	if o.Disabled && o.Reason != "" {
		return fmt.Sprintf("%s (%s)", o.Name, o.Reason)
	}
	return o.Name
}

func (o CommandOption) Description() string { return o.Desc }
func (o CommandOption) FilterValue() string { return o.Name }

// CommandScreen is a search box over a list of commands. The search func is
// re-run on every keystroke; filtering lives there, not in the list.
type CommandScreen struct {
	scope    string
	search   func(query string) []CommandOption
	onSelect func(id string) tea.Msg
	input    textinput.Model
	list     list.Model
}

func NewCommandScreen(scope string, search func(query string) []CommandOption, onSelect func(id string) tea.Msg) *CommandScreen {
	input := textinput.New()
	input.Placeholder = "Search commands"
	input.Prompt = "cmd> "
	input.Focus()

	results := list.New(nil, list.NewDefaultDelegate(), 64, 14)
	results.SetFilteringEnabled(false)
	results.SetShowTitle(false)
	results.SetShowHelp(false)
	results.SetShowStatusBar(false)
	results.KeyMap = paletteListKeys()

	s := &CommandScreen{scope: scope, search: search, onSelect: onSelect, input: input, list: results}
	s.refresh()
	return s
}

// paletteListKeys leaves letters to the search box.
func paletteListKeys() list.KeyMap {
	return list.KeyMap{
		CursorUp:   key.NewBinding(key.WithKeys("up", "ctrl+p")),
		CursorDown: key.NewBinding(key.WithKeys("down", "ctrl+n")),
		PrevPage:   key.NewBinding(key.WithKeys("pgup")),
		NextPage:   key.NewBinding(key.WithKeys("pgdown")),
	}
}

// NewCommandPalette wires a CommandScreen to the model's command registry.
func NewCommandPalette(m *core.Model, scope string) core.Screen {
	reg := m.CommandRegistry()
	search := func(query string) []CommandOption {
		var out []CommandOption
		for _, r := range reg.Search(query, scope, m) {
			out = append(out, CommandOption{ID: r.CommandID, Name: r.Name, Desc: r.Desc, Disabled: r.Disabled, Reason: r.Reason})
		}
		return out
	}
	return NewCommandScreen(scope, search, func(id string) tea.Msg {
		return core.CommandExecuteMsg{CommandID: id}
	})
}

func (s *CommandScreen) Title() string { return "Command Palette" }
func (s *CommandScreen) Scope() string { return "screen:command" }

func (s *CommandScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	km, isKey := msg.(tea.KeyMsg)
	switch {
	case isKey && km.String() == "esc":
		return s, nil, true
	case isKey && km.String() == "enter":
		return s, s.choose(), true
	case isKey && (key.Matches(km, s.list.KeyMap.CursorUp, s.list.KeyMap.CursorDown, s.list.KeyMap.PrevPage, s.list.KeyMap.NextPage)):
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(km)
		return s, cmd, false
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.refresh()
	return s, cmd, false
}

func (s *CommandScreen) choose() tea.Cmd {
	opt, ok := s.list.SelectedItem().(CommandOption)
	switch {
	case !ok:
		return nil
	case opt.Disabled:
		return core.StatusCmd(opt.Reason)
	case s.onSelect == nil:
		return nil
	}
	return func() tea.Msg { return s.onSelect(opt.ID) }
}

func (s *CommandScreen) refresh() {
	opts := s.search(strings.TrimSpace(s.input.Value()))
	items := make([]list.Item, len(opts))
	for i, o := range opts {
		items[i] = o
	}
	s.list.SetItems(items)
}

func (s *CommandScreen) View(width, height int) string {
	s.list.SetSize(width, max(6, height-3))
	return strings.Join([]string{"scope: " + s.scope, s.input.View(), s.list.View()}, "\n")
}
