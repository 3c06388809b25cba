package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/core"
)

// modulePickerScreen lists every module; a digit jumps straight to one, any
// other printable key filters the list.
type modulePickerScreen struct {
	picker *core.Picker
}

// NewModulePicker builds the "go to module" screen.
func NewModulePicker(m *core.Model) core.Screen {
	items := make([]core.PickerItem, 0, len(core.Modules()))
	for _, id := range core.Modules() {
		items = append(items, core.PickerItem{
			ID:      id.Slug(),
			Label:   "[" + id.Key() + "] " + id.Title(),
			Section: id.Group(),
			Meta:    id.Slug(),
			Search:  id.Title() + " " + id.Slug(),
		})
	}
	p := core.NewPicker("Go to module", items)
	if m != nil {
		p.MoveTo(m.ActiveModule().Slug())
	}
	return &modulePickerScreen{picker: p}
}

func (s *modulePickerScreen) Title() string { return s.picker.Title() }
func (s *modulePickerScreen) Scope() string { return "screen:modules" }

func (s *modulePickerScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	keyName := strings.ToLower(strings.TrimSpace(keyMsg.String()))
	if len(keyName) == 1 && keyName[0] >= '0' && keyName[0] <= '9' {
		if id, found := core.ParseModuleID(keyName); found {
			return s, core.SelectModuleCmd(id), true
		}
	}
	result := s.picker.HandleKey(keyName)
	switch result.Action {
	case core.PickerActionCancelled:
		return s, nil, true
	case core.PickerActionSelected:
		id, found := core.ParseModuleID(result.Item.ID)
		if !found {
			return s, nil, true
		}
		return s, core.SelectModuleCmd(id), true
	default:
		return s, nil, false
	}
}

func (s *modulePickerScreen) View(width, height int) string {
	lines := make([]string, 0, len(s.picker.Items())+6)
	q := strings.TrimSpace(s.picker.Query())
	if q == "" {
		q = "(type to filter)"
	}
	lines = append(lines, "Filter: "+q, "")
	items := s.picker.Items()
	if len(items) == 0 {
		lines = append(lines, "  No matching modules")
	}
	cursor := s.picker.Cursor()
	section := ""
	for i, item := range items {
		if item.Section != section {
			section = item.Section
			lines = append(lines, strings.ToUpper(section))
		}
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		lines = append(lines, prefix+item.Label)
	}
	lines = append(lines, "", "Digit jumps. Enter selects. Esc cancels.")
	return core.ClipHeight(core.TrimToWidth(strings.Join(lines, "\n"), max(20, width)), max(6, height))
}
