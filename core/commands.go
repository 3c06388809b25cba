package core

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Command is a palette entry. Scopes use the same matching as key bindings.
type Command struct {
	ID          string
	Name        string
	Description string
	Scopes      []string
	Execute     func(m *Model) tea.Cmd
	Disabled    func(m *Model) (bool, string)
}

func (c Command) haystack() string {
	return strings.ToLower(c.Name + " " + c.Description + " " + c.ID)
}

func (c Command) state(m *Model) (bool, string) {
	if c.Disabled == nil {
		return false, ""
	}
	return c.Disabled(m)
}

type CommandResult struct {
	CommandID string
	Name      string
	Desc      string
	Disabled  bool
	Reason    string
}

// CommandRegistry keeps commands in registration order; re-registering an
// id replaces the entry in place.
type CommandRegistry struct {
	order []string
	byID  map[string]Command
}

func NewCommandRegistry(cmds []Command) *CommandRegistry {
	reg := &CommandRegistry{byID: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		reg.Register(c)
	}
	return reg
}

func (r *CommandRegistry) Register(c Command) {
	if c.ID == "" {
		return
	}
	if _, exists := r.byID[c.ID]; !exists {
		r.order = append(r.order, c.ID)
	}
	r.byID[c.ID] = c
}

func (r *CommandRegistry) Unregister(id string) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
}

// RegisterModules adds one "Go to" command per module.
func (r *CommandRegistry) RegisterModules() {
	for _, id := range Modules() {
		r.Register(gotoCommand(id))
	}
}

func gotoCommand(target ModuleID) Command {
	return Command{
		ID:          "goto-" + target.Slug(),
		Name:        "Go to " + target.Title(),
		Description: target.Group() + " module",
		Scopes:      []string{"*"},
		Execute:     func(m *Model) tea.Cmd { return m.SelectModule(target) },
		Disabled: func(m *Model) (bool, string) {
			if m.ActiveModule() == target && m.ActivePanel() != nil {
				return true, "already open"
			}
			return false, ""
		},
	}
}

// Search returns the commands visible in scope whose text contains query.
// Enabled commands sort before disabled ones, then by name.
func (r *CommandRegistry) Search(query, scope string, m *Model) []CommandResult {
	needle := strings.ToLower(strings.TrimSpace(query))
	var out []CommandResult
	for _, id := range r.order {
		c := r.byID[id]
		if !scopeMatch(scope, c.Scopes) || !strings.Contains(c.haystack(), needle) {
			continue
		}
		off, why := c.state(m)
		out = append(out, CommandResult{CommandID: c.ID, Name: c.Name, Desc: c.Description, Disabled: off, Reason: why})
	}
	slices.SortStableFunc(out, func(a, b CommandResult) int {
		switch {
		case a.Disabled == b.Disabled:
			return strings.Compare(a.Name, b.Name)
		case a.Disabled:
			return 1
		default:
			return -1
		}
	})
	return out
}

func (r *CommandRegistry) Execute(id string, m *Model) tea.Cmd {
	c, ok := r.byID[id]
	if !ok {
		return StatusCmd("Unknown command: " + id)
	}
	if off, why := c.state(m); off {
		if why == "" {
			why = "command is disabled"
		}
		return StatusCmd(why)
	}
	if c.Execute == nil {
		return nil
	}
	return c.Execute(m)
}
