package core

import "strings"

// VaultFormScope is the key scope of the add-item form.
const VaultFormScope = "screen:vault-form"

var (
	formScopes   = []string{"panel:share", "panel:decompiler", "panel:capture", "panel:flash", "panel:debug", "panel:power"}
	exportScopes = []string{"panel:identity", "panel:vault", "panel:decompiler", "panel:capture", "panel:flash", "panel:debug", "panel:power"}
	listScopes   = []string{"panel:overview", "panel:identity", "panel:vault"}
)

func DefaultKeyBindings() []KeyBinding {
	bindings := []KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{"panel:*", "app"}},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"panel:*", "app"}},
		{Keys: []string{"g"}, Action: "open-module-picker", Description: "go to", Scopes: []string{"panel:*", "app"}},
		{Keys: []string{"]"}, Action: "next-module", Description: "next", Scopes: []string{"panel:*", "app"}},
		{Keys: []string{"["}, Action: "prev-module", Description: "prev", Scopes: []string{"panel:*", "app"}},
		{Keys: []string{"0-9"}, Description: "modules", Scopes: []string{"panel:*", "app"}},

		{Keys: []string{"k", "up", "left"}, Action: "cursor-up", Description: "up", Scopes: listScopes, Hidden: true},
		{Keys: []string{"j", "down", "right"}, Action: "cursor-down", Description: "down", Scopes: listScopes, Hidden: true},
		{Keys: []string{"enter"}, Action: "open", Description: "open", Scopes: []string{"panel:overview"}},
		{Keys: []string{"n"}, Action: "generate", Description: "generate", Scopes: []string{"panel:identity"}},
		{Keys: []string{"a"}, Action: "add", Description: "add", Scopes: []string{"panel:vault"}},
		{Keys: []string{"d"}, Action: "delete", Description: "delete", Scopes: []string{"panel:vault"}},
		{Keys: []string{"r"}, Action: "reveal", Description: "show/hide", Scopes: []string{"panel:identity", "panel:vault"}},
		{Keys: []string{"c"}, Action: "copy", Description: "copy", Scopes: []string{"panel:identity", "panel:vault", "panel:decompiler", "panel:capture", "panel:flash", "panel:debug", "panel:power"}},

		{Keys: []string{"tab"}, Action: "next-field", Description: "field", Scopes: append([]string{"edit", VaultFormScope}, formScopes...)},
		{Keys: []string{"shift+tab"}, Action: "prev-field", Description: "prev field", Scopes: append([]string{"edit", VaultFormScope}, formScopes...), Hidden: true},
		{Keys: []string{"enter"}, Action: "edit", Description: "edit", Scopes: formScopes},
		{Keys: []string{"right", "l"}, Action: "choice-next", Description: "option", Scopes: append([]string{VaultFormScope}, formScopes...), Hidden: true},
		{Keys: []string{"left", "h"}, Action: "choice-prev", Description: "option", Scopes: append([]string{VaultFormScope}, formScopes...), Hidden: true},
		{Keys: []string{"x"}, Action: "run", Description: "share", Scopes: []string{"panel:share"}},
		{Keys: []string{"x"}, Action: "run", Description: "decompile", Scopes: []string{"panel:decompiler"}},
		{Keys: []string{"x"}, Action: "run", Description: "capture", Scopes: []string{"panel:capture"}},
		{Keys: []string{"x"}, Action: "run", Description: "run", Scopes: []string{"panel:debug"}},
		{Keys: []string{"x"}, Action: "run", Description: "audit", Scopes: []string{"panel:power"}},
		{Keys: []string{"r"}, Action: "read-flash", Description: "read", Scopes: []string{"panel:flash"}},
		{Keys: []string{"w"}, Action: "write-flash", Description: "write", Scopes: []string{"panel:flash"}},
		{Keys: []string{"e"}, Action: "export", Description: "export", Scopes: exportScopes},
		{Keys: []string{"esc", "enter"}, Action: "done-edit", Description: "done", Scopes: []string{"edit"}},

		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{"screen:command", "screen:modules", VaultFormScope}},
		{Keys: []string{"enter"}, Action: "select", Description: "select", Scopes: []string{"screen:command", "screen:modules"}},
		{Keys: []string{"ctrl+s"}, Action: "save", Description: "save", Scopes: []string{VaultFormScope}},
	}
	for _, id := range Modules() {
		bindings = append(bindings, KeyBinding{
			Keys:        []string{id.Key()},
			Action:      "goto-" + id.Slug(),
			Description: id.Title(),
			Scopes:      []string{"panel:*", "app"},
			Hidden:      true,
		})
	}
	return bindings
}

func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Action) == "" || len(b.Keys) == 0 {
			continue
		}
		if _, exists := out[b.Action]; exists {
			continue
		}
		out[b.Action] = append([]string(nil), b.Keys...)
	}
	return out
}

// ApplyActionKeybindings replaces the keys of every binding whose action has
// an override.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
			Hidden:      b.Hidden,
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 && b.Action != "" {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
