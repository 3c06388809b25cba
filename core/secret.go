package core

import (
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMask is the rune hidden values are drawn with.
const DefaultMask = '•'

// Mask hides value behind one mask rune per rune of value.
func Mask(value string, mask rune) string {
	if mask == 0 {
		mask = DefaultMask
	}
	return strings.Repeat(string(mask), utf8.RuneCountInString(value))
}

// Secret is a show/hide toggle. The zero value is hidden.
type Secret struct {
	revealed bool
}

func (s *Secret) Toggle()       { s.revealed = !s.revealed }
func (s *Secret) Hide()         { s.revealed = false }
func (s Secret) Revealed() bool { return s.revealed }
func (s Secret) Label() string {
	if s.revealed {
		return "hide"
	}
	return "show"
}

// Display returns value when revealed and its mask otherwise.
func (s Secret) Display(value string, mask rune) string {
	if s.revealed {
		return value
	}
	return Mask(value, mask)
}

// Copy and share confirmations stay up this long.
const (
	CopyFlashDuration  = 2 * time.Second
	ShareFlashDuration = 4 * time.Second
)

// Flash is a transient indicator such as "copied". Each Show bumps a token so
// the timer of an earlier Show cannot clear a later one.
type Flash struct {
	Key string

	text  string
	token uint64
}

func (f *Flash) Text() string { return f.text }
func (f *Flash) Active() bool { return f.text != "" }

// Expire clears the flash when msg belongs to its latest Show.
func (f *Flash) Expire(msg FlashExpiredMsg) bool {
	if msg.Key != f.Key || msg.Token != f.token {
		return false
	}
	f.text = ""
	return true
}

// FlashExpiredMsg ends one Show of a Flash.
type FlashExpiredMsg struct {
	Module     ModuleID
	Generation uint64
	Key        string
	Token      uint64
}

func (m FlashExpiredMsg) Target() (ModuleID, uint64) { return m.Module, m.Generation }

// ShowFlash sets f to text and schedules it to clear after d.
func (m *Model) ShowFlash(f *Flash, text string, d time.Duration) tea.Cmd {
	f.token++
	f.text = text
	msg := FlashExpiredMsg{Module: m.activeID, Generation: m.generation, Key: f.Key, Token: f.token}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
