package core

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/aegisdeck/internal/export"
)

// Blob is the output of a simulated action: the text shown in the panel and
// the structured payload an export writes.
type Blob struct {
	Title    string
	Text     string
	Payload  any
	Filename string
	Format   export.Format
}

// Exportable reports whether the blob names an export file.
func (b Blob) Exportable() bool { return b.Filename != "" && b.Payload != nil }

func (b Blob) Job() export.Job {
	return export.Job{Filename: b.Filename, Format: b.Format, Payload: b.Payload}
}

// ActionState is the lifecycle of a simulated action.
type ActionState int

const (
	ActionIdle ActionState = iota
	ActionPending
	ActionResolved
	ActionRejected
)

func (s ActionState) String() string {
	switch s {
	case ActionPending:
		return "pending"
	case ActionResolved:
		return "resolved"
	case ActionRejected:
		return "rejected"
	default:
		return "idle"
	}
}

// ErrActionPending is returned when an action is started twice.
var ErrActionPending = errors.New("action already in progress")

// Action tracks one button's worth of simulated work: idle, pending, then
// resolved or rejected until the next start or Reset.
type Action struct {
	Name string

	state  ActionState
	token  uint64
	result Blob
	err    error
}

func (a *Action) State() ActionState { return a.state }
func (a *Action) Pending() bool      { return a.state == ActionPending }
func (a *Action) Err() error         { return a.err }

// Result returns the last resolved blob.
func (a *Action) Result() (Blob, bool) {
	if a.state != ActionResolved {
		return Blob{}, false
	}
	return a.result, true
}

// begin moves to pending and returns the token the result must carry.
func (a *Action) begin() (uint64, error) {
	if a.state == ActionPending {
		return 0, ErrActionPending
	}
	a.token++
	a.state = ActionPending
	a.result = Blob{}
	a.err = nil
	return a.token, nil
}

// Settle applies msg if it belongs to the current run of this action.
func (a *Action) Settle(msg ActionResultMsg) bool {
	if msg.Tag.Action != a.Name || msg.Tag.Token != a.token || a.state != ActionPending {
		return false
	}
	if msg.Err != nil {
		a.state = ActionRejected
		a.err = msg.Err
		return true
	}
	a.state = ActionResolved
	a.result = msg.Blob
	return true
}

// Reset returns to idle and forgets the last result. A run still in flight is
// ignored when it lands.
func (a *Action) Reset() {
	a.token++
	a.state = ActionIdle
	a.result = Blob{}
	a.err = nil
}

// ActionTag addresses a result to one run of one action in one activation.
type ActionTag struct {
	Module     ModuleID
	Generation uint64
	Action     string
	Token      uint64
}

// ActionResultMsg carries a settled action back into the update loop.
type ActionResultMsg struct {
	Tag     ActionTag
	Blob    Blob
	Err     error
	Elapsed time.Duration
}

func (m ActionResultMsg) Target() (ModuleID, uint64) { return m.Tag.Module, m.Tag.Generation }

// Work is the body of a simulated action.
type Work func(ctx context.Context) (Blob, error)

// RunAction runs work on a command goroutine and reports the outcome as an
// ActionResultMsg tagged with tag.
func RunAction(ctx context.Context, tag ActionTag, work Work) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		blob, err := work(ctx)
		if err == nil {
			err = ctx.Err()
		}
		return ActionResultMsg{Tag: tag, Blob: blob, Err: err, Elapsed: time.Since(start)}
	}
}

// Run starts a on the active panel. Starting an action that is already
// pending does nothing and returns nil.
func (m *Model) Run(a *Action, work Work) tea.Cmd {
	token, err := a.begin()
	if err != nil {
		m.logger.Debug("action ignored", zap.String("module", m.activeID.Slug()), zap.String("action", a.Name), zap.Error(err))
		return nil
	}
	tag := ActionTag{Module: m.activeID, Generation: m.generation, Action: a.Name, Token: token}
	m.logger.Info("action started", zap.String("module", tag.Module.Slug()), zap.String("action", a.Name))
	return tea.Batch(RunAction(m.mountCtx, tag, work), m.spinner.Tick)
}
