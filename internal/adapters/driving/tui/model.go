// Package tui is an interactive terminal call simulator. It drives one call
// through the engine: initiate, exchange turns, and end with a summary.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
)

// Options configures the simulated caller.
type Options struct {
	UserName  string
	UserPhone string
	Topic     string
}

// Messages delivered by asynchronous commands.
type (
	callStartedMsg struct{ call *domain.Call }
	turnDoneMsg    struct{ result *driving.TurnResult }
	callEndedMsg   struct{ call *domain.Call }
	errMsg         struct{ err error }
)

// Model is the Bubble Tea model for the call simulator.
type Model struct {
	calls driving.CallService
	ctx   context.Context
	opts  Options

	call     *domain.Call
	input    textinput.Model
	viewport viewport.Model
	lines    []string
	status   string
	busy     bool
	ready    bool
	ending   bool
}

// New creates a call simulator model. The caller name defaults to "Caller".
func New(ports *Ports, opts Options) (*Model, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.UserName) == "" {
		opts.UserName = "Caller"
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	return &Model{
		calls:    ports.Calls,
		ctx:      context.Background(),
		opts:     opts,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Dialing...",
	}, nil
}

// WithContext sets the context used for engine calls.
func (m *Model) WithContext(ctx context.Context) *Model {
	if ctx != nil {
		m.ctx = ctx
	}
	return m
}

// Init starts the cursor blink and dials the call.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startCall())
}

// Update handles key events and engine results.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		vh := msg.Height - th - ih - 4
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = vh
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.call != nil && !m.ending {
				m.ending = true
				m.status = "Hanging up..."
				return m, m.endCall()
			}
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy || m.call == nil || m.ending {
				return m, nil
			}
			m.busy = true
			m.status = "Agent is thinking..."
			m.appendLine(userStyle.Render("You: ") + text)
			m.input.Reset()
			return m, m.sendMessage(text)
		}

	case callStartedMsg:
		m.call = msg.call
		m.status = fmt.Sprintf("Connected as %s. Esc hangs up.", m.call.UserName)
		for _, turn := range msg.call.Transcript {
			if turn.Role == domain.RoleAgent {
				m.appendLine(agentStyle.Render("Agent: ") + turn.Text)
			}
		}
		return m, nil

	case turnDoneMsg:
		m.busy = false
		r := msg.result
		m.appendLine(agentStyle.Render("Agent: ") + r.AgentResponse)
		m.status = fmt.Sprintf("Intent: %s (%.2f)", r.Intent, r.Confidence)
		if r.Degraded {
			m.status += "  [degraded]"
		}
		if r.RequiresTransfer {
			m.appendLine(noticeStyle.Render("-- transfer to a human agent requested --"))
		}
		return m, nil

	case callEndedMsg:
		m.call = msg.call
		if s := msg.call.Summary; s != nil {
			m.appendLine("")
			m.appendLine(noticeStyle.Render(fmt.Sprintf(
				"Call ended after %s. Turns: %d. Dominant intent: %s.",
				s.Duration.Round(timeRounding), s.TurnCount, s.DominantIntent)))
		}
		return m, tea.Quit

	case errMsg:
		m.busy = false
		m.status = errorStyle.Render("Error: " + msg.err.Error())
		if m.ending {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the transcript, input box, and status line.
func (m *Model) View() string {
	if !m.ready {
		return "Dialing..."
	}
	header := headerStyle.Render("Switchboard Call Simulator")
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m *Model) startCall() tea.Cmd {
	return func() tea.Msg {
		call, err := m.calls.InitiateCall(m.ctx, driving.CallRequest{
			UserName:  m.opts.UserName,
			UserPhone: m.opts.UserPhone,
			Topic:     m.opts.Topic,
		})
		if err != nil {
			return errMsg{err}
		}
		return callStartedMsg{call}
	}
}

func (m *Model) sendMessage(text string) tea.Cmd {
	callID := m.call.ID
	return func() tea.Msg {
		result, err := m.calls.ProcessMessage(m.ctx, callID, text)
		if err != nil {
			return errMsg{err}
		}
		return turnDoneMsg{result}
	}
}

func (m *Model) endCall() tea.Cmd {
	callID := m.call.ID
	return func() tea.Msg {
		call, err := m.calls.EndCall(m.ctx, callID)
		if err != nil {
			return errMsg{err}
		}
		return callEndedMsg{call}
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
