package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/block52/holdem-client/holdem"
	"github.com/block52/holdem-client/holdem/chips"
)

// SubmitFunc sends a command to the chain and returns the transaction hash.
type SubmitFunc func(Command) (string, error)

// StateMsg carries a fresh table snapshot into the model.
type StateMsg struct {
	State *holdem.TableState
}

// FeedErrMsg reports a dead game-state subscription.
type FeedErrMsg struct {
	Err error
}

// submitResultMsg reports the outcome of a submitted command.
type submitResultMsg struct {
	desc   string
	txHash string
	err    error
}

// Model is the Bubble Tea model for the table view.
type Model struct {
	logger  *log.Logger
	address string
	name    string
	submit  SubmitFunc

	logViewport viewport.Model
	actionInput textinput.Model

	state      *holdem.TableState
	avail      holdem.Availability
	gameLog    []string
	submitting bool
	quitting   bool

	width       int
	height      int
	initialized bool
}

// NewModel creates the table view for the given player address. Name is a
// purely cosmetic label; the node only knows addresses.
func NewModel(logger *log.Logger, address, name string, submit SubmitFunc) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "fold, check, call, bet 10, raise 25, pot, half, allin ..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	return &Model{
		logger:      logger.WithPrefix("tui"),
		address:     address,
		name:        name,
		submit:      submit,
		logViewport: vp,
		actionInput: ti,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m, m.handleInput()
		}

	case StateMsg:
		m.applyState(msg.State)
		return m, nil

	case FeedErrMsg:
		m.appendLog(errorStyle.Render("connection lost: " + msg.Err.Error()))
		return m, nil

	case submitResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.appendLog(errorStyle.Render(fmt.Sprintf("%s failed: %v", msg.desc, msg.err)))
		} else {
			m.appendLog(fmt.Sprintf("%s submitted (%s)", msg.desc, shortHash(msg.txHash)))
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.actionInput, cmd = m.actionInput.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleInput() tea.Cmd {
	input := m.actionInput.Value()
	m.actionInput.SetValue("")
	if input == "" {
		return nil
	}
	if input == "quit" || input == "exit" {
		m.quitting = true
		return tea.Quit
	}
	if m.submitting {
		m.appendLog(infoStyle.Render("previous action still in flight"))
		return nil
	}

	cmd, err := parseCommand(input, m.state, m.address)
	if err != nil {
		m.appendLog(errorStyle.Render(err.Error()))
		return nil
	}

	m.submitting = true
	m.appendLog("submitting " + cmd.Desc)
	return func() tea.Msg {
		txHash, err := m.submit(cmd)
		return submitResultMsg{desc: cmd.Desc, txHash: txHash, err: err}
	}
}

func (m *Model) applyState(state *holdem.TableState) {
	prev := m.state
	m.state = state
	m.avail = holdem.AvailabilityFrom(state.LegalActionsFor(m.address))
	if m.avail.IndexMismatch {
		m.logger.Warn("legal actions disagree on turn index",
			"table", state.Address, "index", m.avail.TurnIndex)
	}

	for _, line := range describeNewActions(prev, state) {
		m.appendLog(line)
	}
	if state.IsPlayerTurn(m.address) && (prev == nil || !prev.IsPlayerTurn(m.address)) {
		m.appendLog(turnStyle.Render("your turn: " + availableSummary(m.avail)))
	}
}

func (m *Model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > 500 {
		m.gameLog = m.gameLog[len(m.gameLog)-500:]
	}
	m.logViewport.SetContent(joinLines(m.gameLog))
	m.logViewport.GotoBottom()
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.logViewport.Width = m.width - 4
	logHeight := m.height - tableHeight(m.state) - 6
	if logHeight < 3 {
		logHeight = 3
	}
	m.logViewport.Height = logHeight
	m.actionInput.Width = m.width - 6
	m.initialized = true
}

// describeNewActions renders the previousActions entries that were not in
// the prior snapshot.
func describeNewActions(prev, next *holdem.TableState) []string {
	seen := 0
	if prev != nil {
		seen = len(prev.PreviousActions)
	}
	if seen > len(next.PreviousActions) {
		// New hand, history restarted.
		seen = 0
	}

	var lines []string
	for _, a := range next.PreviousActions[seen:] {
		line := fmt.Sprintf("%s %s", shortAddr(a.PlayerID), a.Kind)
		if a.Kind.IsMonetary() {
			line += " " + chips.Format(a.AmountMicro())
		} else if a.Kind == holdem.KindAllIn {
			// All-ins stay out of the betting aggregations, so AmountMicro
			// reports zero; the log still shows the wire amount.
			line += " " + chips.Format(chips.Parse(a.Amount))
		}
		lines = append(lines, line)
	}
	return lines
}

func availableSummary(av holdem.Availability) string {
	var verbs []string
	for _, v := range []struct {
		ok   bool
		name string
	}{
		{av.CanFold, "fold"},
		{av.CanCheck, "check"},
		{av.CanCall, "call"},
		{av.CanBet, "bet"},
		{av.CanRaise, "raise"},
		{av.CanAllIn, "allin"},
		{av.CanMuck, "muck"},
		{av.CanShow, "show"},
		{av.CanDeal, "deal"},
	} {
		if v.ok {
			verbs = append(verbs, v.name)
		}
	}
	return joinWith(verbs, " / ")
}
