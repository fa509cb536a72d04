package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/setgame/internal/deck"
	"github.com/lox/setgame/internal/game"
)

const gridColumns = 4

// Input receives what the people at the keyboard do.
type Input interface {
	OnInput(player, slot int)
	Terminate()
}

type slotView struct {
	card    deck.Card
	present bool
	tokens  []int
}

// TUIModel represents the Bubble Tea model for the game
type TUIModel struct {
	rules  deck.Rules
	input  Input
	keys   KeyMap
	logger *log.Logger

	// UI components
	logViewport viewport.Model

	// Display state, fed by Display
	slots     []slotView
	scores    []int
	freezes   []time.Duration
	countdown time.Duration
	warn      bool
	winners   []int
	gameLog   []string
	quitting  bool

	// Dimensions
	width  int
	height int
}

// NewTUIModel creates a model for a game configured by cfg. Key presses are
// forwarded to input, which may be nil until SetInput is called.
func NewTUIModel(cfg game.Config, input Input, logger *log.Logger) *TUIModel {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &TUIModel{
		rules:       cfg.Rules,
		input:       input,
		keys:        DefaultKeyMap(cfg.HumanPlayers, cfg.TableSize),
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		slots:       make([]slotView, cfg.TableSize),
		scores:      make([]int, cfg.Players),
		freezes:     make([]time.Duration, cfg.Players),
		countdown:   cfg.TurnTimeout,
	}
}

// SetInput replaces the receiver of key presses. It must be called before
// the program starts.
func (m *TUIModel) SetInput(input Input) {
	m.input = input
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return nil
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case countdownMsg:
		m.countdown = msg.remaining
		m.warn = msg.warn

	case placeCardMsg:
		m.slots[msg.slot] = slotView{card: msg.card, present: true}

	case removeCardMsg:
		m.slots[msg.slot] = slotView{}

	case placeTokenMsg:
		s := &m.slots[msg.slot]
		s.tokens = append(s.tokens, msg.player)

	case removeTokenMsg:
		s := &m.slots[msg.slot]
		for i, p := range s.tokens {
			if p == msg.player {
				s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
				break
			}
		}

	case removeAllTokensMsg:
		m.slots[msg.slot].tokens = nil

	case scoreMsg:
		if msg.score != m.scores[msg.player] {
			m.AddLogEntry(SuccessStyle.Render(fmt.Sprintf("Player %d scores (%d)", msg.player, msg.score)))
		}
		m.scores[msg.player] = msg.score

	case freezeMsg:
		if m.freezes[msg.player] == 0 && msg.remaining > 0 {
			m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("Player %d frozen for %s", msg.player, msg.remaining)))
		}
		m.freezes[msg.player] = msg.remaining

	case winnersMsg:
		m.winners = msg.players
		m.AddLogEntry(WarningStyle.Render(winnersText(msg.players)))
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *TUIModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) || m.winners != nil {
		m.quitting = true
		if m.input != nil {
			m.input.Terminate()
		}
		return tea.Quit
	}

	player, slot, ok := m.keys.Lookup(msg)
	if !ok || m.input == nil {
		return nil
	}
	m.logger.Debug("Key pressed", "key", msg.String(), "player", player, "slot", slot)
	m.input.OnInput(player, slot)
	return nil
}

func winnersText(players []int) string {
	if len(players) == 1 {
		return fmt.Sprintf("Player %d wins!", players[0])
	}
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = fmt.Sprint(p)
	}
	return "Tie between players " + strings.Join(ids, ", ")
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, m.renderGrid(), "  ", m.renderSidebar())

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.width > 0 {
		m.logViewport.Width = m.width - 2
	}
	if m.height > 0 {
		m.logViewport.Height = max(m.height-lipgloss.Height(top)-4, 1)
	}
	logPane := GameLogStyle.Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), top, logPane, m.renderHelp())
}

func (m *TUIModel) renderHeader() string {
	seconds := m.countdown.Round(time.Second)
	countdown := fmt.Sprintf("%s left", seconds)
	style := PlayerInfoStyle
	if m.warn {
		countdown = fmt.Sprintf("%.1fs left", m.countdown.Seconds())
		style = ErrorStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, HeaderStyle.Render("SET"), " ", style.Render(countdown))
}

func (m *TUIModel) renderGrid() string {
	var rows []string
	for start := 0; start < len(m.slots); start += gridColumns {
		end := min(start+gridColumns, len(m.slots))
		cells := make([]string, 0, end-start)
		for slot := start; slot < end; slot++ {
			cells = append(cells, m.renderSlot(slot))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *TUIModel) renderSlot(slot int) string {
	s := m.slots[slot]

	var keys []string
	for player := range m.keys.Players {
		if k := m.keys.SlotKey(player, slot); k != "" {
			keys = append(keys, k)
		}
	}
	hint := KeyHintStyle.Render(strings.Join(keys, " "))

	if !s.present {
		return EmptySlotStyle.Render(lipgloss.JoinVertical(lipgloss.Center, "·", " ", hint))
	}

	features := m.rules.Features(s.card)
	card := cardStyle(features[0]).Render(m.rules.Format(s.card))

	markers := make([]string, 0, len(s.tokens))
	for _, p := range s.tokens {
		markers = append(markers, tokenStyle(p).Render(fmt.Sprintf("P%d", p)))
	}
	return SlotStyle.Render(lipgloss.JoinVertical(lipgloss.Center, card, strings.Join(markers, " ")+" ", hint))
}

func (m *TUIModel) renderSidebar() string {
	var content strings.Builder
	content.WriteString(InfoStyle.Render("Players"))
	content.WriteString("\n")
	for player, score := range m.scores {
		line := tokenStyle(player).Render(fmt.Sprintf("P%d", player)) + PlayerInfoStyle.Render(fmt.Sprintf("  %d", score))
		if d := m.freezes[player]; d > 0 {
			line += ErrorStyle.Render(fmt.Sprintf("  frozen %s", d.Round(time.Second)))
		}
		content.WriteString(line)
		content.WriteString("\n")
	}
	return content.String()
}

func (m *TUIModel) renderHelp() string {
	if m.winners != nil {
		return InfoStyle.Render("Game over • press any key to exit")
	}
	return InfoStyle.Render("Press a slot key to place or lift a token • Esc to quit")
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the game log
func (m *TUIModel) Log() []string {
	return append([]string(nil), m.gameLog...)
}
