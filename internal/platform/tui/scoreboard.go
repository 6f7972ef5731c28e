package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	statsMinWidth = 80 // narrower terminals drop the stats panel
	statsWidth    = 22
	tableChrome   = 8 // title, borders, status and help lines around the table
)

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	scorePanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	scoreWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	scoreHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreEmptyStyle = scoreHintStyle.Italic(true).Padding(2, 4)
)

type scoreKeys struct {
	Up, Down, Clear, Back, Quit key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Clear, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Clear, k.Back, k.Quit}}
}

var defaultScoreKeys = scoreKeys{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Clear: key.NewBinding(key.WithKeys("c"), key.WithHelp("c c", "clear list")),
	Back:  key.NewBinding(key.WithKeys("esc", "b", "tab"), key.WithHelp("tab/esc", "back to game")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScoreboardModel lists the saved top scores. Inside a game it is an overlay;
// RunScoreboard runs it on its own.
type ScoreboardModel struct {
	store  *storage.Store
	scores []storage.ScoreRecord
	stats  *storage.Stats
	best   int
	mine   string // run id of the game just played

	table table.Model
	help  help.Model
	keys  scoreKeys

	width, height int
	standalone    bool

	armed  bool // first c of the clear confirmation seen
	errMsg string
	closed bool
	quit   bool
}

// NewScoreboardModel loads the list from store, which may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store: store,
		help:  help.New(),
		keys:  defaultScoreKeys,
	}
	m.Resize(width, height)
	m.Reload()
	return m
}

// Open prepares the overlay for display after an optional finished run.
// Without a store the list only shows that run.
func (m *ScoreboardModel) Open(last *storage.ScoreRecord) {
	m.closed, m.quit, m.armed = false, false, false
	m.mine = ""
	if last != nil {
		m.mine = last.RunID
	}
	m.Reload()
	if m.store == nil && last != nil {
		m.scores = []storage.ScoreRecord{*last}
		m.fillRows()
	}
}

// Reload reads scores, stats and the best score from the store.
func (m *ScoreboardModel) Reload() {
	m.scores, m.stats, m.errMsg = nil, nil, ""
	if m.store != nil {
		var err error
		if m.scores, err = m.store.LoadScores(); err != nil {
			m.errMsg = err.Error()
		}
		if stats, err := m.store.GetStats(); err == nil {
			m.stats = stats
		}
		if best, err := m.store.LoadBest(); err == nil {
			m.best = best
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.scores))
	cursor := 0
	for i, rec := range m.scores {
		rank := "#" + strconv.Itoa(i+1)
		if m.mine != "" && rec.RunID == m.mine {
			rank = "▶" + rank
			cursor = i
		}
		rows = append(rows, table.Row{
			rank,
			rec.Name,
			strconv.Itoa(rec.Score),
			formatClock(rec.Duration),
			rec.When.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// Resize rebuilds the table for a new terminal size.
func (m *ScoreboardModel) Resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Name", Width: storage.MaxNameLen},
			{Title: "Score", Width: 6},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-tableChrome, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(st)

	m.table = t
	m.fillRows()
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

// Update handles keys and resizes. Clearing needs c twice in a row.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		armed := m.armed
		m.armed = false

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.closed = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.clear(armed)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) clear(confirmed bool) {
	if m.store == nil {
		return
	}
	if !confirmed {
		m.armed = true
		return
	}
	if err := m.store.ClearScores(); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.Reload()
}

// Closed reports that the player left the list.
func (m ScoreboardModel) Closed() bool { return m.closed }

// Quit reports that the player asked to leave the program.
func (m ScoreboardModel) Quit() bool { return m.quit }

func (m ScoreboardModel) View() string {
	if m.quit || (m.closed && m.standalone) {
		return ""
	}

	title := "HIGH SCORES"
	if m.best > 0 {
		title = fmt.Sprintf("HIGH SCORES  ·  BEST %d", m.best)
	}

	var body string
	if len(m.scores) == 0 {
		body = scoreEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	} else {
		body = m.table.View()
	}
	body = scorePanelStyle.Render(body)

	if m.width >= statsMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.statsPanel(), "  ", body)
	} else {
		body = centerText(body, m.width)
	}

	var b strings.Builder
	b.WriteString(scoreTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	switch {
	case m.errMsg != "":
		b.WriteString(scoreWarnStyle.Render(m.errMsg) + "\n")
	case m.armed:
		b.WriteString(scoreWarnStyle.Render("press c again to clear all scores") + "\n")
	}
	b.WriteString(scoreHintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsPanel() string {
	panel := scorePanelStyle.Width(statsWidth)
	if m.stats == nil || m.stats.Games == 0 {
		return panel.Render("Stats\n\nno games yet")
	}
	s := m.stats
	return panel.Render(fmt.Sprintf(
		"Stats\n\nGames   %d\nHigh    %d\nAverage %.1f\nPlayed  %s\nLast    %s",
		s.Games, s.HighScore, s.AvgScore, formatClock(s.TotalTime), s.LastPlayed.Local().Format("Jan 02"),
	))
}

// RunScoreboard shows the list full screen until the player leaves.
func RunScoreboard(store *storage.Store, width, height int) error {
	m := NewScoreboardModel(store, width, height)
	m.standalone = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// formatClock renders d as m:ss, or h:mm:ss past an hour.
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mnt := int(d%time.Hour) / int(time.Minute)
	sec := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mnt, sec)
	}
	return fmt.Sprintf("%d:%02d", mnt, sec)
}

func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
