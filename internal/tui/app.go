package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tessro/verse/internal/core"
	verrors "github.com/tessro/verse/internal/errors"
	"github.com/tessro/verse/internal/logging"
	"github.com/tessro/verse/internal/lyrics"
	"github.com/tessro/verse/internal/store"
	"github.com/tessro/verse/internal/tail"
	"github.com/tessro/verse/internal/tui/components"
	"github.com/tessro/verse/internal/tui/styles"
)

// offsetStep is how far one +/- keypress moves the sync offset.
const offsetStep = 100

// Saver persists edited lyrics text.
type Saver interface {
	Put(ctx context.Context, e store.Entry) error
}

// Options configures the TUI.
type Options struct {
	Player   core.Player
	Track    *core.Track
	Text     string
	OffsetMs int
	Refresh  time.Duration
	SeekStep time.Duration
	Context  int
	Theme    string
	Store    Saver
	Logger   *log.Logger
}

// App holds the TUI application state
type App struct {
	player   core.Player
	track    *core.Track
	store    Saver
	logger   *log.Logger
	refresh  time.Duration
	seekStep time.Duration
	context  int
}

// NewApp creates a new TUI application
func NewApp(opts Options) (*App, error) {
	if opts.Player == nil {
		return nil, fmt.Errorf("tui: no player")
	}
	styles.Apply(opts.Theme)

	app := &App{
		player:   opts.Player,
		track:    opts.Track,
		store:    opts.Store,
		logger:   opts.Logger,
		refresh:  opts.Refresh,
		seekStep: opts.SeekStep,
		context:  opts.Context,
	}
	if app.refresh <= 0 {
		app.refresh = 100 * time.Millisecond
	}
	if app.seekStep <= 0 {
		app.seekStep = 5 * time.Second
	}
	if app.logger == nil {
		app.logger = logging.Discard()
	}
	return app, nil
}

// Model is the Bubble Tea model for the lyrics view.
type Model struct {
	app    *App
	width  int
	height int

	// Lyrics
	text        string
	lines       []lyrics.Line
	fingerprint uint64

	// Playback
	state    *core.PlaybackState
	active   int
	cursor   int
	follow   bool
	offsetMs int

	// Components
	nowPlaying *components.NowPlaying
	lyricsView *components.Lyrics
	editor     *components.Editor

	// Overlays
	showHelp bool
	editing  bool

	// Flash messages
	lastError    error
	errorExpiry  time.Time
	status       string
	statusExpiry time.Time

	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App, text string, offsetMs int) Model {
	m := Model{
		app:        app,
		active:     -1,
		cursor:     -1,
		follow:     true,
		offsetMs:   offsetMs,
		nowPlaying: components.NewNowPlaying(),
		lyricsView: components.NewLyrics(app.context),
		editor:     components.NewEditor(),
	}
	m.applyText(text)
	return m
}

// Messages
type tickMsg time.Time
type stateMsg *core.PlaybackState
type errMsg error
type savedMsg struct{ trackID string }
type copiedMsg struct{ lines int }

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchState() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		state, err := m.app.player.GetState(ctx)
		if err != nil {
			return errMsg(err)
		}
		return stateMsg(state)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tick(),
		m.fetchState(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.tick(), m.fetchState())

	case stateMsg:
		if time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		m.state = msg
		m.relocate()
		return m, nil

	case errMsg:
		m.app.logger.Warn("ui error", "err", msg)
		m.lastError = msg
		m.errorExpiry = time.Now().Add(5 * time.Second) // Show error for 5 seconds
		return m, nil

	case savedMsg:
		m.app.logger.Info("saved lyrics", "track", msg.trackID)
		m.flash("Saved " + msg.trackID)
		return m, nil

	case copiedMsg:
		m.flash(fmt.Sprintf("Copied %d lines as LRC", msg.lines))
		return m, nil
	}

	// Forward other messages (cursor blink) to the editor while it is open
	if m.editing {
		return m, m.editor.Update(msg)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	if m.editing {
		return m.handleEditorKeyPress(msg)
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case " ":
		return m, m.togglePlayPause()
	case "left", "h":
		return m, m.seekBy(-m.app.seekStep)
	case "right", "l":
		return m, m.seekBy(m.app.seekStep)
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "g", "home":
		m.follow = false
		if len(m.lines) > 0 {
			m.cursor = 0
		}
		return m, nil
	case "G", "end":
		m.follow = false
		m.cursor = len(m.lines) - 1
		return m, nil
	case "enter":
		return m, m.seekToCursor()
	case "f":
		m.follow = !m.follow
		if m.follow {
			m.cursor = m.active
		}
		return m, nil
	case "+", "=":
		m.setOffset(m.offsetMs + offsetStep)
		return m, nil
	case "-", "_":
		m.setOffset(m.offsetMs - offsetStep)
		return m, nil
	case "0":
		m.setOffset(0)
		return m, nil
	case "t":
		m.lyricsView.ToggleTimes()
		return m, nil
	case "e":
		m.editing = true
		return m, m.editor.Open(m.text)
	case "y":
		return m, m.copyLRC()
	case "r":
		return m, m.fetchState()
	}

	return m, nil
}

func (m Model) handleEditorKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.applyText(m.editor.Close())
		return m, nil
	case "ctrl+s":
		m.editing = false
		m.applyText(m.editor.Close())
		return m, m.save()
	}
	return m, m.editor.Update(msg)
}

// applyText reparses text for playback. An edit that yields the same
// sequence keeps the current cursor.
func (m *Model) applyText(text string) {
	m.text = text
	lines := lyrics.Parse(text, lyrics.ModePlayback)
	fp, err := lyrics.Fingerprint(lines)
	if err == nil && m.lines != nil && fp == m.fingerprint {
		return
	}
	m.lines = lines
	m.fingerprint = fp
	m.app.logger.Debug("parsed lyrics", "lines", len(lines), "fingerprint", fp)
	if m.cursor >= len(lines) {
		m.cursor = len(lines) - 1
	}
	m.relocate()
}

// relocate recomputes the active line from the last known position.
func (m *Model) relocate() {
	m.active = lyrics.Locate(m.lines, m.position())
	if m.follow {
		m.cursor = m.active
	}
}

// position is the playback position with the sync offset applied.
func (m Model) position() int {
	return tail.OffsetPosition(m.state.PositionMs(), m.offsetMs)
}

func (m *Model) setOffset(offsetMs int) {
	m.offsetMs = offsetMs
	m.relocate()
}

func (m *Model) moveCursor(delta int) {
	if len(m.lines) == 0 {
		return
	}
	m.follow = false
	cursor := m.cursor
	if cursor < 0 {
		cursor = max(m.active, 0)
		if m.active >= 0 {
			cursor += delta
		}
	} else {
		cursor += delta
	}
	m.cursor = min(max(cursor, 0), len(m.lines)-1)
}

func (m *Model) flash(status string) {
	m.status = status
	m.statusExpiry = time.Now().Add(3 * time.Second)
}

func (m Model) togglePlayPause() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if m.state != nil && m.state.IsPlaying {
			err = m.app.player.Pause(ctx)
		} else {
			err = m.app.player.Play(ctx)
		}
		if err != nil {
			return errMsg(err)
		}
		return m.fetchState()()
	}
}

func (m Model) seekBy(delta time.Duration) tea.Cmd {
	target := m.state.PositionMs() + int(delta/time.Millisecond)
	return m.seek(max(target, 0))
}

// seekToCursor seeks so that the selected line becomes active under the
// current offset.
func (m Model) seekToCursor() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return nil
	}
	target := max(m.lines[m.cursor].TimestampMs-m.offsetMs, 0)
	return m.seek(target)
}

func (m Model) seek(positionMs int) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.player.Seek(context.Background(), positionMs); err != nil {
			return errMsg(err)
		}
		return m.fetchState()()
	}
}

func (m Model) save() tea.Cmd {
	text := m.text
	return func() tea.Msg {
		if m.app.store == nil {
			return errMsg(verrors.WithSuggestion(fmt.Errorf("no lyrics store"), "set store.path in the config file"))
		}
		if m.app.track == nil || m.app.track.ID == "" {
			return errMsg(verrors.WithSuggestion(fmt.Errorf("track has no ID"), "pass --id to name the track"))
		}
		entry := store.Entry{
			TrackID: m.app.track.ID,
			Title:   m.app.track.Title,
			Artist:  m.app.track.Artist,
			Body:    text,
		}
		if err := m.app.store.Put(context.Background(), entry); err != nil {
			return errMsg(err)
		}
		return savedMsg{trackID: entry.TrackID}
	}
}

func (m Model) copyLRC() tea.Cmd {
	lines := m.lines
	return func() tea.Msg {
		if len(lines) == 0 {
			return errMsg(verrors.ErrNoLyrics)
		}
		text, err := lyrics.Format(lines)
		if err != nil {
			return errMsg(err)
		}
		if err := clipboard.WriteAll(text); err != nil {
			return errMsg(fmt.Errorf("copy to clipboard: %w", err))
		}
		return copiedMsg{lines: len(lines)}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	header := lipgloss.NewStyle().
		Padding(0, 1).
		Render(m.nowPlaying.Render(m.state, m.offsetMs, m.follow, m.width-2))
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)

	var body string
	if m.editing {
		body = m.editor.Render(m.width, bodyHeight)
	} else {
		body = m.lyricsView.Render(m.lines, m.active, m.cursor, m.width-2, bodyHeight-2, true)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  space:play/pause  ←/→:seek  enter:jump  f:follow  +/-:sync  e:edit  y:copy")
	if m.editing {
		status = styles.Dim.Render("esc:apply  ctrl+s:apply and save")
	}

	if m.status != "" && time.Now().Before(m.statusExpiry) {
		status = styles.Playing.Render(m.status)
	}
	if m.lastError != nil {
		msg := "Error: " + m.lastError.Error()
		if hint := verrors.GetSuggestion(m.lastError); hint != "" {
			msg += " (" + hint + ")"
		}
		status = styles.Paused.Render(msg)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Verse - Keyboard Shortcuts"
	divider := strings.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  r            Refresh

  Playback
  ────────
  Space        Play/Pause
  ←/h          Seek back
  →/l          Seek forward

  Lyrics
  ──────
  j/↓          Next line
  k/↑          Previous line
  g/G          First/last line
  Enter        Seek to selected line
  f            Follow playback
  t            Show timestamps
  +/=          Sync offset +0.1s
  -            Sync offset -0.1s
  0            Reset sync offset
  y            Copy as LRC

  Editor
  ──────
  e            Edit lyrics
  Esc          Apply edits
  Ctrl+S       Apply and save

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the TUI application
func Run(opts Options) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}

	model := NewModel(app, opts.Text, opts.OffsetMs)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
