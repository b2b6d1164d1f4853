// Package tui provides a Bubble Tea terminal user interface for rmxlrc.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/elliotchen37/rmxlrc/internal/audio"
	"github.com/elliotchen37/rmxlrc/internal/batch"
	"github.com/elliotchen37/rmxlrc/internal/batchfile"
	"github.com/elliotchen37/rmxlrc/internal/config"
	"github.com/elliotchen37/rmxlrc/internal/model"
	"github.com/elliotchen37/rmxlrc/internal/musixmatch"
	"github.com/elliotchen37/rmxlrc/internal/service"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	songStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

// RequestKind is what the input line names.
type RequestKind int

const (
	KindSong RequestKind = iota
	KindBatch
	KindDir
)

// Request is a parsed input line.
type Request struct {
	Kind RequestKind
	Song model.Song
	Path string
}

func (r Request) String() string {
	switch r.Kind {
	case KindBatch:
		return "batch file " + r.Path
	case KindDir:
		return "directory " + r.Path
	default:
		return r.Song.String()
	}
}

// ParseRequest interprets the input line: an existing directory, an
// existing batch file, or "Artist - Title".
func ParseRequest(input string) (Request, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Request{}, errors.New("nothing entered")
	}

	if info, err := os.Stat(input); err == nil {
		if info.IsDir() {
			return Request{Kind: KindDir, Path: input}, nil
		}
		return Request{Kind: KindBatch, Path: input}, nil
	}

	artist, title, ok := strings.Cut(input, " - ")
	song := model.NewSong(artist, title, "", 0)
	if !ok || !song.Valid() {
		return Request{}, fmt.Errorf("%q is not \"Artist - Title\", a batch file or a directory", input)
	}
	return Request{Kind: KindSong, Song: song}, nil
}

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   batch.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	request Request
	svc     *service.Service
	manager *batch.Manager
	events  chan batch.ProgressEvent

	// Run progress
	done    int32
	total   int32
	summary batch.Summary

	// Options
	format  model.Format
	synced  bool
	embed   bool
	verbose bool

	// baseURL overrides the provider root; empty means the real API.
	baseURL string

	width  int
	height int
}

// NewModel creates a new TUI model using settings for defaults.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "Artist - Title, a batch file, or a music directory"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		format:    settings.OutputFormat(),
		synced:    settings.Synced,
		embed:     settings.EmbedLyrics,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the running batch.
	ProgressMsg struct {
		Event batch.ProgressEvent
	}

	// StartedMsg is sent once jobs are prepared and the manager exists.
	StartedMsg struct {
		Service *service.Service
		Manager *batch.Manager
		Jobs    []batch.Job
		Err     error
	}

	// DoneMsg is sent when the run finishes.
	DoneMsg struct {
		Summary  batch.Summary
		Failures []batch.Outcome
		Err      error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				req, err := ParseRequest(m.textInput.Value())
				if err != nil {
					m.err = err
					return m, nil
				}
				m.err = nil
				m.request = req
				m.state = StateRunning
				m.events = make(chan batch.ProgressEvent, 64)
				return m, tea.Batch(m.start(), m.spinner.Tick)
			}

		case "ctrl+t":
			if m.state == StateInput {
				if m.format == model.FormatLRC {
					m.format = model.FormatSRT
				} else {
					m.format = model.FormatLRC
				}
				return m, nil
			}

		case "ctrl+y":
			if m.state == StateInput {
				m.synced = !m.synced
				return m, nil
			}

		case "ctrl+g":
			if m.state == StateInput {
				m.embed = !m.embed
				return m, nil
			}

		case "ctrl+o":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new lookup
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.done = 0
				m.total = 0
				m.summary = batch.Summary{}
				m.svc = nil
				m.manager = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == batch.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case StartedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.svc = msg.Service
		m.manager = msg.Manager
		m.total = int32(len(msg.Jobs))
		cmds = append(cmds, m.run(msg.Jobs), m.waitForEvent(), m.tickProgress())

	case DoneMsg:
		m.summary = msg.Summary
		if m.manager != nil {
			m.done, m.total = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errors.New("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}
		for _, o := range msg.Failures {
			m.logs = append(m.logs, LogEntry{Message: fmt.Sprintf("%s: %v", o.Job.Song, o.Err), Level: batch.LevelError})
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateRunning {
			m.done, m.total = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.done) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next progress event from the running batch.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ rmxlrc"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Synced lyrics from Musixmatch"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Song, batch file or directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Format: %s (ctrl+t)\n", strings.ToUpper(m.format.String())))
	b.WriteString(fmt.Sprintf("  %s Synced lyrics (ctrl+y)\n", checkbox(m.synced)))
	b.WriteString(fmt.Sprintf("  %s Embed in MP3 tags, directories only (ctrl+g)\n", checkbox(m.embed)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+o)\n", checkbox(m.verbose)))
	b.WriteString("\n")

	outDir := m.settings.OutputDir
	if outDir == "" {
		outDir = "."
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output directory: %s", outDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Looking up "))
	b.WriteString(songStyle.Render(m.request.String()))
	b.WriteString("\n\n")

	if m.total > 1 {
		var percent float64
		if m.total > 0 {
			percent = float64(m.done) / float64(m.total)
		}
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Songs: %d/%d", m.done, m.total)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✓ Done!\n\n"+
			"Written:   %d\n"+
			"Not found: %d\n"+
			"Failed:    %d",
		m.summary.Written,
		m.summary.NotFound,
		m.summary.Failed,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case batch.LevelError:
			style = errorStyle
			prefix = "✗"
		case batch.LevelWarning:
			style = warningStyle
			prefix = "!"
		case batch.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case batch.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+t: format • ctrl+y: synced • ctrl+g: embed • ctrl+o: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new lookup • q: quit"
	}
	return ""
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

// runSettings returns a copy of the settings with the UI options applied.
func (m Model) runSettings() *config.Settings {
	settings := *m.settings
	settings.Format = m.format.String()
	settings.Synced = m.synced
	settings.EmbedLyrics = m.embed
	return &settings
}

// start prepares the jobs for the request and creates the manager.
func (m Model) start() tea.Cmd {
	ctx := m.ctx
	req := m.request
	settings := m.runSettings()
	events := m.events
	baseURL := m.baseURL

	return func() tea.Msg {
		var jobs []batch.Job
		switch req.Kind {
		case KindBatch:
			file, err := batchfile.ParseFile(req.Path)
			if err != nil {
				return StartedMsg{Err: err}
			}
			file.Overrides.Apply(settings)
			if err := settings.Validate(); err != nil {
				return StartedMsg{Err: err}
			}
			jobs = batch.SongJobs(file.Songs)
		case KindDir:
			var err error
			jobs, _, err = batch.DirJobs(ctx, req.Path, settings.OutputFormat(), zerolog.Nop())
			if err != nil {
				return StartedMsg{Err: err}
			}
		default:
			jobs = batch.SongJobs([]model.Song{req.Song})
		}
		if len(jobs) == 0 {
			return StartedMsg{Err: fmt.Errorf("no songs found in %s", req.Path)}
		}

		svc := service.New(settings, baseURL, zerolog.Nop())
		manager := batch.NewManager(svc.Fetcher, svc.Session, batch.Options{
			Format:      settings.OutputFormat(),
			Synced:      settings.Synced,
			Pace:        settings.Pace(),
			Concurrency: settings.Concurrency,
			OutputDir:   settings.OutputDir,
		}, zerolog.Nop(), func(event batch.ProgressEvent) {
			select {
			case events <- event:
			default:
			}
		})
		if req.Kind == KindDir && settings.EmbedLyrics {
			manager.SetEmbedder(audio.NewTagger("eng"))
		}

		return StartedMsg{Service: svc, Manager: manager, Jobs: jobs}
	}
}

// run executes the prepared jobs in the background.
func (m Model) run(jobs []batch.Job) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	manager := m.manager
	events := m.events
	single := m.request.Kind == KindSong

	return func() tea.Msg {
		defer close(events)
		defer svc.Close()

		if single {
			outcome, err := manager.Process(ctx, jobs[0])
			if errors.Is(err, musixmatch.ErrLyricsNotFound) {
				err = nil
			}
			done := DoneMsg{Summary: summarize(outcome)}
			if outcome.Status == batch.StatusFailed {
				done.Err = err
			}
			return done
		}

		report, err := manager.Run(ctx, jobs)
		return DoneMsg{Summary: report.Summary, Failures: report.Failures(), Err: err}
	}
}

func summarize(o batch.Outcome) batch.Summary {
	var s batch.Summary
	switch o.Status {
	case batch.StatusWritten:
		s.Written = 1
	case batch.StatusNotFound:
		s.NotFound = 1
	default:
		s.Failed = 1
	}
	return s
}

// Run starts the TUI application with the settings at configPath.
func Run(configPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
