// Package tui provides a Bubble Tea terminal user interface for
// weread-exporter.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zhaoyun/weread-exporter/internal/batch"
	"github.com/zhaoyun/weread-exporter/internal/config"
	"github.com/zhaoyun/weread-exporter/internal/export"
	ioutils "github.com/zhaoyun/weread-exporter/internal/io"
	"github.com/zhaoyun/weread-exporter/internal/weread"
	"github.com/zhaoyun/weread-exporter/internal/weread/dto"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4A90D9")).
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

	bookStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A90D9")).
			Bold(true)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoadingShelf
	StateSelect
	StateExporting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   batch.ProgressLevel
}

// bookChoice is one selectable shelf entry.
type bookChoice struct {
	entry    dto.NotebookEntry
	selected bool
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

	// Shelf selection
	choices []bookChoice
	cursor  int

	// Export context
	ctx    context.Context
	cancel context.CancelFunc

	// Batch manager reference
	manager *batch.Manager
	events  chan batch.ProgressEvent

	// Export progress
	done   int
	total  int
	result *batch.Result

	// Options
	format    export.Format
	clipboard bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "user vid (from the weread.qq.com URL)"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	if settings.UserVid != "" {
		ti.SetValue(settings.UserVid)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A90D9"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	format, err := export.ParseFormat(settings.Format)
	if err != nil {
		format = export.FormatMarkdown
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		format:    format,
		clipboard: settings.CopyToClipboard,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ShelfLoadedMsg is sent when the notebook listing completes.
	ShelfLoadedMsg struct {
		Entries []dto.NotebookEntry
		Err     error
	}

	// ExportDoneMsg is sent when the batch completes.
	ExportDoneMsg struct {
		Result *batch.Result
		Err    error
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
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ShelfLoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.choices = make([]bookChoice, len(msg.Entries))
			for i, entry := range msg.Entries {
				m.choices[i] = bookChoice{entry: entry, selected: true}
			}
			m.cursor = 0
			m.state = StateSelect
		}

	case ExportDoneMsg:
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.result = msg.Result
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateExporting {
			m.drainEvents()
			p := m.manager.Progress()
			m.done = p.Done
			m.total = p.Total

			var percent float64
			if p.Total > 0 {
				percent = float64(p.Done) / float64(p.Total)
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

// handleKey processes key presses per state. The bool result reports
// whether the key was consumed.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit, true

	case "esc":
		if m.state == StateInput {
			return m, tea.Quit, true
		}
		if m.state == StateExporting || m.state == StateLoadingShelf {
			m.cancel()
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
			return m, nil, true
		}
		return m, nil, true

	case "enter":
		if m.state == StateInput && m.textInput.Value() != "" {
			m.settings.UserVid = strings.TrimSpace(m.textInput.Value())
			m.state = StateLoadingShelf
			return m, tea.Batch(m.loadShelf(), m.spinner.Tick), true
		}
		if m.state == StateSelect {
			ids := m.selectedIDs()
			if len(ids) == 0 {
				return m, nil, true
			}
			m.state = StateExporting
			return m, tea.Batch(m.startExport(ids), m.tickProgress(), m.spinner.Tick), true
		}
		return m, nil, false

	case "up", "k":
		if m.state == StateSelect && m.cursor > 0 {
			m.cursor--
			return m, nil, true
		}
		return m, nil, false

	case "down", "j":
		if m.state == StateSelect && m.cursor < len(m.choices)-1 {
			m.cursor++
			return m, nil, true
		}
		return m, nil, false

	case " ":
		if m.state == StateSelect && len(m.choices) > 0 {
			m.choices[m.cursor].selected = !m.choices[m.cursor].selected
			return m, nil, true
		}
		return m, nil, false

	case "a":
		if m.state == StateSelect {
			all := true
			for _, c := range m.choices {
				if !c.selected {
					all = false
					break
				}
			}
			for i := range m.choices {
				m.choices[i].selected = !all
			}
			return m, nil, true
		}
		return m, nil, false

	case "f":
		if m.state == StateSelect {
			switch m.format {
			case export.FormatMarkdown:
				m.format = export.FormatJSON
			case export.FormatJSON:
				m.format = export.FormatCSV
			default:
				m.format = export.FormatMarkdown
			}
			return m, nil, true
		}
		return m, nil, false

	case "c":
		if m.state == StateSelect {
			m.clipboard = !m.clipboard
			return m, nil, true
		}
		return m, nil, false

	case "v":
		if m.state == StateSelect {
			m.verbose = !m.verbose
			return m, nil, true
		}
		return m, nil, false

	case "q":
		if m.state == StateComplete || m.state == StateError {
			return m, tea.Quit, true
		}
		return m, nil, false

	case "r":
		if m.state == StateComplete || m.state == StateError {
			// Reset for a new export
			m.state = StateInput
			m.logs = nil
			m.choices = nil
			m.err = nil
			m.result = nil
			m.manager = nil
			m.done = 0
			m.total = 0
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.textInput.Focus()
			return m, nil, true
		}
		return m, nil, false
	}

	return m, nil, false
}

// drainEvents pulls queued progress events into the log tail.
func (m *Model) drainEvents() {
	for {
		select {
		case event := <-m.events:
			if event.Level == batch.LevelVerbose && !m.verbose {
				continue
			}
			m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		default:
			return
		}
	}
}

// selectedIDs collects the checked book ids.
func (m Model) selectedIDs() []string {
	var ids []string
	for _, c := range m.choices {
		if c.selected {
			ids = append(ids, c.entry.BookID)
		}
	}
	return ids
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// newClient builds the API client from the current settings.
func (m Model) newClient() *weread.Client {
	client := weread.NewClient()
	if m.settings.BaseURL != "" {
		client = weread.NewClientWithBaseURL(m.settings.BaseURL)
	}
	if m.settings.Cookie != "" {
		client.SetCookie(m.settings.Cookie)
	}
	return client
}

// loadShelf fetches the annotated-book listing.
func (m *Model) loadShelf() tea.Cmd {
	ctx := m.ctx
	client := m.newClient()
	return func() tea.Msg {
		entries, err := client.ListNotebooks(ctx)
		return ShelfLoadedMsg{Entries: entries, Err: err}
	}
}

// startExport runs the batch in the background.
func (m *Model) startExport(ids []string) tea.Cmd {
	events := make(chan batch.ProgressEvent, 256)
	manager := batch.NewManager(m.settings, weread.NewExporter(m.newClient()), func(event batch.ProgressEvent) {
		select {
		case events <- event:
		default:
			// Drop rather than block the export on a slow UI.
		}
	})
	m.manager = manager
	m.events = events

	ctx := m.ctx
	settings := m.settings
	format := m.format
	clipboard := m.clipboard

	return func() tea.Msg {
		result, err := manager.RunBatch(ctx, ids)
		if err == nil && len(result.Succeeded) > 0 {
			err = writeCombined(ctx, settings, result, format, clipboard)
		}
		return ExportDoneMsg{Result: result, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📚 WeRead Exporter"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Export reading notes from WeRead"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateLoadingShelf:
		b.WriteString(m.viewLoadingShelf())
	case StateSelect:
		b.WriteString(m.viewSelect())
	case StateExporting:
		b.WriteString(m.viewExporting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter your WeRead user vid:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", m.settings.OutputDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoadingShelf() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching annotated books..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSelect() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Select books to export (%d selected):", len(m.selectedIDs()))))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("❯ ")
		}
		check := "[ ]"
		if choice.selected {
			check = "[×]"
		}

		title := choice.entry.Book.Title
		if title == "" {
			title = choice.entry.BookID
		}
		line := fmt.Sprintf("%s%s %s", cursor, check, bookStyle.Render(title))
		if choice.entry.NoteCount > 0 {
			line += dimStyle.Render(fmt.Sprintf(" (%d notes)", choice.entry.NoteCount))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	clipboardCheck := "[ ]"
	if m.clipboard {
		clipboardCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Format: %s (f)\n", m.format))
	b.WriteString(fmt.Sprintf("  %s Copy to clipboard (c)\n", clipboardCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))

	return b.String()
}

func (m Model) viewExporting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Exporting..."))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Books: %d/%d", m.done, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	succeeded := 0
	failed := 0
	notes := 0
	if m.result != nil {
		succeeded = len(m.result.Succeeded)
		failed = len(m.result.PermanentlyFailed)
		for _, book := range m.result.Succeeded {
			notes += len(book.Notes)
		}
	}

	var b strings.Builder
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Export Complete!\n\n"+
			"Books: %d\n"+
			"Notes: %d\n"+
			"Failed: %d",
		succeeded,
		notes,
		failed,
	))
	b.WriteString(box)

	if m.result != nil && failed > 0 {
		b.WriteString("\n\n")
		b.WriteString(warningStyle.Render("Failed book ids:"))
		b.WriteString("\n")
		for _, id := range m.result.PermanentlyFailed {
			b.WriteString(fmt.Sprintf("  %s\n", id))
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

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

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: load shelf • esc: quit"
	case StateLoadingShelf, StateExporting:
		return "esc: cancel"
	case StateSelect:
		return "space: toggle • a: all/none • f: format • c: clipboard • enter: export • esc: quit"
	case StateComplete, StateError:
		return "r: new export • q: quit"
	}
	return ""
}

// writeCombined hands the combined export to the chosen sink.
func writeCombined(ctx context.Context, settings *config.Settings, result *batch.Result, format export.Format, toClipboard bool) error {
	file, err := export.BuildCombinedExport(result.Succeeded, format)
	if err != nil {
		return err
	}

	if toClipboard {
		return ioutils.WriteClipboard(file.Content)
	}

	if err := ioutils.EnsureDir(settings.OutputDir); err != nil {
		return err
	}
	return ioutils.WriteFile(ctx, filepath.Join(settings.OutputDir, file.Name), []byte(file.Content))
}

// Run starts the TUI application.
func Run() error {
	settings := config.DefaultSettings()
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
