package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// State represents the current state of the TUI
type State int

const (
	StateEditing     State = iota
	StateAnalyzing         // Review request in flight
	StateReviewing         // Navigating annotations
	StateVisualizing       // Execution trace in flight
	StateFormatting        // Format request in flight
	StateGenerating        // Generation request in flight
	StateTeaching          // Lesson streaming
)

// Box drawing characters for visual sections
const (
	boxTopLeft     = "╔"
	boxTopRight    = "╗"
	boxBottomLeft  = "╚"
	boxBottomRight = "╝"
	boxHorizontal  = "═"
	boxVertical    = "║"
)

// Styles for the TUI
type Styles struct {
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Accent  lipgloss.Style
	Dim     lipgloss.Style
	Code    lipgloss.Style
	Cursor  lipgloss.Style
}

func NewStyles() *Styles {
	return &Styles{
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // Blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // Magenta
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")), // White
		Cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	}
}

// Model is the bubbletea model for the mentor
type Model struct {
	// Core components
	textarea textarea.Model
	spinner  spinner.Model
	styles   *Styles
	theme    *Theme

	// State
	state     State
	statusMsg string
	startTime time.Time

	// Review navigation
	annotations []Annotation
	selected    int

	// Exit confirmation
	ctrlCPressed bool
	ctrlCTime    time.Time

	// Session data
	session  *MentorSession
	settings *Settings

	// For async operations
	ctx      context.Context
	cancelFn context.CancelFunc

	// Terminal size
	width  int
	height int
}

// Messages for async operations. Each done message carries the context its
// work ran under so completions from a cancelled or superseded operation can
// be dropped instead of clobbering the current one.
type analysisDoneMsg struct {
	ctx    context.Context
	result *AnalysisResult
	err    error
}

type visualizeDoneMsg struct {
	ctx context.Context
	viz *Visualization
	err error
}

type formatDoneMsg struct {
	ctx     context.Context
	code    string
	changed bool
	err     error
}

type generateDoneMsg struct {
	ctx       context.Context
	generated *GeneratedCode
	err       error
}

type lessonDoneMsg struct {
	ctx  context.Context
	text string
	err  error
}

type lessonChunkMsg struct {
	chunk string
}

type tickMsg time.Time

// NewModel creates a new bubbletea model
func NewModel(session *MentorSession, settings *Settings, theme *Theme) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste code to review, or type /help"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(100) // Will be resized on WindowSizeMsg
	ta.SetHeight(10)
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Prompt = lipgloss.NewStyle()
	ta.BlurredStyle.Prompt = lipgloss.NewStyle()
	// Code input needs real newlines; Enter only submits slash commands.
	ta.KeyMap.InsertNewline.SetEnabled(true)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Millisecond * 100,
	}

	return Model{
		textarea: ta,
		spinner:  s,
		styles:   NewStyles(),
		theme:    theme,
		state:    StateEditing,
		session:  session,
		settings: settings,
		ctx:      context.Background(),
		width:    120,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := msg.Width - 6
		if inputWidth < 40 {
			inputWidth = 40
		}
		m.textarea.SetWidth(inputWidth)
		return m, nil

	case tea.KeyMsg:
		// Reset Ctrl+C state on any other key press
		if msg.Type != tea.KeyCtrlC {
			m.ctrlCPressed = false
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			// Double Ctrl+C to quit
			if m.ctrlCPressed && time.Since(m.ctrlCTime) < 2*time.Second {
				return m, tea.Quit
			}
			m.ctrlCPressed = true
			m.ctrlCTime = time.Now()
			m.addOutput("")
			m.addOutput(m.styles.Warning.Render("Press Ctrl+C again to exit"))
			return m, nil

		case tea.KeyEsc:
			switch m.state {
			case StateEditing:
				// Nothing to cancel
			case StateReviewing:
				return m.backToEditing()
			default:
				if m.cancelFn != nil {
					m.cancelFn()
				}
				m.state = StateEditing
				m.addOutput(m.styles.Warning.Render("-- Interrupted --"))
				m.textarea.Focus()
				return m, nil
			}

		case tea.KeyCtrlA:
			// Analyze shortcut while editing
			if m.state == StateEditing {
				return m.startAnalysis()
			}

		case tea.KeyEnter:
			if m.state == StateEditing {
				value := strings.TrimSpace(m.textarea.Value())
				if strings.HasPrefix(value, "/") && !strings.Contains(value, "\n") {
					return m.handleCommand(value)
				}
			}
		}

		if m.state == StateReviewing {
			return m.handleReviewKey(msg)
		}

		if m.state == StateEditing {
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case analysisDoneMsg:
		if m.staleCompletion(msg.ctx) {
			return m, nil
		}
		if msg.err != nil {
			m.addOutput(m.styles.Error.Render("Analysis failed: " + msg.err.Error()))
			m.state = StateEditing
			m.textarea.Focus()
			return m, nil
		}
		return m.showAnalysis(msg.result)

	case visualizeDoneMsg:
		if m.staleCompletion(msg.ctx) {
			return m, nil
		}
		if msg.err != nil {
			m.addOutput(m.styles.Error.Render("Trace failed: " + msg.err.Error()))
			m.state = StateEditing
			m.textarea.Focus()
			return m, nil
		}
		m.showVisualization(msg.viz)
		m.state = StateEditing
		m.textarea.Focus()
		return m, textarea.Blink

	case formatDoneMsg:
		if m.staleCompletion(msg.ctx) {
			return m, nil
		}
		if msg.err != nil {
			m.addOutput(m.styles.Error.Render("Format failed: " + msg.err.Error()))
		} else if !msg.changed {
			m.addOutput("")
			m.addOutput(m.styles.Info.Render("Already well formatted, nothing to change."))
		} else {
			m.addOutput("")
			m.addOutput(m.styles.Success.Render("Code reformatted."))
			m.textarea.SetValue(msg.code)
		}
		m.state = StateEditing
		m.textarea.Focus()
		return m, textarea.Blink

	case generateDoneMsg:
		if m.staleCompletion(msg.ctx) {
			return m, nil
		}
		if msg.err != nil {
			m.addOutput(m.styles.Error.Render("Generation failed: " + msg.err.Error()))
			m.state = StateEditing
			m.textarea.Focus()
			return m, nil
		}
		m.addOutput("")
		m.drawBox("GENERATED CODE", 56)
		m.addOutput("```" + m.session.Language())
		for _, line := range strings.Split(msg.generated.Code, "\n") {
			m.addOutput(line)
		}
		m.addOutput("```")
		if msg.generated.Explanation != "" {
			m.addOutput("")
			m.addOutput(m.styles.Info.Render("mentor: ") + stripMarkdown(msg.generated.Explanation))
		}
		if msg.generated.Warning != "" {
			m.addOutput("")
			m.addOutput(m.styles.Warning.Render(msg.generated.Warning))
		}
		m.addOutput("")
		m.addOutput("Loaded into the editor. " + m.styles.Dim.Render("Ctrl+A to analyze, /save <file> to save."))
		m.session.LoadCode(msg.generated.Code, m.session.Language())
		m.textarea.SetValue(msg.generated.Code)
		m.state = StateEditing
		m.textarea.Focus()
		return m, textarea.Blink

	case lessonChunkMsg:
		fmt.Print(msg.chunk)
		return m, nil

	case lessonDoneMsg:
		if m.staleCompletion(msg.ctx) {
			return m, nil
		}
		if msg.err != nil {
			m.addOutput(m.styles.Error.Render("Lesson failed: " + msg.err.Error()))
		} else {
			m.addOutput("")
		}
		m.state = StateEditing
		m.textarea.Focus()
		return m, textarea.Blink

	case tickMsg:
		return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var b strings.Builder

	switch m.state {
	case StateEditing:
		b.WriteString(m.styles.Prompt.Render(">") + " " +
			m.styles.Dim.Render(fmt.Sprintf("[%s]", LanguageDisplayName(m.session.Language()))) + "\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n" + m.styles.Dim.Render("Ctrl+A analyze · Enter on /command runs it · Ctrl+C Ctrl+C quit"))

	case StateReviewing:
		b.WriteString(m.reviewView())

	case StateAnalyzing, StateVisualizing, StateFormatting, StateGenerating, StateTeaching:
		elapsed := time.Since(m.startTime).Seconds()
		b.WriteString(m.styles.Accent.Render(m.spinner.View()) + " ")
		b.WriteString(m.statusMsg + " ")
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("(esc to interrupt · %.0fs)", elapsed)))
	}

	return b.String()
}

// reviewView renders the annotation list with a movable cursor
func (m Model) reviewView() string {
	var b strings.Builder

	if len(m.annotations) == 0 {
		b.WriteString(m.styles.Success.Render("No annotations left.") + "\n")
		b.WriteString(m.styles.Dim.Render("esc to return to the editor"))
		return b.String()
	}

	b.WriteString(m.styles.Accent.Render(fmt.Sprintf("Annotations (%d)", len(m.annotations))) + "\n\n")

	for i, a := range m.annotations {
		cursor := "  "
		if i == m.selected {
			cursor = m.styles.Cursor.Render("> ")
		}

		var label string
		switch a.Kind {
		case KindError:
			label = m.styles.Error.Render("error")
		case KindWarning:
			label = m.styles.Warning.Render("warning")
		default:
			label = m.styles.Info.Render("suggestion")
		}

		b.WriteString(fmt.Sprintf("%s%s L%d: %s\n", cursor, label, a.Line, a.Message))
		if i == m.selected && a.ReplacementText != "" && a.ReplacementText != a.OriginalText {
			if a.OriginalText != "" {
				b.WriteString("      " + m.styles.Error.Render("- "+a.OriginalText) + "\n")
			}
			b.WriteString("      " + m.styles.Success.Render("+ "+a.ReplacementText) + "\n")
		}
	}

	b.WriteString("\n" + m.styles.Dim.Render("j/k move · a accept · d dismiss · esc back to editor"))
	return b.String()
}

// handleReviewKey processes keys while navigating annotations
func (m Model) handleReviewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.selected < len(m.annotations)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "a", "enter":
		if m.selected < len(m.annotations) {
			id := m.annotations[m.selected].ID
			buffer, remaining, err := m.session.Accept(id)
			if err != nil {
				m.addOutput(m.styles.Error.Render(err.Error()))
				break
			}
			m.annotations = remaining
			m.textarea.SetValue(buffer)
			m.clampSelection()
		}
	case "d", "x":
		if m.selected < len(m.annotations) {
			id := m.annotations[m.selected].ID
			remaining, err := m.session.Dismiss(id)
			if err != nil {
				m.addOutput(m.styles.Error.Render(err.Error()))
				break
			}
			m.annotations = remaining
			m.clampSelection()
		}
	case "e", "q":
		return m.backToEditing()
	}

	if len(m.annotations) == 0 {
		return m.backToEditing()
	}
	return m, nil
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.annotations) {
		m.selected = len(m.annotations) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) backToEditing() (Model, tea.Cmd) {
	if doc := m.session.Document(); doc != nil {
		m.textarea.SetValue(doc.Buffer())
	}
	m.state = StateEditing
	m.textarea.Focus()
	return m, textarea.Blink
}

// Helper methods

func (m *Model) addOutput(line string) {
	// Print directly to stdout for permanent history (scrollback)
	fmt.Println(line)
}

// drawBox creates a bordered box with a title
func (m *Model) drawBox(title string, width int) {
	innerWidth := width
	titleLen := len(title)
	if titleLen > innerWidth {
		innerWidth = titleLen + 4
	}

	totalPadding := innerWidth - titleLen
	leftPad := totalPadding / 2
	rightPad := totalPadding - leftPad

	m.addOutput(m.styles.Warning.Render(boxTopLeft + strings.Repeat(boxHorizontal, innerWidth) + boxTopRight))
	m.addOutput(m.styles.Warning.Render(boxVertical + strings.Repeat(" ", leftPad) + title + strings.Repeat(" ", rightPad) + boxVertical))
	m.addOutput(m.styles.Warning.Render(boxBottomLeft + strings.Repeat(boxHorizontal, innerWidth) + boxBottomRight))
}

// staleCompletion reports whether a done message belongs to an operation
// that has been cancelled or replaced since it started.
func (m Model) staleCompletion(ctx context.Context) bool {
	return ctx != m.ctx || ctx.Err() != nil
}

func (m Model) startAnalysis() (Model, tea.Cmd) {
	code := m.textarea.Value()
	if strings.TrimSpace(code) == "" {
		m.addOutput(m.styles.Error.Render("Nothing to analyze. Paste some code first."))
		return m, nil
	}

	m.session.LoadCode(code, m.session.Language())
	m.state = StateAnalyzing
	m.statusMsg = "Reviewing your code…"
	m.startTime = time.Now()
	m.textarea.Blur()

	ctx, cancel := context.WithCancel(context.Background())
	m.ctx = ctx
	m.cancelFn = cancel

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			result, err := m.session.Analyze(ctx)
			return analysisDoneMsg{ctx: ctx, result: result, err: err}
		},
		tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) }),
	)
}

// showAnalysis prints the review summary and enters annotation
// navigation when there is anything to act on.
func (m Model) showAnalysis(result *AnalysisResult) (Model, tea.Cmd) {
	m.addOutput("")
	m.drawBox("CODE REVIEW", 56)
	m.addOutput("")

	if !isSentinel(result.Sections.Explanation) {
		for _, line := range wrapText(stripMarkdown(result.Sections.Explanation), 76) {
			m.addOutput(line)
		}
		m.addOutput("")
	}

	m.addOutput(FormatScore(result.Score, m.theme))

	if len(result.Tests) > 0 {
		m.addOutput(FormatSuggestedTests(result.Tests, m.theme))
	}

	m.addOutput(FormatMetrics(result.Metrics, m.theme))

	if result.SubmissionID > 0 {
		m.addOutput(m.styles.Dim.Render(fmt.Sprintf("Saved to history as #%d", result.SubmissionID)))
	}

	if len(result.Annotations) == 0 {
		m.addOutput("")
		m.addOutput(m.styles.Success.Render("No issues found."))
		m.state = StateEditing
		m.textarea.Focus()
		return m, textarea.Blink
	}

	// Permanent copy of the feedback in scrollback; the review view below
	// is transient.
	m.addOutput(FormatAnnotations(result.Annotations, m.theme))

	m.annotations = result.Annotations
	m.selected = 0
	m.state = StateReviewing
	return m, nil
}

func (m *Model) showVisualization(viz *Visualization) {
	m.addOutput("")
	m.drawBox("EXECUTION TRACE", 56)
	m.addOutput("")

	for _, step := range viz.Steps {
		lineRef := fmt.Sprintf("L%d", step.StartLine)
		if step.EndLine > step.StartLine {
			lineRef = fmt.Sprintf("L%d-%d", step.StartLine, step.EndLine)
		}
		m.addOutput(fmt.Sprintf("%s %s %s",
			m.styles.Accent.Render(fmt.Sprintf("Step %d", step.Number)),
			m.styles.Dim.Render("["+lineRef+"]"),
			step.Description))
		if step.Variables != "" {
			m.addOutput("    " + m.styles.Info.Render("vars: ") + step.Variables)
		}
		if step.Action != "" {
			m.addOutput("    " + step.Action)
		}
		if step.Output != "" {
			m.addOutput("    " + m.styles.Success.Render("out:  ") + step.Output)
		}
	}

	if viz.Explanation != "" {
		m.addOutput("")
		for _, line := range wrapText(stripMarkdown(viz.Explanation), 76) {
			m.addOutput(line)
		}
	}

	if viz.FlowDiagram != "" {
		m.addOutput("")
		m.addOutput(m.styles.Dim.Render("Flow:"))
		for _, line := range strings.Split(viz.FlowDiagram, "\n") {
			m.addOutput("  " + line)
		}
	}
	m.addOutput("")
}

func (m Model) startAsync(state State, status string, work func(ctx context.Context) tea.Msg) (Model, tea.Cmd) {
	m.state = state
	m.statusMsg = status
	m.startTime = time.Now()
	m.textarea.Blur()

	ctx, cancel := context.WithCancel(context.Background())
	m.ctx = ctx
	m.cancelFn = cancel

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return work(ctx) },
		tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) }),
	)
}

func (m Model) handleCommand(input string) (Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch cmd {
	case "/quit", "/exit", "/q":
		return m, tea.Quit

	case "/help", "/h":
		m.addOutput("")
		m.addOutput("Available Commands:")
		m.addOutput("  /analyze               Review the code in the editor (or Ctrl+A)")
		m.addOutput("  /viz, /trace           Step-by-step execution trace")
		m.addOutput("  /format, /fmt          Reformat the code without changing behavior")
		m.addOutput("  /gen <request>         Generate code from a description")
		m.addOutput("  /lesson <topic>        Short lesson on a topic")
		m.addOutput("  /lang [name]           Show or set the language")
		m.addOutput("  /load <file>           Load a file into the editor")
		m.addOutput("  /save <file>           Save the editor contents")
		m.addOutput("  /history [n]           Show recent submissions")
		m.addOutput("  /tokens, /t            Show token usage")
		m.addOutput("  /theme [name]          Show or change theme")
		m.addOutput("  /clear, /c             Clear the editor")
		m.addOutput("  /quit, /q              Exit")
		m.addOutput("")
		m.textarea.Reset()

	case "/analyze", "/a":
		m.textarea.Reset()
		return m.startAnalysis()

	case "/viz", "/trace", "/visualize":
		code := currentCodeOr(m.session, m.textarea.Value())
		if strings.TrimSpace(code) == "" {
			m.addOutput(m.styles.Error.Render("Nothing to trace. Paste some code first."))
			break
		}
		m.session.LoadCode(code, m.session.Language())
		m.textarea.Reset()
		return m.startAsync(StateVisualizing, "Tracing execution…", func(ctx context.Context) tea.Msg {
			viz, err := m.session.Visualize(ctx)
			return visualizeDoneMsg{ctx: ctx, viz: viz, err: err}
		})

	case "/format", "/fmt":
		code := currentCodeOr(m.session, m.textarea.Value())
		if strings.TrimSpace(code) == "" {
			m.addOutput(m.styles.Error.Render("Nothing to format."))
			break
		}
		m.session.LoadCode(code, m.session.Language())
		m.textarea.Reset()
		return m.startAsync(StateFormatting, "Reformatting…", func(ctx context.Context) tea.Msg {
			formatted, changed, err := m.session.Format(ctx)
			return formatDoneMsg{ctx: ctx, code: formatted, changed: changed, err: err}
		})

	case "/gen", "/generate":
		if arg == "" {
			m.addOutput(m.styles.Error.Render("Usage: /gen <what to build>"))
			break
		}
		m.textarea.Reset()
		request := arg
		return m.startAsync(StateGenerating, "Generating code…", func(ctx context.Context) tea.Msg {
			generated, err := m.session.Generate(ctx, request)
			return generateDoneMsg{ctx: ctx, generated: generated, err: err}
		})

	case "/lesson", "/teach":
		if arg == "" {
			m.addOutput(m.styles.Error.Render("Usage: /lesson <topic>"))
			break
		}
		m.textarea.Reset()
		m.addOutput("")
		topic := arg
		return m.startAsync(StateTeaching, "Preparing lesson…", func(ctx context.Context) tea.Msg {
			text, err := m.session.Lesson(ctx, topic, func(chunk string) {
				fmt.Print(chunk)
			})
			return lessonDoneMsg{ctx: ctx, text: text, err: err}
		})

	case "/lang", "/language":
		if arg == "" {
			m.addOutput(fmt.Sprintf("Current language: %s", LanguageDisplayName(m.session.Language())))
			m.addOutput(fmt.Sprintf("Supported: %s", strings.Join(SupportedLanguages(), ", ")))
		} else {
			m.session.LoadCode(m.textarea.Value(), arg)
			m.addOutput(m.styles.Success.Render("Language set to " + LanguageDisplayName(arg)))
		}
		m.textarea.Reset()

	case "/load":
		if arg == "" {
			m.addOutput(m.styles.Error.Render("Usage: /load <filename>"))
			break
		}
		content, err := os.ReadFile(arg)
		if err != nil {
			m.addOutput(m.styles.Error.Render("Could not read file: " + err.Error()))
			break
		}
		m.textarea.SetValue(string(content))
		m.session.LoadCode(string(content), m.session.Language())
		m.addOutput(m.styles.Success.Render(fmt.Sprintf("Loaded %s (%d bytes)", arg, len(content))))

	case "/save", "/s":
		if arg == "" {
			m.addOutput(m.styles.Error.Render("Usage: /save <filename>"))
			break
		}
		code := currentCodeOr(m.session, m.textarea.Value())
		if strings.TrimSpace(code) == "" {
			m.addOutput(m.styles.Error.Render("Nothing to save."))
			break
		}
		if err := saveToFile(arg, code); err != nil {
			m.addOutput(m.styles.Error.Render("Error saving: " + err.Error()))
		} else {
			m.addOutput(m.styles.Success.Render("Saved to " + arg))
		}

	case "/history":
		m.showHistory(arg)
		m.textarea.Reset()

	case "/tokens", "/t":
		input, output, total := m.session.TokenUsage()
		m.addOutput("")
		m.addOutput(m.styles.Warning.Render("Token Usage:"))
		m.addOutput(fmt.Sprintf("  Input tokens:  %d", input))
		m.addOutput(fmt.Sprintf("  Output tokens: %d", output))
		m.addOutput(fmt.Sprintf("  Total tokens:  %d", total))
		m.addOutput("")
		m.textarea.Reset()

	case "/theme":
		if arg == "" {
			m.addOutput(fmt.Sprintf("Current theme: %s", m.settings.Theme.Name))
			m.addOutput(fmt.Sprintf("Available themes: %s", strings.Join(AvailableThemes(), ", ")))
			m.textarea.Reset()
			break
		}
		themeName := strings.ToLower(arg)
		if _, ok := ThemePresets[themeName]; !ok {
			m.addOutput(m.styles.Error.Render("Unknown theme: " + themeName))
			m.addOutput(fmt.Sprintf("Available themes: %s", strings.Join(AvailableThemes(), ", ")))
			m.textarea.Reset()
			break
		}
		m.settings.Theme.Name = themeName
		m.theme = NewTheme(&m.settings.Theme)
		if err := SaveSettings(m.settings); err != nil {
			m.addOutput(m.styles.Warning.Render("Could not save settings: " + err.Error()))
		} else {
			m.addOutput(m.styles.Success.Render("Theme changed to " + themeName + " (saved)"))
		}
		m.textarea.Reset()

	case "/clear", "/c":
		m.textarea.Reset()
		m.session.LoadCode("", m.session.Language())
		m.annotations = nil
		m.addOutput("Editor cleared.")

	default:
		m.addOutput(m.styles.Error.Render("Unknown command: " + cmd))
		m.addOutput("Type /help for available commands.")
		m.textarea.Reset()
	}

	return m, nil
}

// currentCodeOr prefers the session's document buffer, falling back to
// whatever is in the editor.
func currentCodeOr(session *MentorSession, editorValue string) string {
	if strings.TrimSpace(editorValue) != "" {
		return editorValue
	}
	if doc := session.Document(); doc != nil {
		return doc.Buffer()
	}
	return ""
}

func (m *Model) showHistory(arg string) {
	history := m.session.history
	if history == nil {
		m.addOutput(m.styles.Warning.Render("History is disabled."))
		return
	}

	limit := 10
	if arg != "" {
		limit = parseIntSafe(arg, 10)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	subs, err := history.Recent(ctx, limit)
	if err != nil {
		m.addOutput(m.styles.Error.Render("Could not read history: " + err.Error()))
		return
	}
	if len(subs) == 0 {
		m.addOutput("No submissions yet.")
		return
	}

	m.addOutput("")
	m.addOutput(m.styles.Warning.Render("Recent Submissions:"))
	for _, sub := range subs {
		firstLine := sub.Code
		if idx := strings.IndexByte(firstLine, '\n'); idx > 0 {
			firstLine = firstLine[:idx]
		}
		if len(firstLine) > 50 {
			firstLine = firstLine[:47] + "..."
		}
		m.addOutput(fmt.Sprintf("  #%-4d %-10s %3d%%  %s  %s",
			sub.ID, sub.Language, sub.Overall,
			sub.CreatedAt.Format("2006-01-02 15:04"),
			m.styles.Dim.Render(firstLine)))
	}
	m.addOutput("")
}

// StartTUI initializes everything and starts the bubbletea TUI
// StartTUI launches the interactive session. When initialFile is
// non-empty its contents are preloaded into the editor.
func StartTUI(initialFile string) error {
	ctx := context.Background()

	settings, err := LoadSettings()
	if err != nil {
		fmt.Print(FormatUserError(err))
		return err
	}
	cfg := LoadConfig(settings)
	theme := NewTheme(&settings.Theme)

	fmt.Printf("mentor %s\n", Version)
	fmt.Println("AI code review with inline, acceptable fixes")
	fmt.Println()
	PrintUpdateNotice()

	providerType := ParseProviderType(cfg.Provider)
	fmt.Printf("Connecting to %s...\n", providerDisplayName(providerType))
	provider, err := NewProvider(ctx, &ProviderConfig{
		Provider: providerType,
		APIKey:   apiKeyFromEnv(providerType),
		Models:   settings.Models,
	})
	if err != nil {
		fmt.Print(FormatUserError(err))
		return err
	}
	fmt.Printf("Provider: %s\n", provider.Name())
	fmt.Printf("Analyze model: %s\n", shortModelName(resolveDisplayModel(provider, cfg.AnalyzeModel)))
	fmt.Printf("Generate model: %s\n", shortModelName(resolveDisplayModel(provider, cfg.GenerateModel)))
	fmt.Println()

	var history *HistoryStore
	if cfg.HistoryEnabled {
		path := cfg.HistoryPath
		if path == "" {
			path, err = HistoryDBPath(settings)
			if err != nil {
				path = ""
			}
		}
		if path != "" {
			history, err = OpenHistory(path)
			if err != nil {
				fmt.Printf("Warning: history disabled: %v\n", err)
				history = nil
			} else {
				defer func() { _ = history.Close() }()
			}
		}
	}

	fmt.Println("Type /help for commands, /quit to exit")
	fmt.Println("Press Esc to interrupt during processing")
	fmt.Println()

	session := NewMentorSession(provider, cfg, theme, history)
	m := NewModel(session, settings, theme)

	if initialFile != "" {
		content, err := os.ReadFile(initialFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", initialFile, err)
		}
		lang := LanguageForFile(initialFile)
		session.LoadCode(string(content), lang)
		m.textarea.SetValue(string(content))
		fmt.Printf("Loaded %s (%d bytes, %s)\n", initialFile, len(content), LanguageDisplayName(lang))
		fmt.Println()
	}

	// Don't use WithAltScreen() - keeps normal terminal scrollback history
	p := tea.NewProgram(m)

	_, err = p.Run()
	return err
}

func resolveDisplayModel(provider LLMProvider, configured string) string {
	if IsCanonicalModel(configured) {
		return provider.MapModel(configured)
	}
	return configured
}

// apiKeyFromEnv picks the right API key env var for a provider.
func apiKeyFromEnv(p ProviderType) string {
	switch p {
	case ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		return ""
	}
}

// providerDisplayName returns a human-readable name for the provider
func providerDisplayName(p ProviderType) string {
	switch p {
	case ProviderBedrock:
		return "AWS Bedrock"
	case ProviderAnthropic:
		return "Anthropic API"
	case ProviderOpenAI:
		return "OpenAI API"
	case ProviderGemini:
		return "Google Gemini API"
	default:
		return string(p)
	}
}
