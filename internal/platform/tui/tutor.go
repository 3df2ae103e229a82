package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-balance/internal/tutor"
)

const askTimeout = 90 * time.Second

var (
	tutorHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tutorUserStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	tutorModelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	tutorErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	tutorHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// tutorReplyMsg carries the outcome of a question sent off the UI goroutine.
type tutorReplyMsg struct {
	reply string
	err   error
}

// TutorModel is a chat view over a tutor session.
type TutorModel struct {
	session   *tutor.Session
	input     textinput.Model
	viewport  viewport.Model
	width     int
	height    int
	waiting   bool
	quitting  bool
	goingBack bool
}

// NewTutorModel creates a chat view. A nil client shows the
// not-configured message and disables input.
func NewTutorModel(client tutor.Client, width, height int) TutorModel {
	ti := textinput.New()
	ti.Placeholder = "Why do I steer into the lean?"
	ti.CharLimit = 500
	ti.Prompt = "> "
	ti.Focus()

	m := TutorModel{
		session:  tutor.NewSession(client),
		input:    ti,
		viewport: viewport.New(width, 1),
	}
	m.resize(width, height)
	return m
}

func (m *TutorModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-4, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-4, 1) // header, blank, input, hint
	m.refresh()
}

// refresh re-renders the log into the viewport and scrolls to the end.
func (m *TutorModel) refresh() {
	wrap := lipgloss.NewStyle().Width(max(m.width-2, 10))

	var b strings.Builder
	for _, msg := range m.session.Messages() {
		var line string
		switch {
		case msg.Role == tutor.RoleUser:
			line = tutorUserStyle.Render("You: " + msg.Text)
		case msg.IsError:
			line = tutorErrorStyle.Render("Tutor: " + msg.Text)
		default:
			line = tutorModelStyle.Render("Tutor: " + msg.Text)
		}
		b.WriteString(wrap.Render(line))
		b.WriteString("\n\n")
	}
	if m.waiting {
		b.WriteString(tutorHintStyle.Render("Tutor is thinking..."))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// ask sends text on a command goroutine.
func ask(client tutor.Client, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		reply, err := client.SendMessage(ctx, text)
		return tutorReplyMsg{reply: reply, err: err}
	}
}

// Init starts the cursor blinking.
func (m TutorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the chat.
func (m TutorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.goingBack = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tutorReplyMsg:
		m.waiting = false
		m.session.AddReply(msg.reply, msg.err)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TutorModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting || !m.session.Ready() {
		return m, nil
	}
	m.input.SetValue("")
	m.session.AddQuestion(text)
	m.waiting = true
	m.refresh()
	return m, ask(m.session.Client(), text)
}

// View renders the chat.
func (m TutorModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(tutorHeaderStyle.Render("Physics tutor"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(tutorHintStyle.Render("Enter: Send  |  PgUp/PgDn: Scroll  |  Esc: Back"))
	return b.String()
}

// Messages returns the chat log.
func (m TutorModel) Messages() []tutor.Message {
	return m.session.Messages()
}

// Waiting reports whether a question is in flight.
func (m TutorModel) Waiting() bool {
	return m.waiting
}

// IsGoingBack returns true if user wants to go back to menu.
func (m TutorModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m TutorModel) IsQuitting() bool {
	return m.quitting
}

// RunTutor runs the chat screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunTutor(client tutor.Client, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewTutorModel(client, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(TutorModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
