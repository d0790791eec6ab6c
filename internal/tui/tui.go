package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spotdemo4/quick-predict/internal/screen"
)

var (
	BodyStyle   = lipgloss.NewStyle().Padding(1)
	FooterStyle = lipgloss.NewStyle().Align(lipgloss.Center)

	TextStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"})
	SubtextStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"})
	AltTextStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5c5f77", Dark: "#bac2de"})
	AccentTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04a5e5", Dark: "#89dceb"})

	ButtonStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1).
			Background(lipgloss.AdaptiveColor{Light: "#ccd0da", Dark: "#313244"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#6c7086"})
	AccentButtonStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1).
				Background(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}).
				Foreground(lipgloss.AdaptiveColor{Light: "#dce0e8", Dark: "#11111b"})
)

const placeholder = "Write some text..."

type Tui struct {
	ctx        context.Context
	controller *screen.Controller

	input     textinput.Model
	spinner   spinner.Model
	stopwatch stopwatch.Model
	width     *int
	height    *int

	version  string
	endpoint string
}

func New(ctx context.Context, version string, endpoint string, controller *screen.Controller) Tui {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = AccentTextStyle
	sw := stopwatch.New()

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Prompt = "> "
	ti.SetValue(controller.InputText())
	ti.Focus()

	return Tui{
		ctx:        ctx,
		controller: controller,

		input:     ti,
		spinner:   s,
		stopwatch: sw,

		version:  version,
		endpoint: endpoint,
	}
}

func (m Tui) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.stopwatch.Init(),
		textinput.Blink,
	)
}

func (m Tui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	cmds := []tea.Cmd{}

	switch msg := msg.(type) {

	case screen.ResolvedMsg:
		if m.controller.Resolve(msg) {
			cmds = append(cmds, m.stopwatch.Stop())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "enter":
			// Trigger is disabled while empty or loading
			if !m.controller.CanSubmit() {
				return m, nil
			}

			cmds = append(cmds, m.controller.Submit(m.ctx))
			cmds = append(cmds, m.stopwatch.Reset())
			cmds = append(cmds, m.stopwatch.Start())

			return m, tea.Batch(cmds...)

		default:
			m.input, cmd = m.input.Update(msg)
			m.controller.SetInputText(m.input.Value())
			cmds = append(cmds, cmd)

			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		m.width = &msg.Width
		m.height = &msg.Height
		m.input.Width = max(msg.Width-8, 10)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.stopwatch, cmd = m.stopwatch.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Tui) View() string {
	body := m.input.View() + "\n\n" + m.button() + "\n\n"
	footer := AltTextStyle.Render(fmt.Sprintf("quick predict v%s", m.version)) + " " + SubtextStyle.Render(m.endpoint)

	state := m.controller.State()
	switch state.Kind() {

	case screen.KindLoading:
		body += m.spinner.View()
		footer += "\n" + SubtextStyle.Render(fmt.Sprintf("%s elapsed", m.stopwatch.View()))

	case screen.KindSucceeded:
		prediction, _ := state.Prediction()
		body += AccentTextStyle.Bold(true).Render("Prediction: " + prediction)
		footer += "\n" + SubtextStyle.Render(fmt.Sprintf("took %s", m.stopwatch.View()))

	case screen.KindFailed:
		message, _ := state.Message()
		body += ErrTextStyle.Render("Error: " + message)
		footer += "\n" + SubtextStyle.Render(fmt.Sprintf("took %s", m.stopwatch.View()))
	}

	return m.render(renderParams{
		body:   body,
		footer: footer,
		center: true,
	})
}

func (m Tui) button() string {
	if m.controller.CanSubmit() {
		return AccentButtonStyle.Render("Predict")
	}

	return ButtonStyle.Render("Predict")
}

type renderParams struct {
	body   string
	footer string
	center bool
}

func (m Tui) render(p renderParams) string {
	if m.width == nil || m.height == nil {
		return ""
	}

	footerStyle := FooterStyle.Width(*m.width)
	footer := footerStyle.Render(p.footer)

	bodyStyle := BodyStyle.Width(*m.width).Height(max(*m.height-lipgloss.Height(footer), 0))
	if p.center {
		bodyStyle = bodyStyle.Align(lipgloss.Center, lipgloss.Center)
	}

	return lipgloss.JoinVertical(lipgloss.Top, bodyStyle.Render(p.body), footer)
}
