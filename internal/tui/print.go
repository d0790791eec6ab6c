package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spotdemo4/quick-predict/internal/screen"
)

var (
	ErrTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"})
	WarnTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"})
)

func Print(msg string, ext ...any) {
	fmt.Println(TextStyle.Render(fmt.Sprintf(msg, ext...)))
}

func PrintErr(msg string, ext ...any) {
	fmt.Println(ErrTextStyle.Render(fmt.Sprintf(msg, ext...)))
}

func PrintWarn(msg string, ext ...any) {
	fmt.Println(WarnTextStyle.Render(fmt.Sprintf(msg, ext...)))
}

// FormatState renders a settled state outside of the screen
func FormatState(state screen.State) string {
	if prediction, ok := state.Prediction(); ok {
		return AccentTextStyle.Bold(true).Render("Prediction: " + prediction)
	}

	if message, ok := state.Message(); ok {
		return ErrTextStyle.Render("Error: " + message)
	}

	return SubtextStyle.Render(state.String())
}
