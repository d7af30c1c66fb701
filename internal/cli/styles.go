package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	brand   = lipgloss.Color("#7D56F4")
	success = lipgloss.Color("#00D26A")
	warning = lipgloss.Color("#FFB800")
	failure = lipgloss.Color("#FF3838")
	muted   = lipgloss.Color("#6B7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(brand).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brand)

	labelStyle = lipgloss.NewStyle().
			Width(26).
			Foreground(muted)

	okStyle   = lipgloss.NewStyle().Foreground(success)
	warnStyle = lipgloss.NewStyle().Foreground(warning)
	errStyle  = lipgloss.NewStyle().Foreground(failure).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(muted).Italic(true)
)

func init() {
	// Pipes and files get plain text.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func title(s string) string {
	return titleStyle.Render(s)
}

func section(s string) string {
	return sectionStyle.Render("─── " + s + " ")
}

func field(label, value string) string {
	return "  " + labelStyle.Render(label) + value
}

func ok(s string) string {
	return okStyle.Render("✓ ") + s
}

func warn(s string) string {
	return warnStyle.Render("⚠ ") + s
}

func failed(s string) string {
	return errStyle.Render("✗ ") + s
}

func dim(s string) string {
	return dimStyle.Render(s)
}
