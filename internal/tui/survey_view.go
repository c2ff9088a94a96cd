package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#0d9f9f")).
			Background(surfaceColor).
			Padding(1, 3).
			Width(60)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	modalURLStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a0e0")).
			Underline(true)
)

// surveyView renders the survey dialog centered in the body area.
func (a App) surveyView() string {
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("📝 Help us improve") + "\n\n")
	sb.WriteString(normalStyle.Render("We'd love to hear about your experience. The survey takes about two minutes.") + "\n\n")

	switch {
	case a.survey.status != "" && a.survey.isErr:
		sb.WriteString(errorStyle.Render(a.survey.status) + "\n")
		sb.WriteString(modalURLStyle.Render(a.modal.URL()) + "\n\n")
	case a.survey.status != "":
		sb.WriteString(accentStyle.Render(a.survey.status) + "\n\n")
	case a.survey.launching:
		sb.WriteString(dimStyle.Render("Opening survey...") + "\n\n")
	}

	launch := badgeStyle.Render("enter") + " " + selectedStyle.Render("Take survey")
	copyLabel := "Copy link"
	if a.survey.copied {
		copyLabel = "Copied!"
	}
	copyBtn := helpKeyStyle.Render("c") + " " + normalStyle.Render(copyLabel)
	later := helpKeyStyle.Render("l") + " " + dimStyle.Render("Remind me later")
	sb.WriteString(launch + "    " + copyBtn + "    " + later)

	box := modalStyle.Render(sb.String())
	pad := (a.width - lipgloss.Width(box)) / 2
	if pad <= 0 {
		return "\n" + box
	}
	indent := strings.Repeat(" ", pad)
	lines := strings.Split(box, "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return "\n" + strings.Join(lines, "\n")
}
