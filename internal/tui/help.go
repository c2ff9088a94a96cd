package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpItem struct {
	key   string
	label string
	url   string
}

var helpItems = []helpItem{
	{key: "tab j/k", label: "Move focus between notifications"},
	{key: "x", label: "Dismiss the focused notification"},
	{key: "enter", label: "Run the focused notification's action"},
	{key: "s", label: "Open the satisfaction survey"},
	{key: "d", label: "Show one notification of each kind"},
	{key: "q", label: "Quit"},
	{key: "↗", label: "Project page", url: "https://github.com/naveenspark/nudge"},
	{key: "↗", label: "Report an issue", url: "https://github.com/naveenspark/nudge/issues"},
}

var helpBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(borderColor).
	Padding(0, 2)

// helpView renders the help overlay with cursor on the selected row.
func helpView(cursor int) string {
	var sb strings.Builder
	sb.WriteString(sectionHeaderStyle.Render("KEYS") + "\n\n")
	for i, item := range helpItems {
		k := helpKeyStyle.Width(9).Render(item.key)
		label := normalStyle.Render(item.label)
		if item.url != "" {
			label = brandStyle.Render(item.label) + " " + metaStyle.Render(item.url)
		}
		prefix := "  "
		if i == cursor {
			prefix = accentStyle.Render("▸ ")
			if item.url == "" {
				label = selectedStyle.Render(item.label)
			}
		}
		sb.WriteString(prefix + k + label + "\n")
	}
	return "\n" + helpBoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
