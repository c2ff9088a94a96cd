package notify

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/naveenspark/nudge/pkg/domain"
)

var (
	kindIcons = map[domain.Kind]string{
		domain.KindSuccess: "✔",
		domain.KindWarning: "▲",
		domain.KindError:   "✖",
		domain.KindInfo:    "ℹ",
	}

	kindColors = map[domain.Kind]lipgloss.Color{
		domain.KindSuccess: lipgloss.Color("#4ade80"),
		domain.KindWarning: lipgloss.Color("#f59e0b"),
		domain.KindError:   lipgloss.Color("#e06060"),
		domain.KindInfo:    lipgloss.Color("#60a0e0"),
	}

	toastTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	toastMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0c4d0"))

	toastHintKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8890a0"))

	toastHintLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#505868"))

	toastSurface = lipgloss.Color("#111118")
	toastFocus   = lipgloss.Color("#e4e4ec")
)

// KindIcon returns the glyph shown for kind.
func KindIcon(k domain.Kind) string {
	if icon, ok := kindIcons[k]; ok {
		return icon
	}
	return kindIcons[domain.KindInfo]
}

// View renders the toast stack, oldest first. focused marks the card whose
// close and action keys are live; uuid.Nil focuses nothing.
func (r *Renderer) View(width int, focused uuid.UUID) string {
	items := r.store.List()
	if len(items) == 0 {
		return ""
	}
	cardWidth := min(48, width-2)
	if cardWidth < 24 {
		cardWidth = 24
	}

	cards := make([]string, 0, len(items))
	for _, n := range items {
		cards = append(cards, renderToast(n, cardWidth, n.ID == focused))
	}
	return strings.Join(cards, "\n")
}

func renderToast(n domain.Notification, width int, focused bool) string {
	color, ok := kindColors[n.Kind]
	if !ok {
		color = kindColors[domain.KindInfo]
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color).
		Background(toastSurface).
		Padding(0, 1).
		Width(width)
	if focused {
		border = border.Border(lipgloss.ThickBorder(), false, true, false, true).
			BorderRightForeground(toastFocus)
	}

	icon := lipgloss.NewStyle().Foreground(color).Render(KindIcon(n.Kind))

	var sb strings.Builder
	sb.WriteString(icon + " " + toastTitleStyle.Render(n.Title) + "\n")
	if n.Message != "" {
		sb.WriteString(toastMessageStyle.Width(width-2).Render(n.Message) + "\n")
	}
	if focused {
		if n.HasAction() {
			sb.WriteString(toastHintKeyStyle.Render("enter") + " " + toastHintLabelStyle.Render(n.Action.Label) + "  ")
		}
		sb.WriteString(toastHintKeyStyle.Render("x") + " " + toastHintLabelStyle.Render("dismiss"))
	} else if n.HasAction() {
		sb.WriteString(toastHintLabelStyle.Render("[" + n.Action.Label + "]"))
	}

	return border.Render(strings.TrimRight(sb.String(), "\n"))
}
