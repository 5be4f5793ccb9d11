package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfell/lariat/internal/session"
	"github.com/mfell/lariat/internal/ui/styles"
)

const toastWidth = 36

// renderToasts draws the notification stack, oldest on top. The caller
// composites it at the top-right corner.
func (r *Renderer) renderToasts(s *session.State) string {
	visible := s.Notifications.Visible()
	if len(visible) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(visible))
	for _, item := range visible {
		rendered = append(rendered, r.renderToast(s, item))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (r *Renderer) renderToast(s *session.State, item session.Notification) string {
	var icon string
	var border lipgloss.AdaptiveColor

	switch item.Kind {
	case session.NotifySuccess:
		icon = "✅"
		border = styles.ToastSuccessColor
	case session.NotifyError:
		icon = "❌"
		border = styles.ToastErrorColor
	case session.NotifyLoading:
		icon = r.spinnerFrame
		border = styles.ToastLoadingColor
	default:
		icon = "ℹ"
		border = styles.ToastInfoColor
	}

	body := icon + " " + item.Message
	if left := s.Notifications.Remaining(item); left > 0 {
		secs := int(left.Seconds()) + 1
		body += styles.MutedStyle.Render(fmt.Sprintf(" (%ds)", secs))
	}
	if item.Kind == session.NotifyError {
		body += styles.MutedStyle.Render("  x dismiss")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(toastWidth).
		Render(body)
}
