package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfell/lariat/internal/session"
	"github.com/mfell/lariat/internal/ui/overlay"
	"github.com/mfell/lariat/internal/ui/styles"
)

const (
	sidebarWidth  = 26
	minDetail     = 30
	chromeHeight  = 2 // header + status bar
	minBodyHeight = 6
)

// Render draws the whole screen: header, panels, status bar, then any
// open popup and the toast stack composited on top.
func (r *Renderer) Render(s *session.State, width, height int) string {
	if width < 40 || height < minBodyHeight+chromeHeight {
		return "Terminal too small"
	}

	bodyHeight := height - chromeHeight
	listWidth := width - sidebarWidth
	detailWidth := 0
	if listWidth > 2*minDetail {
		detailWidth = listWidth * 2 / 5
		listWidth -= detailWidth
	}

	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		r.renderTeams(s, sidebarWidth, bodyHeight/2),
		r.renderProjects(s, sidebarWidth, bodyHeight-bodyHeight/2),
	)

	columns := []string{sidebar, r.renderIssues(s, listWidth, bodyHeight)}
	if detailWidth > 0 {
		columns = append(columns, r.renderDetail(s, detailWidth, bodyHeight))
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		r.renderHeader(s, width),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		r.renderStatusBar(s, width),
	)

	if s.Overlay != nil {
		view = overlay.Place(overlay.Config{
			Width:    width,
			Height:   height,
			Position: overlay.Center,
		}, r.renderOverlay(s, width), view)
	}

	if toasts := r.renderToasts(s); toasts != "" {
		view = overlay.Place(overlay.Config{
			Width:    width,
			Height:   height,
			Position: overlay.TopRight,
			PadX:     1,
			PadY:     1,
		}, toasts, view)
	}

	return view
}

func (r *Renderer) renderHeader(s *session.State, width int) string {
	left := styles.TitleStyle.Render("lariat")
	if team := teamName(s); team != "" {
		left += styles.MutedStyle.Render(" · ") + styles.IdentStyle.Render(team)
	}
	if project := projectName(s); project != "" {
		left += styles.MutedStyle.Render(" / ") + styles.IdentStyle.Render(project)
	}

	var right string
	if s.Viewer != nil {
		right = styles.MutedStyle.Render(s.Viewer.Name)
	}
	if n := s.PendingCount(); n > 0 {
		if right != "" {
			right += styles.MutedStyle.Render("  ")
		}
		right += styles.MutedStyle.Render(fmt.Sprintf("%s %d in flight", r.spinnerFrame, n))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderStatusBar(s *session.State, width int) string {
	parts := []string{}

	if s.Selection.Len() > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", s.Selection.Len()))
	}
	if s.SearchQuery != "" {
		parts = append(parts, "search: "+s.SearchQuery)
	}
	if s.FilterQuery != "" {
		parts = append(parts, "filter: "+s.FilterQuery)
	}
	if s.HideDone {
		parts = append(parts, "hiding done")
	}
	if s.GroupBy != session.GroupNone {
		parts = append(parts, "grouped by "+s.GroupBy.String())
	}

	left := styles.StatusBarStyle.Render(strings.Join(parts, "  ·  "))
	right := styles.MutedStyle.Render("? help  q quit ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func teamName(s *session.State) string {
	for _, t := range s.Teams {
		if t.ID == s.TeamID() {
			return t.Name
		}
	}
	return ""
}

func projectName(s *session.State) string {
	for _, p := range s.Projects {
		if p.ID == s.ProjectID() {
			return p.Name
		}
	}
	return ""
}

// panel wraps content in a bordered box, highlighting the border when the
// zone has focus.
func panel(title string, focused bool, width, height int, content string) string {
	style := styles.PanelStyle
	if focused {
		style = styles.PanelFocusStyle
	}

	inner := lipgloss.JoinVertical(lipgloss.Left,
		styles.PanelTitleStyle.Render(title),
		content,
	)

	return style.
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(inner)
}
