package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/mfell/lariat/internal/linear"
	"github.com/mfell/lariat/internal/session"
	"github.com/mfell/lariat/internal/ui/styles"
)

func (r *Renderer) renderTeams(s *session.State, width, height int) string {
	rows := make([]string, 0, len(s.Teams))
	for i, team := range s.Teams {
		label := fmt.Sprintf("%s  %s", team.Key, team.Name)
		rows = append(rows, listRow(label, i == s.TeamIndex, team.ID == s.TeamID(), width-4))
	}
	if len(rows) == 0 {
		rows = append(rows, styles.MutedStyle.Render(" no teams"))
	}
	return panel("Teams", s.Focus == session.ZoneTeams, width, height,
		clipRows(rows, height-3))
}

func (r *Renderer) renderProjects(s *session.State, width, height int) string {
	rows := []string{listRow("All issues", s.ProjectIndex == 0, s.ProjectID() == "", width-4)}
	for i, project := range s.Projects {
		rows = append(rows, listRow(project.Name, s.ProjectIndex == i+1, project.ID == s.ProjectID(), width-4))
	}
	return panel("Projects", s.Focus == session.ZoneProjects, width, height,
		clipRows(rows, height-3))
}

func (r *Renderer) renderIssues(s *session.State, width, height int) string {
	visible := s.VisibleIssues()
	title := fmt.Sprintf("Issues (%d)", len(visible))

	var rows []string
	var lastGroup string
	cursorRow := -1
	for i, issue := range visible {
		if group := groupLabel(s.GroupBy, issue); group != "" && group != lastGroup {
			rows = append(rows, styles.GroupHeaderStyle.Render(group))
			lastGroup = group
		}
		if i == s.Cursor {
			cursorRow = len(rows)
		}
		rows = append(rows, r.issueRow(s, issue, i == s.Cursor, width-4))
	}
	if len(rows) == 0 {
		rows = append(rows, styles.MutedStyle.Render(" no issues"))
	}

	return panel(title, s.Focus == session.ZoneIssues, width, height,
		clipAroundCursor(rows, cursorRow, height-3))
}

func (r *Renderer) issueRow(s *session.State, issue linear.Issue, current bool, width int) string {
	marker := "  "
	if s.Selection.Has(issue.ID) {
		marker = styles.SelectedMarkStyle.Render("✓ ")
	}
	cursor := "  "
	if current {
		cursor = styles.CursorRowStyle.Render("> ")
	}

	prio := lipgloss.NewStyle().Foreground(styles.PriorityColor(issue.Priority)).
		Render(priorityGlyph(issue.Priority))
	state := lipgloss.NewStyle().Foreground(styles.StateColor(issue.State.Type)).
		Render("●")
	ident := styles.IdentStyle.Render(runewidth.FillRight(issue.Identifier, 8))

	title := issue.Title
	if current {
		title = styles.CursorRowStyle.Render(title)
	}

	row := cursor + marker + state + " " + prio + " " + ident + " " + title
	return ansi.Truncate(row, width, "…")
}

func (r *Renderer) renderDetail(s *session.State, width, height int) string {
	issue := s.CurrentIssue()
	if issue == nil {
		return panel("Detail", s.Focus == session.ZoneDetail, width, height,
			styles.MutedStyle.Render(" select an issue"))
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(issue.Title) + "\n")
	b.WriteString(styles.IdentStyle.Render(issue.Identifier) + "  ")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.StateColor(issue.State.Type)).
		Render(issue.State.Name) + "  ")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.PriorityColor(issue.Priority)).
		Render(issue.PriorityLabel()) + "\n")

	if issue.Assignee != nil {
		name := issue.Assignee.DisplayName
		if name == "" {
			name = issue.Assignee.Name
		}
		b.WriteString(styles.MutedStyle.Render("assignee ") + name + "\n")
	}
	if issue.Project != nil {
		b.WriteString(styles.MutedStyle.Render("project  ") + issue.Project.Name + "\n")
	}
	if len(issue.Labels.Nodes) > 0 {
		names := make([]string, 0, len(issue.Labels.Nodes))
		for _, l := range issue.Labels.Nodes {
			names = append(names, l.Name)
		}
		b.WriteString(styles.MutedStyle.Render("labels   ") + strings.Join(names, ", ") + "\n")
	}

	if issue.Description != "" {
		b.WriteString(r.renderMarkdown(issue.Description, width-6))
	}

	b.WriteString("\n" + r.renderComments(s, issue.ID, width-6))

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if s.DetailScroll > 0 && s.DetailScroll < len(lines) {
		lines = lines[s.DetailScroll:]
	}

	return panel("Detail", s.Focus == session.ZoneDetail, width, height,
		clipRows(lines, height-3))
}

func (r *Renderer) renderComments(s *session.State, issueID string, width int) string {
	comments, state := s.Comments.Get(issueID)

	var b strings.Builder
	header := fmt.Sprintf("Comments (%d)", len(comments))
	switch state {
	case session.CommentsLoading:
		header += "  " + r.spinnerFrame
	case session.CommentsStale:
		header += styles.MutedStyle.Render("  refreshing…")
	}
	b.WriteString(styles.PanelTitleStyle.Render(header) + "\n")

	if state == session.CommentsAbsent {
		b.WriteString(styles.MutedStyle.Render(" not loaded"))
		return b.String()
	}
	if len(comments) == 0 && state != session.CommentsLoading {
		b.WriteString(styles.MutedStyle.Render(" no comments"))
		return b.String()
	}

	for _, comment := range comments {
		author := "unknown"
		if comment.User != nil {
			if comment.User.DisplayName != "" {
				author = comment.User.DisplayName
			} else {
				author = comment.User.Name
			}
		}
		when := ""
		if !comment.CreatedAt.IsZero() {
			when = "  " + comment.CreatedAt.Format("2006-01-02 15:04")
		}
		b.WriteString(styles.IdentStyle.Render(author) + styles.MutedStyle.Render(when) + "\n")
		b.WriteString(r.renderMarkdown(comment.Body, width))
	}
	return b.String()
}

func groupLabel(g session.GroupBy, issue linear.Issue) string {
	switch g {
	case session.GroupStatus:
		return issue.State.Name
	case session.GroupPriority:
		return issue.PriorityLabel()
	case session.GroupProject:
		if issue.Project == nil {
			return "No project"
		}
		return issue.Project.Name
	default:
		return ""
	}
}

func priorityGlyph(priority int) string {
	switch priority {
	case linear.PriorityUrgent:
		return "!!"
	case linear.PriorityHigh:
		return "▲"
	case linear.PriorityMedium:
		return "■"
	case linear.PriorityLow:
		return "▽"
	default:
		return "·"
	}
}

func listRow(label string, cursor, active bool, width int) string {
	prefix := "  "
	switch {
	case cursor:
		prefix = styles.CursorRowStyle.Render("> ")
	case active:
		prefix = styles.SelectedMarkStyle.Render("* ")
	}
	if cursor {
		label = styles.CursorRowStyle.Render(label)
	}
	return ansi.Truncate(prefix+label, width, "…")
}

// clipRows keeps the first max rows.
func clipRows(rows []string, max int) string {
	if max > 0 && len(rows) > max {
		rows = rows[:max]
	}
	return strings.Join(rows, "\n")
}

// clipAroundCursor keeps a max-row window that always contains the cursor.
func clipAroundCursor(rows []string, cursorRow, max int) string {
	if max <= 0 || len(rows) <= max {
		return strings.Join(rows, "\n")
	}
	start := 0
	if cursorRow >= max {
		start = cursorRow - max + 1
	}
	if start+max > len(rows) {
		start = len(rows) - max
	}
	return strings.Join(rows[start:start+max], "\n")
}
