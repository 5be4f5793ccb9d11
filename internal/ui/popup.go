package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mfell/lariat/internal/keys"
	"github.com/mfell/lariat/internal/linear"
	"github.com/mfell/lariat/internal/session"
	"github.com/mfell/lariat/internal/ui/styles"
)

const popupWidth = 44

// renderOverlay draws the open popup. The caller composites it over the
// main view at the center anchor.
func (r *Renderer) renderOverlay(s *session.State, width int) string {
	o := s.Overlay
	if o == nil {
		return ""
	}

	w := popupWidth
	if w > width-4 {
		w = width - 4
	}

	var body string
	switch o.Kind {
	case session.OverlayStatusPicker:
		rows := make([]string, len(s.Catalog.States))
		for i, st := range s.Catalog.States {
			dot := lipgloss.NewStyle().Foreground(styles.StateColor(st.Type)).Render("●")
			rows[i] = dot + " " + st.Name
		}
		body = pickerBody(pickerTitle("Set status", o), rows, o.Index, nil, w)
	case session.OverlayPriorityPicker:
		rows := make([]string, len(linear.Priorities))
		for i, p := range linear.Priorities {
			glyph := lipgloss.NewStyle().Foreground(styles.PriorityColor(p)).Render(priorityGlyph(p))
			rows[i] = glyph + " " + linear.PriorityLabel(p)
		}
		body = pickerBody(pickerTitle("Set priority", o), rows, o.Index, nil, w)
	case session.OverlayLabelPicker:
		rows := make([]string, len(s.Catalog.Labels))
		checked := make([]bool, len(s.Catalog.Labels))
		for i, l := range s.Catalog.Labels {
			rows[i] = l.Name
			checked[i] = o.Checked[l.ID]
		}
		body = pickerBody(pickerTitle("Set labels", o), rows, o.Index, checked, w)
	case session.OverlayProjectPicker:
		rows := make([]string, 0, len(s.Projects)+1)
		rows = append(rows, styles.MutedStyle.Render("No project"))
		for _, p := range s.Projects {
			rows = append(rows, p.Name)
		}
		body = pickerBody(pickerTitle("Move to project", o), rows, o.Index, nil, w)
	case session.OverlayAssigneePicker:
		rows := make([]string, 0, len(s.Catalog.Users)+1)
		rows = append(rows, styles.MutedStyle.Render("Unassigned"))
		for _, u := range s.Catalog.Users {
			name := u.DisplayName
			if name == "" {
				name = u.Name
			}
			rows = append(rows, name)
		}
		body = pickerBody(pickerTitle("Assign to", o), rows, o.Index, nil, w)
	case session.OverlayTextInput:
		body = r.renderTextInput(o, w)
	case session.OverlayConfirmArchive:
		body = renderConfirmArchive(o, w)
	case session.OverlayCreateIssue:
		body = r.renderCreateForm(s, o, w)
	case session.OverlayBulkMenu:
		body = pickerBody(
			fmt.Sprintf("Bulk: %d issues", s.Selection.Len()),
			session.BulkActionLabels, o.Index, nil, w)
	case session.OverlayHelp:
		body = renderHelp(r.keys, w)
	}

	return styles.OverlayStyle.Width(w).Render(body)
}

// pickerTitle names the target: a single issue ident, or the whole
// selection for a bulk picker.
func pickerTitle(verb string, o *session.Overlay) string {
	if o.Bulk {
		return verb + " (bulk)"
	}
	if o.IssueIdent != "" {
		return verb + " · " + o.IssueIdent
	}
	return verb
}

// pickerBody lays out a cursor-driven option list. checked is nil for
// single-choice pickers.
func pickerBody(title string, rows []string, index int, checked []bool, width int) string {
	var b strings.Builder
	b.WriteString(styles.OverlayTitleStyle.Render(title))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(styles.MutedStyle.Render("  loading…") + "\n")
	}
	for i, row := range rows {
		line := "  "
		if i == index {
			line = styles.CursorRowStyle.Render("> ")
		}
		if checked != nil {
			box := "[ ] "
			if checked[i] {
				box = "[x] "
			}
			line += box
		}
		line += row
		b.WriteString(ansi.Truncate(line, width-2, "…"))
		b.WriteString("\n")
	}

	hint := "enter confirm · esc cancel"
	if checked != nil {
		hint = "space toggle · " + hint
	}
	b.WriteString("\n" + styles.MutedStyle.Render(hint))
	return b.String()
}

func (r *Renderer) renderTextInput(o *session.Overlay, width int) string {
	var b strings.Builder
	title := o.Text.Title()
	if o.IssueIdent != "" {
		title += " · " + o.IssueIdent
	}
	b.WriteString(styles.OverlayTitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(renderTextField(o.Input, width-4, true))
	b.WriteString("\n\n" + styles.MutedStyle.Render("enter confirm · esc cancel"))
	return b.String()
}

func renderConfirmArchive(o *session.Overlay, width int) string {
	var b strings.Builder
	b.WriteString(styles.OverlayTitleStyle.Render("Archive issue"))
	b.WriteString("\n\n")
	msg := "Archive " + o.IssueIdent + "?"
	if o.Bulk {
		msg = "Archive selected issues?"
	}
	b.WriteString(ansi.Truncate(msg, width-2, "…"))
	b.WriteString("\n\n" + styles.MutedStyle.Render("y confirm · n cancel"))
	return b.String()
}

func (r *Renderer) renderCreateForm(s *session.State, o *session.Overlay, width int) string {
	form := o.Form
	if form == nil {
		return ""
	}

	var b strings.Builder
	title := "New issue"
	if team := s.CurrentTeam(); team != nil {
		title += " · " + team.Key
	}
	b.WriteString(styles.OverlayTitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(formLabel("Title", form.Field == session.FormFieldTitle))
	b.WriteString("\n")
	b.WriteString(renderTextField(form.Title, width-4, form.Field == session.FormFieldTitle))
	b.WriteString("\n\n")

	b.WriteString(formLabel("Description", form.Field == session.FormFieldDescription))
	b.WriteString("\n")
	b.WriteString(renderTextField(form.Description, width-4, form.Field == session.FormFieldDescription))
	b.WriteString("\n\n")

	b.WriteString(formLabel("Priority", form.Field == session.FormFieldPriority))
	b.WriteString("  " + linear.PriorityLabel(form.Priority))
	if form.Field == session.FormFieldPriority {
		b.WriteString(styles.MutedStyle.Render("  ←/→"))
	}
	b.WriteString("\n\n")

	stateName := "Team default"
	if form.StateIndex >= 0 && form.StateIndex < len(s.Catalog.States) {
		stateName = s.Catalog.States[form.StateIndex].Name
	}
	b.WriteString(formLabel("State", form.Field == session.FormFieldState))
	b.WriteString("  " + stateName)
	if form.Field == session.FormFieldState {
		b.WriteString(styles.MutedStyle.Render("  ←/→"))
	}

	b.WriteString("\n\n" + styles.MutedStyle.Render("tab next field · enter create · esc cancel"))
	return b.String()
}

func formLabel(name string, focused bool) string {
	if focused {
		return styles.CursorRowStyle.Render("> " + name)
	}
	return styles.MutedStyle.Render("  " + name)
}

// renderTextField draws a single-line editor with a block cursor. Long
// values scroll so the cursor stays visible.
func renderTextField(f session.TextField, width int, focused bool) string {
	runes := []rune(f.Value())
	cursor := f.Cursor()

	if width < 4 {
		width = 4
	}
	start := 0
	if cursor >= width-1 {
		start = cursor - width + 2
	}
	end := start + width - 1
	if end > len(runes) {
		end = len(runes)
	}
	visible := runes[start:end]
	rel := cursor - start

	if !focused {
		return string(visible)
	}

	var b strings.Builder
	b.WriteString(string(visible[:rel]))
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if rel < len(visible) {
		b.WriteString(cursorStyle.Render(string(visible[rel])))
		b.WriteString(string(visible[rel+1:]))
	} else {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

func renderHelp(k keys.KeyMap, width int) string {
	var b strings.Builder
	b.WriteString(styles.OverlayTitleStyle.Render("Help"))
	b.WriteString("\n")

	for _, section := range keys.HelpSections(k) {
		b.WriteString("\n" + styles.PanelTitleStyle.Render(section.Title) + "\n")
		for _, binding := range section.Bindings {
			h := binding.Help()
			line := fmt.Sprintf("  %-12s %s", h.Key, h.Desc)
			b.WriteString(ansi.Truncate(line, width-2, "…") + "\n")
		}
	}

	b.WriteString("\n" + styles.MutedStyle.Render("esc close"))
	return b.String()
}
