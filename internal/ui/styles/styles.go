// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // titles, main text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // issue identifiers
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"} // hints, help, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // body text

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#7C3AED"}

	// Status indicators
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#FF8787"}

	// Accent for the selected row and active elements
	HighlightColor = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#7C3AED"}

	// Selection marker for bulk-selected issues
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FF9F43", Dark: "#FF9F43"}

	// Workflow state colors keyed by Linear state type
	StateBacklogColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}
	StateUnstartedColor = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#AAAAAA"}
	StateStartedColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	StateCompletedColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#73F59F"}
	StateCanceledColor  = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#777777"}

	// Priority colors, urgent first
	PriorityUrgentColor = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#FF8787"}
	PriorityHighColor   = lipgloss.AdaptiveColor{Light: "#FF9F43", Dark: "#FF9F43"}
	PriorityMediumColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	PriorityLowColor    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	PriorityNoneColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}

	// Toast borders
	ToastSuccessColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#73F59F"}
	ToastErrorColor   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#FF8787"}
	ToastInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastLoadingColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Overlay chrome
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor)

	PanelFocusStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderFocusColor)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	CursorRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(HighlightColor)

	SelectedMarkStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SelectionIndicatorColor)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	IdentStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	GroupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextMutedColor).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OverlayBorderColor).
			Padding(0, 1)

	OverlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(OverlayTitleColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)

// StateColor maps a Linear workflow state type to its color.
func StateColor(stateType string) lipgloss.AdaptiveColor {
	switch stateType {
	case "backlog":
		return StateBacklogColor
	case "started":
		return StateStartedColor
	case "completed":
		return StateCompletedColor
	case "canceled":
		return StateCanceledColor
	default:
		return StateUnstartedColor
	}
}

// PriorityColor maps a Linear priority number to its color.
func PriorityColor(priority int) lipgloss.AdaptiveColor {
	switch priority {
	case 1:
		return PriorityUrgentColor
	case 2:
		return PriorityHighColor
	case 3:
		return PriorityMediumColor
	case 4:
		return PriorityLowColor
	default:
		return PriorityNoneColor
	}
}

// ApplyTheme overrides the default palette with configured colors. Empty
// strings leave the defaults in place.
func ApplyTheme(highlight, subtle, errorColor, success string) {
	if highlight != "" {
		HighlightColor = lipgloss.AdaptiveColor{Light: highlight, Dark: highlight}
		BorderFocusColor = HighlightColor
		CursorRowStyle = CursorRowStyle.Foreground(HighlightColor)
		PanelFocusStyle = PanelFocusStyle.BorderForeground(BorderFocusColor)
	}
	if subtle != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: subtle, Dark: subtle}
		BorderDefaultColor = TextMutedColor
		MutedStyle = MutedStyle.Foreground(TextMutedColor)
		GroupHeaderStyle = GroupHeaderStyle.Foreground(TextMutedColor)
		PanelStyle = PanelStyle.BorderForeground(BorderDefaultColor)
	}
	if errorColor != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: errorColor, Dark: errorColor}
		ToastErrorColor = StatusErrorColor
		ErrorStyle = ErrorStyle.Foreground(StatusErrorColor)
	}
	if success != "" {
		StatusSuccessColor = lipgloss.AdaptiveColor{Light: success, Dark: success}
		ToastSuccessColor = StatusSuccessColor
	}
}
