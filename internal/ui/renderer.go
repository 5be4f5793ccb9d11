// Package ui renders the session state to the terminal. Rendering is a
// pure function of the state; nothing here mutates it.
package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mfell/lariat/internal/keys"
	"github.com/mfell/lariat/internal/log"
)

// Renderer draws the full screen from a session state. It carries the
// pieces rendering needs beyond the state itself: the markdown renderer,
// key bindings for the footer and help, and the current spinner frame.
type Renderer struct {
	keys          keys.KeyMap
	markdownStyle string
	spinnerFrame  string

	// glamour renderers are cached per wrap width; resizing is rare.
	markdown     *glamour.TermRenderer
	markdownWrap int
}

// NewRenderer creates a renderer. markdownStyle is a glamour style name
// ("dark", "light", "notty", ...).
func NewRenderer(markdownStyle string) *Renderer {
	if markdownStyle == "" {
		markdownStyle = "dark"
	}
	return &Renderer{
		keys:          keys.DefaultKeyMap(),
		markdownStyle: markdownStyle,
		spinnerFrame:  "⠋",
	}
}

// SetSpinnerFrame updates the frame drawn for loading toasts.
func (r *Renderer) SetSpinnerFrame(frame string) { r.spinnerFrame = frame }

// renderMarkdown renders issue descriptions and comments. Falls back to
// the raw text when glamour fails.
func (r *Renderer) renderMarkdown(text string, wrap int) string {
	if text == "" {
		return ""
	}
	if wrap < 10 {
		wrap = 10
	}

	if r.markdown == nil || r.markdownWrap != wrap {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.markdownStyle),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			log.Warn(log.CatUI, "markdown renderer init failed", "error", err)
			return wordwrap.String(text, wrap)
		}
		r.markdown = md
		r.markdownWrap = wrap
	}

	out, err := r.markdown.Render(text)
	if err != nil {
		return wordwrap.String(text, wrap)
	}
	return out
}
