package session

// OverlayKind identifies which popup is open. While an overlay is open it
// captures all key input; the zone bindings underneath are unreachable.
type OverlayKind int

const (
	OverlayStatusPicker OverlayKind = iota
	OverlayPriorityPicker
	OverlayLabelPicker
	OverlayProjectPicker
	OverlayAssigneePicker
	OverlayTextInput
	OverlayConfirmArchive
	OverlayCreateIssue
	OverlayBulkMenu
	OverlayHelp
)

func (k OverlayKind) String() string {
	switch k {
	case OverlayStatusPicker:
		return "status-picker"
	case OverlayPriorityPicker:
		return "priority-picker"
	case OverlayLabelPicker:
		return "label-picker"
	case OverlayProjectPicker:
		return "project-picker"
	case OverlayAssigneePicker:
		return "assignee-picker"
	case OverlayTextInput:
		return "text-input"
	case OverlayConfirmArchive:
		return "confirm-archive"
	case OverlayCreateIssue:
		return "create-issue"
	case OverlayBulkMenu:
		return "bulk-menu"
	case OverlayHelp:
		return "help"
	default:
		return "unknown"
	}
}

// TextContext says what a text-input overlay is editing.
type TextContext int

const (
	TextComment TextContext = iota
	TextSearch
	TextFilter
	TextEditTitle
	TextEditDescription
)

func (t TextContext) Title() string {
	switch t {
	case TextComment:
		return "Add comment"
	case TextSearch:
		return "Search"
	case TextFilter:
		return "Filter"
	case TextEditTitle:
		return "Edit title"
	case TextEditDescription:
		return "Edit description"
	default:
		return "Input"
	}
}

// Overlay is the state of the currently open popup.
type Overlay struct {
	Kind OverlayKind
	Text TextContext
	// Input backs text-input overlays.
	Input TextField
	// Index is the picker cursor.
	Index int
	// IssueID and IssueIdent snapshot the target issue at open time, so a
	// result can still be attributed after the cursor moves.
	IssueID    string
	IssueIdent string
	// Bulk marks a picker opened from the bulk menu; confirming applies
	// to the whole selection instead of the snapshot issue.
	Bulk bool
	// Checked holds the toggled label ids in the label picker.
	Checked map[string]bool
	// Form backs the create-issue overlay.
	Form *CreateForm

	// prevQuery restores a live-applied search or filter on cancel.
	prevQuery string
}

// TextField is a minimal editable line of text with a cursor. It lives in
// session state so that typing stays a pure state transition.
type TextField struct {
	runes  []rune
	cursor int
}

// NewTextField creates a field prefilled with value, cursor at the end.
func NewTextField(value string) TextField {
	r := []rune(value)
	return TextField{runes: r, cursor: len(r)}
}

// Value returns the field contents.
func (f TextField) Value() string { return string(f.runes) }

// Cursor returns the rune offset of the cursor.
func (f TextField) Cursor() int { return f.cursor }

// Insert inserts a rune at the cursor.
func (f *TextField) Insert(r rune) {
	f.runes = append(f.runes[:f.cursor], append([]rune{r}, f.runes[f.cursor:]...)...)
	f.cursor++
}

// Backspace deletes the rune before the cursor.
func (f *TextField) Backspace() {
	if f.cursor == 0 {
		return
	}
	f.runes = append(f.runes[:f.cursor-1], f.runes[f.cursor:]...)
	f.cursor--
}

// DeleteForward deletes the rune under the cursor.
func (f *TextField) DeleteForward() {
	if f.cursor >= len(f.runes) {
		return
	}
	f.runes = append(f.runes[:f.cursor], f.runes[f.cursor+1:]...)
}

// Left moves the cursor one rune left.
func (f *TextField) Left() {
	if f.cursor > 0 {
		f.cursor--
	}
}

// Right moves the cursor one rune right.
func (f *TextField) Right() {
	if f.cursor < len(f.runes) {
		f.cursor++
	}
}

// Home moves the cursor to the start.
func (f *TextField) Home() { f.cursor = 0 }

// End moves the cursor past the last rune.
func (f *TextField) End() { f.cursor = len(f.runes) }

// CreateForm backs the create-issue overlay.
type CreateForm struct {
	Field       int // index into form fields
	Title       TextField
	Description TextField
	Priority    int
	StateIndex  int // index into Catalog.States, -1 for team default
}

// Form field indices, in tab order.
const (
	FormFieldTitle = iota
	FormFieldDescription
	FormFieldPriority
	FormFieldState
	formFieldCount
)

// NewCreateForm returns an empty form with team defaults.
func NewCreateForm() *CreateForm {
	return &CreateForm{
		Priority:   0, // linear.PriorityNone
		StateIndex: -1,
	}
}

// TextFieldFocused reports whether the focused form field takes typing.
func (c *CreateForm) TextFieldFocused() bool {
	return c.Field == FormFieldTitle || c.Field == FormFieldDescription
}

// FocusedInput returns the text field under focus, or nil.
func (c *CreateForm) FocusedInput() *TextField {
	switch c.Field {
	case FormFieldTitle:
		return &c.Title
	case FormFieldDescription:
		return &c.Description
	default:
		return nil
	}
}
