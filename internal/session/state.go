// Package session holds the state and dispatch engine for an interactive
// Linear session. All mutation happens through Dispatch on the Bubble Tea
// update goroutine; remote work runs through the Runner and re-enters
// Dispatch as completion actions.
package session

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mfell/lariat/internal/linear"
)

// Zone identifies a focusable region of the screen. Focus moves through
// zones in a fixed ring: Teams, Projects, Issues, Detail.
type Zone int

const (
	ZoneTeams Zone = iota
	ZoneProjects
	ZoneIssues
	ZoneDetail
)

const zoneCount = 4

func (z Zone) String() string {
	switch z {
	case ZoneTeams:
		return "teams"
	case ZoneProjects:
		return "projects"
	case ZoneIssues:
		return "issues"
	case ZoneDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Next returns the following zone in the focus ring.
func (z Zone) Next() Zone {
	return Zone((int(z) + 1) % zoneCount)
}

// Prev returns the preceding zone in the focus ring.
func (z Zone) Prev() Zone {
	return Zone((int(z) + zoneCount - 1) % zoneCount)
}

// GroupBy selects how the issue list is grouped.
type GroupBy int

const (
	GroupNone GroupBy = iota
	GroupStatus
	GroupPriority
	GroupProject
)

func (g GroupBy) String() string {
	switch g {
	case GroupStatus:
		return "status"
	case GroupPriority:
		return "priority"
	case GroupProject:
		return "project"
	default:
		return "none"
	}
}

// Cycle returns the next grouping.
func (g GroupBy) Cycle() GroupBy {
	return GroupBy((int(g) + 1) % 4)
}

// GroupByFromString parses a config value; unknown values mean no grouping.
func GroupByFromString(s string) GroupBy {
	switch s {
	case "status":
		return GroupStatus
	case "priority":
		return GroupPriority
	case "project":
		return GroupProject
	default:
		return GroupNone
	}
}

// Catalog holds the per-team option lists used by the pickers.
type Catalog struct {
	States []linear.WorkflowState
	Labels []linear.Label
	Users  []linear.User
}

// State is the complete session state. It is owned by the update loop and
// must never be touched from other goroutines.
type State struct {
	Focus       Zone
	returnFocus Zone // focus to restore when the overlay closes
	Overlay     *Overlay

	Viewer *linear.Viewer

	// DefaultTeamKey auto-selects a team by key after the first team load.
	DefaultTeamKey string

	Teams     []linear.Team
	TeamIndex int
	teamID    string // selected (loaded) team, not the hover index

	Projects     []linear.Project
	ProjectIndex int // 0 is the synthetic "All issues" entry
	projectID    string

	Issues  []linear.Issue
	Visible []int // indices into Issues after search/filter/grouping
	Cursor  int   // index into Visible

	Catalog Catalog

	DetailScroll int

	SearchQuery string
	FilterQuery string
	HideDone    bool
	GroupBy     GroupBy

	Selection     *Selection
	Notifications *Notifications
	Comments      *CommentCache
	Bulk          *BulkOp

	// pending tracks in-flight effects by dedup key so repeated triggers
	// are dropped before they reach the runner.
	pending map[string]int // key -> notification id (0 when silent)

	Quitting bool
	// UIPrefsDirty is set when hide-done or grouping changed and the
	// config file should be rewritten.
	UIPrefsDirty bool
}

// NewState creates an empty session state.
func NewState() *State {
	return &State{
		Selection:     NewSelection(),
		Notifications: NewNotifications(),
		Comments:      NewCommentCache(),
		pending:       make(map[string]int),
	}
}

// TeamID returns the id of the team whose issues are loaded.
func (s *State) TeamID() string { return s.teamID }

// ProjectID returns the project filter, empty for all issues.
func (s *State) ProjectID() string { return s.projectID }

// CurrentIssue returns the issue under the cursor, or nil when the visible
// list is empty.
func (s *State) CurrentIssue() *linear.Issue {
	if s.Cursor < 0 || s.Cursor >= len(s.Visible) {
		return nil
	}
	return &s.Issues[s.Visible[s.Cursor]]
}

// VisibleIssues returns the issues in display order.
func (s *State) VisibleIssues() []linear.Issue {
	out := make([]linear.Issue, 0, len(s.Visible))
	for _, idx := range s.Visible {
		out = append(out, s.Issues[idx])
	}
	return out
}

// CurrentTeam returns the team under the cursor in the teams panel.
func (s *State) CurrentTeam() *linear.Team {
	if s.TeamIndex < 0 || s.TeamIndex >= len(s.Teams) {
		return nil
	}
	return &s.Teams[s.TeamIndex]
}

// CurrentProject returns the project under the cursor, nil for "All issues".
func (s *State) CurrentProject() *linear.Project {
	idx := s.ProjectIndex - 1
	if idx < 0 || idx >= len(s.Projects) {
		return nil
	}
	return &s.Projects[idx]
}

// Pending reports whether an effect with the given key is in flight.
func (s *State) Pending(key string) bool {
	_, ok := s.pending[key]
	return ok
}

// PendingCount returns the number of in-flight effects.
func (s *State) PendingCount() int { return len(s.pending) }

// applyFilters recomputes the visible issue list from search, filter,
// hide-done, and grouping, keeping the cursor on the same issue when it
// survives and clamping it otherwise.
func (s *State) applyFilters() {
	var keepID string
	if cur := s.CurrentIssue(); cur != nil {
		keepID = cur.ID
	}

	s.Visible = s.Visible[:0]
	for i, issue := range s.Issues {
		if s.HideDone && issue.Done() {
			continue
		}
		if s.SearchQuery != "" && !fuzzy.MatchNormalizedFold(s.SearchQuery, issue.SearchText()) {
			continue
		}
		if s.FilterQuery != "" && !matchesFilter(issue, s.FilterQuery) {
			continue
		}
		s.Visible = append(s.Visible, i)
	}

	s.sortVisible()

	// Restore the cursor to the issue it was on.
	s.Cursor = clamp(s.Cursor, 0, len(s.Visible)-1)
	if keepID != "" {
		for vi, idx := range s.Visible {
			if s.Issues[idx].ID == keepID {
				s.Cursor = vi
				break
			}
		}
	}

	// Multi-selection only ever refers to visible issues.
	visible := make(map[string]struct{}, len(s.Visible))
	for _, idx := range s.Visible {
		visible[s.Issues[idx].ID] = struct{}{}
	}
	s.Selection.Prune(visible)
}

func (s *State) sortVisible() {
	switch s.GroupBy {
	case GroupStatus:
		sort.SliceStable(s.Visible, func(a, b int) bool {
			return s.Issues[s.Visible[a]].State.Position < s.Issues[s.Visible[b]].State.Position
		})
	case GroupPriority:
		sort.SliceStable(s.Visible, func(a, b int) bool {
			return priorityRank(s.Issues[s.Visible[a]].Priority) < priorityRank(s.Issues[s.Visible[b]].Priority)
		})
	case GroupProject:
		sort.SliceStable(s.Visible, func(a, b int) bool {
			return projectName(s.Issues[s.Visible[a]]) < projectName(s.Issues[s.Visible[b]])
		})
	}
}

// priorityRank orders urgent first and "no priority" last.
func priorityRank(p int) int {
	if p == linear.PriorityNone {
		return 5
	}
	return p
}

func projectName(issue linear.Issue) string {
	if issue.Project == nil {
		return "~" // sorts after real project names
	}
	return issue.Project.Name
}

func matchesFilter(issue linear.Issue, query string) bool {
	q := strings.ToLower(query)
	for _, label := range issue.Labels.Nodes {
		if strings.Contains(strings.ToLower(label.Name), q) {
			return true
		}
	}
	if issue.Assignee != nil {
		if strings.Contains(strings.ToLower(issue.Assignee.Name), q) ||
			strings.Contains(strings.ToLower(issue.Assignee.DisplayName), q) {
			return true
		}
	}
	if issue.Project != nil && strings.Contains(strings.ToLower(issue.Project.Name), q) {
		return true
	}
	return false
}

// issueByID returns a pointer into s.Issues, or nil.
func (s *State) issueByID(id string) *linear.Issue {
	for i := range s.Issues {
		if s.Issues[i].ID == id {
			return &s.Issues[i]
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
