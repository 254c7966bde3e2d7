// Package theme provides the semantic color system for the topicflow UI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Role names the node kinds a theme colors. They mirror graph.NodeType
// values so the UI can pass a node type straight through.
type Role string

const (
	RoleProblem           Role = "problem"
	RoleSolution          Role = "solution"
	RoleSolutionComponent Role = "solutionComponent"
	RoleCriterion         Role = "criterion"
	RoleEffect            Role = "effect"
	RoleRootClaim         Role = "rootClaim"
	RoleSupport           Role = "support"
	RoleCritique          Role = "critique"
)

// Roles lists every node role in display order.
func Roles() []Role {
	return []Role{
		RoleProblem, RoleSolution, RoleSolutionComponent, RoleCriterion,
		RoleEffect, RoleRootClaim, RoleSupport, RoleCritique,
	}
}

// Palette defines the semantic colors for the UI.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Palette interface {
	Primary() lipgloss.AdaptiveColor // header bg, focused borders
	Accent() lipgloss.AdaptiveColor  // titles, key pills
	Error() lipgloss.AdaptiveColor
	Success() lipgloss.AdaptiveColor

	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor // edges, implied markers

	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor // selected node fill

	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor

	// Node returns the border color for a node role. Unknown roles get
	// BorderNormal.
	Node(role Role) lipgloss.AdaptiveColor
}

// Theme wraps a Palette with terminal helpers.
type Theme struct {
	Palette
}

// BackgroundANSI is the escape sequence that sets the theme background on
// the detected terminal profile.
func (t Theme) BackgroundANSI() string {
	return backgroundSequence(t.Background())
}

// BackgroundSecondaryANSI is BackgroundANSI for the secondary background.
func (t Theme) BackgroundSecondaryANSI() string {
	return backgroundSequence(t.BackgroundSecondary())
}

func backgroundSequence(c lipgloss.AdaptiveColor) string {
	hex := c.Dark
	if !lipgloss.HasDarkBackground() {
		hex = c.Light
	}
	profile := termenv.ANSI256
	if lipgloss.ColorProfile() == termenv.TrueColor {
		profile = termenv.TrueColor
	}
	color := profile.Color(hex)
	if color == nil {
		return ""
	}
	return termenv.CSI + color.Sequence(true) + "m"
}
