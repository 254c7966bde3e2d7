package theme

import "github.com/charmbracelet/lipgloss"

// Default uses 256-color indexes so it reads the same on any terminal.
type Default struct{}

func (Default) Primary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "57", Dark: "99"}
}

func (Default) Accent() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "172", Dark: "220"}
}

func (Default) Error() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
}

func (Default) Success() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "28", Dark: "118"}
}

func (Default) Text() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "235", Dark: "255"}
}

func (Default) TextMuted() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "243", Dark: "246"}
}

func (Default) Background() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "255", Dark: "235"}
}

func (Default) BackgroundSecondary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "252", Dark: "57"}
}

func (Default) BorderNormal() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "250", Dark: "240"}
}

func (Default) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "57", Dark: "99"}
}

func (d Default) Node(role Role) lipgloss.AdaptiveColor {
	switch role {
	case RoleProblem:
		return lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	case RoleSolution:
		return lipgloss.AdaptiveColor{Light: "28", Dark: "118"}
	case RoleSolutionComponent:
		return lipgloss.AdaptiveColor{Light: "31", Dark: "39"}
	case RoleCriterion:
		return lipgloss.AdaptiveColor{Light: "91", Dark: "141"}
	case RoleEffect:
		return lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	case RoleRootClaim:
		return lipgloss.AdaptiveColor{Light: "172", Dark: "220"}
	case RoleSupport:
		return lipgloss.AdaptiveColor{Light: "22", Dark: "114"}
	case RoleCritique:
		return lipgloss.AdaptiveColor{Light: "125", Dark: "211"}
	default:
		return d.BorderNormal()
	}
}

func init() {
	Register("default", Default{})
}
