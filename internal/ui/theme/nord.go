package theme

import "github.com/charmbracelet/lipgloss"

// Nord color palette
// https://www.nordtheme.com/docs/colors-and-palettes
var nord = struct {
	Nord0  string // Polar Night
	Nord1  string
	Nord3  string
	Nord4  string // Snow Storm
	Nord6  string
	Nord7  string // Frost
	Nord8  string
	Nord10 string
	Nord11 string // Aurora
	Nord12 string
	Nord13 string
	Nord14 string
	Nord15 string
}{
	Nord0:  "#2E3440",
	Nord1:  "#3B4252",
	Nord3:  "#4C566A",
	Nord4:  "#D8DEE9",
	Nord6:  "#ECEFF4",
	Nord7:  "#8FBCBB",
	Nord8:  "#88C0D0",
	Nord10: "#5E81AC",
	Nord11: "#BF616A",
	Nord12: "#D08770",
	Nord13: "#EBCB8B",
	Nord14: "#A3BE8C",
	Nord15: "#B48EAD",
}

// Nord implements Palette with the Nord colors.
type Nord struct{}

func (Nord) Primary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord10, Dark: nord.Nord8}
}

func (Nord) Accent() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#b58900", Dark: nord.Nord13}
}

func (Nord) Error() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord11, Dark: nord.Nord11}
}

func (Nord) Success() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#4f7a3a", Dark: nord.Nord14}
}

func (Nord) Text() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord0, Dark: nord.Nord6}
}

func (Nord) TextMuted() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord3, Dark: nord.Nord4}
}

func (Nord) Background() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord6, Dark: nord.Nord0}
}

func (Nord) BackgroundSecondary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord4, Dark: nord.Nord1}
}

func (Nord) BorderNormal() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord4, Dark: nord.Nord3}
}

func (Nord) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord10, Dark: nord.Nord8}
}

func (n Nord) Node(role Role) lipgloss.AdaptiveColor {
	switch role {
	case RoleProblem:
		return lipgloss.AdaptiveColor{Light: nord.Nord11, Dark: nord.Nord11}
	case RoleSolution:
		return lipgloss.AdaptiveColor{Light: "#4f7a3a", Dark: nord.Nord14}
	case RoleSolutionComponent:
		return lipgloss.AdaptiveColor{Light: nord.Nord10, Dark: nord.Nord7}
	case RoleCriterion:
		return lipgloss.AdaptiveColor{Light: nord.Nord15, Dark: nord.Nord15}
	case RoleEffect:
		return lipgloss.AdaptiveColor{Light: nord.Nord12, Dark: nord.Nord12}
	case RoleRootClaim:
		return lipgloss.AdaptiveColor{Light: "#b58900", Dark: nord.Nord13}
	case RoleSupport:
		return lipgloss.AdaptiveColor{Light: nord.Nord10, Dark: nord.Nord8}
	case RoleCritique:
		return lipgloss.AdaptiveColor{Light: nord.Nord11, Dark: nord.Nord12}
	default:
		return n.BorderNormal()
	}
}

func init() {
	Register("nord", Nord{})
}
