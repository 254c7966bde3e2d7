package theme

import "github.com/charmbracelet/lipgloss"

// Dracula color palette
// https://draculatheme.com/contribute
var dracula = struct {
	Background  string
	CurrentLine string
	Foreground  string
	Comment     string
	Cyan        string
	Green       string
	Orange      string
	Pink        string
	Purple      string
	Red         string
	Yellow      string
}{
	Background:  "#282a36",
	CurrentLine: "#44475a",
	Foreground:  "#f8f8f2",
	Comment:     "#6272a4",
	Cyan:        "#8be9fd",
	Green:       "#50fa7b",
	Orange:      "#ffb86c",
	Pink:        "#ff79c6",
	Purple:      "#bd93f9",
	Red:         "#ff5555",
	Yellow:      "#f1fa8c",
}

// Dracula implements Palette with the Dracula colors.
type Dracula struct{}

func (Dracula) Primary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#7e57c2", Dark: dracula.Purple}
}

func (Dracula) Accent() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#f9a825", Dark: dracula.Yellow}
}

func (Dracula) Error() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#d32f2f", Dark: dracula.Red}
}

func (Dracula) Success() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#388e3c", Dark: dracula.Green}
}

func (Dracula) Text() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#212121", Dark: dracula.Foreground}
}

func (Dracula) TextMuted() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#757575", Dark: dracula.Comment}
}

func (Dracula) Background() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#ffffff", Dark: dracula.Background}
}

func (Dracula) BackgroundSecondary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: dracula.CurrentLine}
}

func (Dracula) BorderNormal() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#bdbdbd", Dark: dracula.Comment}
}

func (Dracula) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#7e57c2", Dark: dracula.Purple}
}

func (d Dracula) Node(role Role) lipgloss.AdaptiveColor {
	switch role {
	case RoleProblem:
		return lipgloss.AdaptiveColor{Light: "#c62828", Dark: dracula.Red}
	case RoleSolution:
		return lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: dracula.Green}
	case RoleSolutionComponent:
		return lipgloss.AdaptiveColor{Light: "#00838f", Dark: dracula.Cyan}
	case RoleCriterion:
		return lipgloss.AdaptiveColor{Light: "#6a1b9a", Dark: dracula.Purple}
	case RoleEffect:
		return lipgloss.AdaptiveColor{Light: "#ef6c00", Dark: dracula.Orange}
	case RoleRootClaim:
		return lipgloss.AdaptiveColor{Light: "#f9a825", Dark: dracula.Yellow}
	case RoleSupport:
		return lipgloss.AdaptiveColor{Light: "#1b5e20", Dark: dracula.Green}
	case RoleCritique:
		return lipgloss.AdaptiveColor{Light: "#ad1457", Dark: dracula.Pink}
	default:
		return d.BorderNormal()
	}
}

func init() {
	Register("dracula", Dracula{})
}
