package render

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	bitFieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	markerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	paddingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	OnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	OffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// palette colours the fields of the bit map in turn.
var palette = []lipgloss.Color{
	"#98FB98", "#87CEEB", "#FFD700", "#FFA07A", "#DDA0DD", "#40E0D0", "#F0E68C", "#FF69B4",
}
