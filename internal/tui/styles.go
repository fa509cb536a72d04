package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	GameLogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262"))

	SlotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1).
			Width(12).
			Align(lipgloss.Center)

	EmptySlotStyle = SlotStyle.
			BorderForeground(lipgloss.Color("#3A3A3A")).
			Foreground(lipgloss.Color("#3A3A3A"))

	KeyHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	PlayerInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// featureColors colours a card by its first feature.
var featureColors = []lipgloss.Color{
	"#FF6B6B",
	"#96CEB4",
	"#7D56F4",
	"#FFD700",
	"#04B575",
}

// playerColors colours token markers by player.
var playerColors = []lipgloss.Color{
	"#FFD700",
	"#04B575",
	"#FF6B6B",
	"#7D56F4",
	"#FAFAFA",
}

func cardStyle(firstFeature int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(featureColors[firstFeature%len(featureColors)]).
		Bold(true)
}

func tokenStyle(player int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(playerColors[player%len(playerColors)]).
		Bold(true)
}
