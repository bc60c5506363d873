package components

import "github.com/charmbracelet/lipgloss"

const bannerArt = `           _           _      _               _
 _ __ ___ (_)_ __   __| | ___| |__   ___  ___| | __
| '_ ` + "`" + ` _ \| | '_ \ / _` + "`" + ` |/ __| '_ \ / _ \/ __| |/ /
| | | | | | | | | | (_| | (__| | | |  __/ (__|   <
|_| |_| |_|_|_| |_|\__,_|\___|_| |_|\___|\___|_|\_\`

// RenderBanner returns the app banner with its tagline.
func RenderBanner(s Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(bannerArt),
		s.Muted.Render("  cognitive health risk screening"),
	)
}
