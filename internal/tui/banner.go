package tui

var bannerLines = []string{
	` █████╗ ██████╗  ██████╗██╗  ██╗`,
	`██╔══██╗██╔══██╗██╔════╝██║  ██║`,
	`███████║██████╔╝██║     ███████║`,
	`██╔══██║██╔══██╗██║     ██╔══██║`,
	`██║  ██║██║  ██║╚██████╗██║  ██║`,
	`╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝`,
}

// drawBanner paints the logo block and returns the first free row
// beneath it.
func (m Model) drawBanner(s *Surface) int {
	y := 0
	for _, line := range bannerLines {
		s.DrawText(y, 2, line, m.styles.Title)
		y++
	}
	s.DrawText(y, 2, "dev-setup installer", m.styles.Subtle)
	return y + 2
}
