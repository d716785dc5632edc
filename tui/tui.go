package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/serr"

	"invdash/dashboard"
	"invdash/models"
)

// Run starts the terminal dashboard and blocks until the user quits.
// Logs go to stderr; redirect it to keep them off the screen.
func Run(cfg *models.Config, api dashboard.API) error {
	m := New(cfg, api)
	defer m.stopDebouncers()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return serr.Wrap(err, "terminal dashboard failed")
	}
	return nil
}
