package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grahalabs/jyotish/internal/model"
)

// Run opens the match browser over a derived reading and blocks until
// the user quits.
func Run(reading *model.Reading) error {
	program := tea.NewProgram(NewModel(reading), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("match browser failed: %w", err)
	}
	return nil
}
