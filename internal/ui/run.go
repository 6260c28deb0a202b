package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpshade/luma/internal/service"
)

// Run starts the interactive interface and blocks until the user quits
func Run(svc *service.Service) error {
	m, err := NewModel(context.Background(), svc)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
