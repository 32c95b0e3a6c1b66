package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "easel: config:", err)
		os.Exit(1)
	}

	keys := NewKeyRegistry()
	if err := keys.ApplyPanelShortcuts(cfg.PanelShortcuts()); err != nil {
		fmt.Fprintln(os.Stderr, "easel: keys:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(cfg, keys), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "easel:", err)
		os.Exit(1)
	}
}
