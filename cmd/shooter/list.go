package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered game variants.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Title", "Formation")
	for _, g := range games {
		formation := g.Variant
		if formation == "" {
			formation = "-"
		}
		t.Row(g.ID, g.Title, formation)
	}

	fmt.Println("Available games:")
	fmt.Println(t.String())
	fmt.Println("Run 'shooter play <id>' to play a game.")
}
