package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/campfirium/obsidian-tile-line-base-sub002/internal/tui"
)

var (
	playData string
	playSet  []string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive formula playground",
	Long: `Starts an interactive playground for trying formulas against a
sample row. Without --data a built-in demo row is used.

Keys:
  Enter     - Evaluate the formula
  Ctrl+R    - Toggle RPN and dependency detail
  Ctrl+L    - Clear history
  Esc       - Quit`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playData, "data", "", "row data file (TOML or YAML)")
	playCmd.Flags().StringArrayVar(&playSet, "set", nil, "row field as key=value (repeatable)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	var row map[string]interface{}
	if playData != "" || len(playSet) > 0 {
		row, err = buildRow(playData, playSet)
		if err != nil {
			return err
		}
	}

	p := tea.NewProgram(
		tui.NewModel(engine, row),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "playground error: %v\n", err)
		return err
	}

	return nil
}
