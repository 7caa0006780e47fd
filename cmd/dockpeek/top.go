package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dockpeek/internal/docker"
	"dockpeek/internal/format/table"
)

func init() {
	rootCmd.AddCommand(cmdTop)
}

var cmdTop = &cobra.Command{
	Use:   "top CONTAINER",
	Short: "Print a container's flat process table once and exit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()
		snapshot, err := runtimeFactory().Top(ctx, args[0])
		if err != nil {
			return err
		}
		if len(snapshot.Rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no processes")
			return nil
		}
		for _, line := range formatTopTable(snapshot) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

// formatTopTable renders the snapshot with numeric columns right-aligned,
// header included.
func formatTopTable(snapshot docker.TopSnapshot) []string {
	titles := snapshot.Titles
	if len(titles) == 0 {
		titles = []string{"PID", "PPID", "CMD"}
	}
	rows := make([][]string, 0, len(snapshot.Rows)+1)
	rows = append(rows, titles)
	for _, r := range snapshot.Rows {
		rows = append(rows, []string{r.PID, r.PPID, r.Command})
	}
	return table.Format(rows, []table.Alignment{table.AlignRight, table.AlignRight, table.AlignLeft})
}
