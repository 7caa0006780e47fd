package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dockpeek/internal/docker"
	"dockpeek/internal/proctree"
)

const fetchTimeout = 10 * time.Second

var treeJSON bool

func init() {
	rootCmd.AddCommand(cmdTree)
	cmdTree.Flags().BoolVar(&treeJSON, "json", false, "emit the process records as JSON")
}

var cmdTree = &cobra.Command{
	Use:   "tree CONTAINER",
	Short: "Print a container's process tree once and exit",
	Long: `Fetches one process snapshot for the named container and prints it as
an indented tree. With --json the raw parsed records are emitted instead,
one object per process.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := fetchIndex(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if treeJSON {
			return writeRecordsJSON(cmd.OutOrStdout(), ix.Records())
		}
		if ix.Len() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no processes")
			return nil
		}
		if _, err := ix.Root(); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderIndexTree(ix))
		return nil
	},
}

// fetchIndex grabs one top snapshot and builds the navigable index, with a
// spinner on stderr while an interactive user waits.
func fetchIndex(ctx context.Context, target string) (*proctree.Index, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	if term.IsTerminal(int(os.Stderr.Fd())) {
		spin := spinner.New(spinner.CharSets[21], 120*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " fetching processes..."
		spin.Start()
		defer spin.Stop()
	}

	snapshot, err := runtimeFactory().Top(ctx, target)
	if err != nil {
		return nil, err
	}
	return proctree.Build(topRows(snapshot))
}

func topRows(snapshot docker.TopSnapshot) []proctree.Row {
	rows := make([]proctree.Row, 0, len(snapshot.Rows))
	for _, r := range snapshot.Rows {
		rows = append(rows, proctree.Row{PID: r.PID, PPID: r.PPID, Command: r.Command})
	}
	return rows
}

type processJSON struct {
	PID     int    `json:"pid"`
	PPID    int    `json:"ppid"`
	Command string `json:"command"`
}

func writeRecordsJSON(w io.Writer, records []proctree.Record) error {
	out := make([]processJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, processJSON{PID: rec.PID, PPID: rec.PPID, Command: rec.Command})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderIndexTree walks every root in input order, descending through
// first-child/next-sibling links.
func renderIndexTree(ix *proctree.Index) string {
	var b strings.Builder
	for _, root := range ix.Roots() {
		fmt.Fprintf(&b, "[%d] %s\n", root.PID, root.Command)
		writeSubtree(&b, ix, root, "")
	}
	return b.String()
}

func writeSubtree(b *strings.Builder, ix *proctree.Index, rec proctree.Record, prefix string) {
	child, ok := ix.FirstChild(rec.PID)
	for ok {
		next, more := ix.NextSibling(child)
		connector, childPrefix := "├── ", prefix+"│   "
		if !more {
			connector, childPrefix = "└── ", prefix+"    "
		}
		fmt.Fprintf(b, "%s%s[%d] %s\n", prefix, connector, child.PID, child.Command)
		writeSubtree(b, ix, child, childPrefix)
		child, ok = next, more
	}
}
