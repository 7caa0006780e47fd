package main

import (
	"fmt"
	"os"

	"dockpeek/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
