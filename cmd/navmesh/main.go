package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("navmesh failed", "err", err)
		os.Exit(1)
	}
}
