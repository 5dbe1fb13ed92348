// Package main is the entry point for the dungeon API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dungeon-api",
	Short: "Dungeon Layout API Server",
	Long:  `Dungeon API provides an HTTP interface for generating procedural dungeon layouts and tracking room exploration.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(generateCmd)
}
