package main

// Main entry point of the application
// Executes the Cobra root command, which renders the charts by default
// Prints the error and exits with status 1 on failure

import (
	"fmt"
	"os"

	"methodology-charts/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
