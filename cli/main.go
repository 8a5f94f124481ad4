// Command supportctl talks to a running support assistant.
package main

import (
	"fmt"
	"os"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
