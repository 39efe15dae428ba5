// Command gosignal classifies signals and computes their energy, power and
// mean from the command line, over HTTP, or as MCP tools.
//
// Usage:
//
//	gosignal calc 'sin(t)' 'rect(t)'
//	gosignal serve --addr :8000
//	gosignal mcp
package main

import (
	"os"

	"github.com/njchilds90/gosignal/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
