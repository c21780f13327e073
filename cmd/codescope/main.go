// # cmd/codescope/main.go
package main

import (
	"os"

	"codescope/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
