// Command reprise turns failing executions into replayable regression tests.
package main

import (
	"fmt"
	"os"

	"reprise/internal/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
