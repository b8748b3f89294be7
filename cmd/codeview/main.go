// Command codeview reconciles desired-state editor documents against the
// in-process engine.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/codeview/cmd/codeview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
