// ABOUTME: Entry point for the bloodscript CLI
// ABOUTME: Terminal companion client for Blood Script V5 chronicles

package main

import (
	"fmt"
	"os"

	"github.com/bloodscript/companion-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
