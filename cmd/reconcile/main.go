package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
