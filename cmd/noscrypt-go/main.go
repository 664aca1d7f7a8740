package main

import (
	"fmt"
	"os"

	"github.com/nostrkit/noscrypt-go/cmd/noscrypt-go/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
