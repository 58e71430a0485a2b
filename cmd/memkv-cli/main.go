package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/yndnr/memkv-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		// The error reply itself was already printed.
		if !errors.Is(err, command.ErrReply) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
