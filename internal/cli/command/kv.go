package command

import (
	"github.com/urfave/cli/v2"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value of a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c)
			}
			return run(c, "GET", c.Args().Get(0))
		},
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set a key to a value",
		ArgsUsage: "KEY VALUE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError(c)
			}
			return run(c, "SET", c.Args().Get(0), c.Args().Get(1))
		},
	}
}

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "Check the server is alive, optionally echoing a message",
		ArgsUsage: "[MESSAGE]",
		Action: func(c *cli.Context) error {
			switch c.NArg() {
			case 0:
				return run(c, "PING")
			case 1:
				return run(c, "PING", c.Args().Get(0))
			default:
				return usageError(c)
			}
		},
	}
}

// EchoCommand returns the echo command.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Echo a message back from the server",
		ArgsUsage: "MESSAGE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c)
			}
			return run(c, "ECHO", c.Args().Get(0))
		},
	}
}
