// Package command defines the memkv-cli commands using urfave/cli/v2.
//
// With a subcommand (get, set, ping, echo) the CLI sends one request and
// prints the reply. Without one it starts the interactive REPL.
package command
