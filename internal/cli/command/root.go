package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/memkv-go/internal/cli/connection"
	"github.com/yndnr/memkv-go/internal/cli/output"
	"github.com/yndnr/memkv-go/internal/cli/repl"
	"github.com/yndnr/memkv-go/internal/infra/buildinfo"
)

// DefaultServer is the address used when --server is not given.
const DefaultServer = "127.0.0.1:6379"

// ErrReply is returned after an error reply has been printed, so the
// process can exit non-zero without printing it twice.
var ErrReply = errors.New("server returned an error")

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "memkv-cli",
		Usage:   "memkv command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			PingCommand(),
			EchoCommand(),
		},
		Action: replAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "memkv server address (host:port)",
			EnvVars: []string{"MEMKV_SERVER"},
			Value:   DefaultServer,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Dial and request timeout",
			Value:   connection.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, raw, json",
			Value:   string(output.FormatText),
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server  string
	Timeout time.Duration
	Output  output.Format
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return &GlobalFlags{
		Server:  c.String("server"),
		Timeout: c.Duration("timeout"),
		Output:  format,
	}, nil
}

// connect dials the server named by the global flags.
func connect(c *cli.Context) (*connection.Client, *GlobalFlags, error) {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return nil, nil, err
	}
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := connection.Dial(ctx, flags.Server, flags.Timeout)
	if err != nil {
		return nil, nil, err
	}
	return client, flags, nil
}

// run sends one command and prints the reply.
func run(c *cli.Context, args ...string) error {
	client, flags, err := connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	v, err := client.Do(args...)
	if err != nil {
		return err
	}
	if err := output.NewFormatter(flags.Output).Format(writer(c), v); err != nil {
		return err
	}
	if output.IsError(v) {
		return ErrReply
	}
	return nil
}

func replAction(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}

	client, flags, err := connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	r := repl.New(client, output.NewFormatter(flags.Output), client.Addr(),
		repl.WithIO(reader(c), writer(c)))

	history := r.History()
	if err := history.Load(); err != nil {
		PrintError("load history: %v", err)
	}
	runErr := r.Run()
	if err := history.Save(); err != nil {
		PrintError("save history: %v", err)
	}
	return runErr
}

func writer(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func reader(c *cli.Context) io.Reader {
	if c.App != nil && c.App.Reader != nil {
		return c.App.Reader
	}
	return os.Stdin
}

func usageError(c *cli.Context) error {
	return fmt.Errorf("wrong number of arguments, usage: %s %s", c.Command.Name, c.Command.ArgsUsage)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
