package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tidresp "github.com/tidwall/resp"

	"github.com/yndnr/memkv-go/internal/cli/output"
)

// Doer sends one command and returns the server reply.
type Doer interface {
	Do(args ...string) (tidresp.Value, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    string
	doer      Doer
	formatter output.Formatter
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithHistory replaces the default history.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// New creates a REPL sending commands through doer. The prompt shows addr.
func New(doer Doer, formatter output.Formatter, addr string, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    addr + "> ",
		doer:      doer,
		formatter: formatter,
		completer: NewCompleter(),
		history:   NewHistory(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads commands until exit, quit or EOF. Transport errors end the
// loop; error replies do not.
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if err == io.EOF && line == "" {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		args, perr := SplitArgs(line)
		if perr != nil {
			fmt.Fprintf(r.output, "(error) %v\n", perr)
			continue
		}

		switch strings.ToLower(args[0]) {
		case "exit", "quit":
			return nil
		case "help":
			r.printHelp(args[1:])
			continue
		}

		if err := r.execute(args); err != nil {
			return err
		}
	}
}

func (r *REPL) execute(args []string) error {
	v, err := r.doer.Do(args...)
	if err != nil {
		return err
	}
	return r.formatter.Format(r.output, v)
}

func (r *REPL) printHelp(args []string) {
	if len(args) > 0 {
		if usage, ok := commandUsage[strings.ToUpper(args[0])]; ok {
			fmt.Fprintln(r.output, usage)
			return
		}
	}
	for _, name := range commandNames {
		fmt.Fprintln(r.output, commandUsage[name])
	}
	fmt.Fprintln(r.output, "help [command], exit, quit")
}

// Completer returns the command completer.
func (r *REPL) Completer() *Completer {
	return r.completer
}

// History returns the command history.
func (r *REPL) History() *History {
	return r.history
}
