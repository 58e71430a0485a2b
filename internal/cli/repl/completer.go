package repl

import "strings"

var commandNames = []string{"ECHO", "GET", "PING", "SET"}

var commandUsage = map[string]string{
	"GET":  "GET key",
	"SET":  "SET key value",
	"PING": "PING [message]",
	"ECHO": "ECHO message",
}

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	commands := make([]string, 0, len(commandNames)+3)
	commands = append(commands, commandNames...)
	commands = append(commands, "exit", "help", "quit")
	return &Completer{commands: commands}
}

// Complete returns the commands starting with prefix, ignoring case.
// Suggestions keep the case of the prefix's first letter.
func (c *Completer) Complete(prefix string) []string {
	if prefix == "" {
		return append([]string(nil), c.commands...)
	}

	lower := prefix[0] >= 'a' && prefix[0] <= 'z'
	var suggestions []string
	for _, cmd := range c.commands {
		if !strings.HasPrefix(strings.ToLower(cmd), strings.ToLower(prefix)) {
			continue
		}
		if lower {
			cmd = strings.ToLower(cmd)
		}
		suggestions = append(suggestions, cmd)
	}
	return suggestions
}
