package commands

import (
	"fmt"
	"sort"
	"strings"
)

// Command is one console command. Run receives the tokens after the name and
// returns text to print.
type Command struct {
	Name  string
	Usage string
	Run   func(args []string) (string, error)
}

// Registry holds commands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns a registry that already knows "help".
func NewRegistry() *Registry {
	r := &Registry{cmds: make(map[string]*Command)}
	r.Register("help", "help: list commands", func([]string) (string, error) {
		return r.Help(), nil
	})
	return r
}

// Register adds or replaces a command.
func (r *Registry) Register(name, usage string, run func(args []string) (string, error)) {
	r.cmds[name] = &Command{Name: name, Usage: usage, Run: run}
}

// Names returns the registered command names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Help returns one usage line per command.
func (r *Registry) Help() string {
	var b strings.Builder
	for i, n := range r.Names() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.cmds[n].Usage)
	}
	return b.String()
}

// Parse splits a console line into tokens. A leading "/" is allowed.
func Parse(line string) []string {
	line = strings.TrimPrefix(strings.TrimSpace(line), "/")
	return strings.Fields(line)
}

// Execute runs the command in args[0] with args[1:].
func (r *Registry) Execute(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing command")
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return "", fmt.Errorf("unknown command: %s (try help)", args[0])
	}
	return cmd.Run(args[1:])
}
