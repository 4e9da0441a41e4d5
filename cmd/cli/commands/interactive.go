package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (load sources once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands against the
same loaded schedule. Analytics are cached for the session; type 'reload' to
re-read the sources.

Type 'help' to see available commands, 'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd.Parent(), app)
			return s.run(os.Stdin, cmd.OutOrStdout())
		},
	}
}

// session dispatches typed lines to sibling commands without re-running the
// root's PersistentPreRunE, so clients and config are initialized once
type session struct {
	app      *AppContext
	commands map[string]*cobra.Command
}

func newSession(root *cobra.Command, app *AppContext) *session {
	s := &session{app: app, commands: make(map[string]*cobra.Command)}
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "interactive", "completion", "help":
			continue
		}
		s.commands[sub.Name()] = sub
	}
	return s
}

func (s *session) run(in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "\n🚀 Starting interactive session...")
	fmt.Fprintln(out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if done := s.exec(strings.TrimSpace(scanner.Text()), out); done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// exec runs one line and reports whether the session should end
func (s *session) exec(line string, out io.Writer) bool {
	if line == "" {
		return false
	}

	parts, err := parseCommandLine(line)
	if err != nil {
		fmt.Fprintf(out, "❌ Error parsing command: %v\n\n", err)
		return false
	}
	if len(parts) == 0 {
		return false
	}
	name, args := parts[0], parts[1:]

	switch name {
	case "exit", "quit":
		fmt.Fprintln(out, "👋 Goodbye!")
		return true
	case "help":
		s.printHelp(out)
		return false
	case "reload":
		s.app.Snapshots().Invalidate()
		fmt.Fprintln(out, "Sources will be re-read on the next command.")
		return false
	}

	target, ok := s.commands[name]
	if !ok {
		fmt.Fprintf(out, "❌ Unknown command: %s (type 'help' for available commands)\n\n", name)
		return false
	}

	// flags keep their values between runs unless reset
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})
	if err := target.ParseFlags(args); err != nil {
		fmt.Fprintf(out, "❌ Error parsing flags: %v\n\n", err)
		return false
	}
	args = target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			fmt.Fprintf(out, "❌ Error: %v\n\n", err)
			return false
		}
	}

	target.SetOut(out)
	if target.RunE != nil {
		if err := target.RunE(target, args); err != nil {
			fmt.Fprintf(out, "❌ Error: %v\n\n", err)
		}
	} else if target.Run != nil {
		target.Run(target, args)
	}
	return false
}

func (s *session) printHelp(out io.Writer) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := s.commands[name]
		fmt.Fprintf(out, "  %-44s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintf(out, "\n  %-44s %s\n", "reload", "Re-read the sources on the next command")
	fmt.Fprintf(out, "  %-44s %s\n", "help", "Show this help message")
	fmt.Fprintf(out, "  %-44s %s\n\n", "exit, quit", "Exit the interactive session")
}

// parseCommandLine splits a line into arguments. Single or double quotes group
// words, so provider names with spaces can be passed as one argument.
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	quoted := false

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			quoted = true
		case unicode.IsSpace(r):
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}
	return args, nil
}
