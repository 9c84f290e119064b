package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner starts argv as a detached process. env replaces the inherited
// environment when non-nil.
type Runner func(argv, env []string) error

// ErrEmptyCommand is returned when there is nothing to execute.
var ErrEmptyCommand = errors.New("empty command")

// Start launches argv without waiting for it to finish. The child is reaped
// in the background so it does not linger as a zombie.
func Start(argv, env []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return ErrEmptyCommand
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if env != nil {
		cmd.Env = env
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// SplitExec splits a desktop entry Exec value into arguments. Arguments are
// separated by spaces; double-quoted arguments may contain spaces and the
// escapes \" \` \$ and \\.
func SplitExec(s string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		hasArg  bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("exec %q: trailing backslash", s)
			}
			i++
			cur.WriteByte(s[i])
		case c == '"':
			inQuote = !inQuote
			hasArg = true
		case !inQuote && (c == ' ' || c == '\t'):
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteByte(c)
			hasArg = true
		}
	}

	if inQuote {
		return nil, fmt.Errorf("exec %q: unterminated quote", s)
	}
	if hasArg {
		args = append(args, cur.String())
	}
	return args, nil
}

// Fields carries the values substituted for %i, %c and %k.
type Fields struct {
	Icon string
	Name string
	Path string
}

// ExpandFieldCodes substitutes desktop entry field codes. File and URL codes
// are dropped because the drawer never passes files, and so is any argument
// that contains one, such as --file=%f.
func ExpandFieldCodes(args []string, f Fields) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "%f", "%F", "%u", "%U", "%d", "%D", "%n", "%N", "%v", "%m":
			continue
		case "%i":
			if f.Icon != "" {
				out = append(out, "--icon", f.Icon)
			}
			continue
		}
		if expanded, ok := expandInline(arg, f); ok {
			out = append(out, expanded)
		}
	}
	return out
}

// expandInline expands codes embedded in arg. It reports false when arg
// references a file or URL and must be left out.
func expandInline(arg string, f Fields) (string, bool) {
	if !strings.Contains(arg, "%") {
		return arg, true
	}
	var b strings.Builder
	for i := 0; i < len(arg); i++ {
		if arg[i] != '%' || i+1 >= len(arg) {
			b.WriteByte(arg[i])
			continue
		}
		i++
		switch arg[i] {
		case '%':
			b.WriteByte('%')
		case 'c':
			b.WriteString(f.Name)
		case 'k':
			b.WriteString(f.Path)
		case 'f', 'F', 'u', 'U':
			return "", false
		}
	}
	return b.String(), true
}
