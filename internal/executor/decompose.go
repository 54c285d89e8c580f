package executor

import "strings"

// Command is a program and its arguments, ready to be spawned without a shell.
type Command struct {
	Program string
	Args    []string
}

// String joins the program and arguments with single spaces
func (c Command) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// Decompose turns an answer into an executable command.
//
// One pair of enclosing backticks is stripped, then the text is split on
// whitespace. When any argument is a bare "|" the whole text is handed to
// "bash -c" so the shell builds the pipeline. Quoting is not understood:
// arguments can never contain whitespace, and a quoted "|" token still
// selects the shell.
func Decompose(text string) Command {
	if strings.HasPrefix(text, "`") && strings.HasSuffix(text, "`") {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "`"), "`")
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{Program: "", Args: []string{}}
	}

	args := fields[1:]
	for _, arg := range args {
		if arg == "|" {
			return Command{Program: "bash", Args: []string{"-c", strings.Join(fields, " ")}}
		}
	}

	return Command{Program: fields[0], Args: append([]string{}, args...)}
}
