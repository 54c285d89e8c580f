package executor

import (
	"regexp"
	"strings"
)

// Risk annotates a generated command before the user confirms it.
// It never blocks execution; the user always has the final word.
type Risk int

const (
	// ReadOnly commands only inspect state
	ReadOnly Risk = iota
	// Modifying commands may change files or processes
	Modifying
	// Destructive commands can wipe data or escalate privileges
	Destructive
)

var readOnlyPrograms = map[string]bool{
	"ls": true, "cat": true, "pwd": true, "echo": true, "head": true,
	"tail": true, "grep": true, "find": true, "which": true, "whoami": true,
	"date": true, "wc": true, "sort": true, "uniq": true, "diff": true,
	"env": true, "printenv": true, "df": true, "du": true, "ps": true,
	"tree": true, "file": true, "stat": true, "uname": true, "cal": true,
	"man": true, "history": true, "free": true, "uptime": true,
}

var readOnlySubcommands = []*regexp.Regexp{
	regexp.MustCompile(`^git\s+(status|log|diff|branch|show|remote)\b`),
	regexp.MustCompile(`^npm\s+(list|ls|view|info|outdated)\b`),
	regexp.MustCompile(`^go\s+(list|version|env)\b`),
	regexp.MustCompile(`^docker\s+(ps|images|inspect|logs)\b`),
	regexp.MustCompile(`^kubectl\s+(get|describe|logs)\b`),
}

var destructivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\brm\s+(-[a-zA-Z]*\s+)*/`),
	regexp.MustCompile(`\brm\s+-[a-zA-Z]*[rf][a-zA-Z]*\s+[~$*]`),
	regexp.MustCompile(`\bsudo\b`),
	regexp.MustCompile(`\bdd\s+if=`),
	regexp.MustCompile(`\bmkfs`),
	regexp.MustCompile(`:\(\)\s*\{`),
	regexp.MustCompile(`(curl|wget)\b.*\|\s*(sh|bash|zsh)\b`),
	regexp.MustCompile(`>\s*/dev/sd`),
	regexp.MustCompile(`>\s*/etc/`),
	regexp.MustCompile(`\bchmod\s+(-R\s+)?777\b`),
	regexp.MustCompile(`\bshutdown\b|\breboot\b`),
}

// chaining operators hide a second command behind a harmless first one
var chaining = regexp.MustCompile(`[;&|]|\$\(|` + "`")

// Classify estimates how risky running cmd would be.
func Classify(cmd Command) Risk {
	line := strings.TrimSpace(cmd.String())
	if cmd.Program == "bash" && len(cmd.Args) == 2 && cmd.Args[0] == "-c" {
		line = strings.TrimSpace(cmd.Args[1])
	}
	if line == "" {
		return Modifying
	}

	for _, p := range destructivePatterns {
		if p.MatchString(line) {
			return Destructive
		}
	}
	if chaining.MatchString(line) {
		return Modifying
	}

	program := strings.Fields(line)[0]
	if readOnlyPrograms[program] {
		return ReadOnly
	}
	for _, p := range readOnlySubcommands {
		if p.MatchString(line) {
			return ReadOnly
		}
	}
	return Modifying
}

// String describes the risk for the confirmation prompt
func (r Risk) String() string {
	switch r {
	case ReadOnly:
		return "read-only command"
	case Modifying:
		return "command may modify system state"
	case Destructive:
		return "potentially destructive command"
	default:
		return "unknown risk"
	}
}
