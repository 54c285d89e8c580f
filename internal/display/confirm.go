package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	prompt "github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
)

// ErrNoAnswer is returned when the prompt ends without a yes or no
var ErrNoAnswer = errors.New("no answer given")

var errInvalidAnswer = errors.New("answer with y or n")

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(question, help string, defaultYes bool) (bool, error)
}

// NewConfirmer returns an interactive prompt on a terminal and a plain
// line reader otherwise
func NewConfirmer() Confirmer {
	if IsTerminal(os.Stdin) && IsTerminal(os.Stdout) {
		return &PromptConfirmer{}
	}
	return &LineConfirmer{In: os.Stdin}
}

// parseConfirmAnswer maps typed input to a decision. Empty input takes
// the default.
func parseConfirmAnswer(input string, defaultYes bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errInvalidAnswer
	}
}

func yesNoHint(defaultYes bool) string {
	if defaultYes {
		return "(Y/n) "
	}
	return "(y/N) "
}

// PromptConfirmer asks on the terminal with yes/no completion
type PromptConfirmer struct{}

// Confirm shows question and waits for a valid answer. Ctrl+C or Ctrl+D
// end the prompt with ErrNoAnswer.
func (c *PromptConfirmer) Confirm(question, help string, defaultYes bool) (bool, error) {
	fmt.Fprint(Stdout, question)
	if help != "" {
		fmt.Fprintln(Stdout, helpStyle.Render("["+help+"]"))
	}

	var answer, answered, cancelled bool

	p := prompt.New(
		func(in string) {
			v, err := parseConfirmAnswer(in, defaultYes)
			if err != nil {
				ShowHint(err.Error())
				return
			}
			answer, answered = v, true
		},
		prompt.WithPrefix(yesNoHint(defaultYes)),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithCompleter(yesNoCompleter),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return cancelled || (breakline && answered)
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				cancelled = true
				return false
			},
		}),
	)
	p.Run()

	if !answered {
		return false, ErrNoAnswer
	}
	return answer, nil
}

func yesNoCompleter(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	suggestions := []prompt.Suggest{
		{Text: "yes", Description: "Run the command"},
		{Text: "no", Description: "Do nothing"},
	}
	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// LineConfirmer reads answers line by line, for pipes and dumb terminals
type LineConfirmer struct {
	In io.Reader

	scanner *bufio.Scanner
}

// Confirm prints question and reads lines until one is a valid answer.
// End of input before that is ErrNoAnswer.
func (c *LineConfirmer) Confirm(question, help string, defaultYes bool) (bool, error) {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(c.In)
	}

	fmt.Fprint(Stdout, question)
	if help != "" {
		fmt.Fprintf(Stdout, "[%s]\n", help)
	}

	for {
		fmt.Fprint(Stdout, yesNoHint(defaultYes))
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return false, fmt.Errorf("failed to read answer: %w", err)
			}
			return false, ErrNoAnswer
		}
		v, err := parseConfirmAnswer(c.scanner.Text(), defaultYes)
		if err != nil {
			ShowHint(err.Error())
			continue
		}
		return v, nil
	}
}
