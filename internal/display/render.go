package display

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWrapWidth = 100

var (
	renderer     *glamour.TermRenderer
	rendererOnce sync.Once
	rendererErr  error
)

// initRenderer builds the shared renderer once, wrapped to the terminal width
func initRenderer() error {
	rendererOnce.Do(func() {
		width := defaultWrapWidth
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
		renderer, rendererErr = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
	})
	return rendererErr
}

// ShowContentRendered prints the answer as a highlighted shell block,
// falling back to plain output if rendering fails
func ShowContentRendered(content string) {
	out, err := RenderCommand(content)
	if err != nil {
		ShowContent(content)
		return
	}
	fmt.Fprint(Stdout, out)
}

// RenderCommand renders content as a fenced sh block
func RenderCommand(content string) (string, error) {
	if err := initRenderer(); err != nil {
		return "", err
	}
	md := "```sh\n" + strings.TrimRight(content, "\n") + "\n```\n"
	return renderer.Render(md)
}
