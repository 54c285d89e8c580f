package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/quocvuong92/gpt-cli/internal/clipboard"
	"github.com/quocvuong92/gpt-cli/internal/display"
	"github.com/quocvuong92/gpt-cli/internal/executor"
	"github.com/quocvuong92/gpt-cli/internal/logging"
	"github.com/quocvuong92/gpt-cli/internal/postprocess"
)

// postprocess routes the answer to the configured action
func (app *App) postprocess(ctx context.Context, answer string) error {
	action := postprocess.NewPolicy(app.cfg.Post).Decide(answer)
	app.logger.Debug("Postprocess", logging.Fields{"action": action.String()})

	switch action {
	case postprocess.Copy:
		return app.copyAnswer(answer)
	case postprocess.Out:
		app.printAnswer(answer)
		return nil
	default:
		return app.confirmAndRun(ctx, answer)
	}
}

// confirmAndRun asks before running the answer. Declining or a broken
// prompt is not a failure; neither is a non-zero exit of the command.
func (app *App) confirmAndRun(ctx context.Context, answer string) error {
	cmd := executor.Decompose(answer)
	question := display.FormatCommand(answer, executor.Classify(cmd))

	confirmer := app.confirmer
	if confirmer == nil {
		confirmer = display.NewConfirmer()
	}

	ok, err := confirmer.Confirm(question, confirmHelp, true)
	if err != nil {
		app.logger.Debug("Confirmation failed", logging.Fields{"error": err.Error()})
		display.ShowContent(questionnaireFail)
		return nil
	}
	if !ok {
		display.ShowContent(declinedMessage)
		return nil
	}

	code, err := app.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to execute command: %w", err)
	}
	app.logger.Debug("Command finished", logging.Fields{"exit_code": code})
	return nil
}

// copyAnswer puts the answer on the clipboard, or prints it when there is
// no clipboard to write to
func (app *App) copyAnswer(answer string) error {
	err := clipboard.Copy(app.clipboard, answer)
	if errors.Is(err, clipboard.ErrUnsupported) {
		app.logger.Debug("Clipboard unavailable, printing answer")
		display.ShowContent(answer)
		return nil
	}
	if err != nil {
		return err
	}
	display.ShowCopied(answer)
	return nil
}

func (app *App) printAnswer(answer string) {
	if app.cfg.Render {
		display.ShowContentRendered(answer)
		return
	}
	display.ShowContent(answer)
}
