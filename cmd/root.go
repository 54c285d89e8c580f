package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/gpt-cli/internal/api"
	"github.com/quocvuong92/gpt-cli/internal/cache"
	"github.com/quocvuong92/gpt-cli/internal/clipboard"
	"github.com/quocvuong92/gpt-cli/internal/config"
	"github.com/quocvuong92/gpt-cli/internal/constants"
	"github.com/quocvuong92/gpt-cli/internal/display"
	"github.com/quocvuong92/gpt-cli/internal/executor"
	"github.com/quocvuong92/gpt-cli/internal/logging"
)

// User-facing messages
const (
	usageMessage      = "Please add description, which command you want to execute."
	usageExample      = "eg.: gpt show calendar"
	credentialHint    = "Please set the OPENAI_API_KEY environment variable to your OpenAI API key."
	confirmHelp       = "Pressing enter you confirm execution of this command"
	declinedMessage   = "That's too bad, I've heard great things about it."
	questionnaireFail = "Error with questionnaire, try again later"
)

// errReported marks failures that were already shown to the user
var errReported = errors.New("reported")

// errNoChoice is returned when the API answers without any choice
var errNoChoice = errors.New("no choice in response")

// App holds the application state
type App struct {
	cfg *config.Config

	clearCache bool
	cacheInfo  bool
	initConfig bool

	newClient func(cfg *config.Config) api.Completer
	confirmer display.Confirmer
	clipboard clipboard.Clipboard
	runner    executor.CommandRunner
	logger    *logging.FieldLogger
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
		newClient: func(cfg *config.Config) api.Completer {
			return api.NewClient(cfg)
		},
		clipboard: clipboard.System{},
		runner:    executor.NewRunner(),
	}
}

// Execute runs the root command
func Execute() {
	if err := NewApp().newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *App) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gpt [flags] <task description>",
		Short: "Turn a plain-language task into a shell command",
		Long: `gpt asks an OpenAI-compatible chat model for the shell command that performs
a task described in plain words, then runs it after confirmation, copies it
to the clipboard or prints it.

Answers from https://api.openai.com are cached in ~/.gpt-cache.json, so
asking the same thing twice costs nothing.

Examples:
  gpt show calendar
  gpt find files larger than 100MB in home
  gpt -p out list running docker containers
  gpt -r -p out find -name "*.go" files changed today
  OPENAI_BASE_URL=http://localhost:11434 gpt -m llama3 show disk usage`,
		Version:       constants.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd.Context(), args)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Flags are only parsed before the first task word, so words such as
	// "-name" or "--help" later on belong to the task
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Flags().StringVarP(&app.cfg.Model, "model", "m", "", "Model name (default: gpt-4o, env GPT_MODEL)")
	rootCmd.Flags().StringVar(&app.cfg.BaseURL, "base-url", "", "API base URL (default: https://api.openai.com, env OPENAI_BASE_URL)")
	rootCmd.Flags().StringVar(&app.cfg.SystemPrompt, "system-prompt", "", "System prompt sent before the task (env GPT_SYSTEM_PROMPT)")
	rootCmd.Flags().StringVarP(&app.cfg.Post, "post", "p", "", "What to do with the answer: confirm, copy or out (env GPT_POST)")
	rootCmd.Flags().StringVar(&app.cfg.CachePath, "cache-path", "", "Response cache file (default: ~/.gpt-cache.json, env GPT_CACHE_PATH)")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render printed answers as highlighted shell code")
	rootCmd.Flags().BoolVar(&app.cfg.Debug, "debug", false, "Return a canned answer without calling the API")
	rootCmd.Flags().BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug logging, including HTTP traffic")
	rootCmd.Flags().BoolVar(&app.clearCache, "clear-cache", false, "Delete the response cache and exit")
	rootCmd.Flags().BoolVar(&app.cacheInfo, "cache-info", false, "Show the response cache location and size and exit")
	rootCmd.Flags().BoolVar(&app.initConfig, "init-config", false, "Write a commented default config file and exit")

	return rootCmd
}

func (app *App) setupLogging() {
	level := logging.ParseLevel(app.cfg.LogLevel)
	if app.cfg.Verbose {
		level = logging.LevelDebug
	}
	logger := logging.Setup(logging.Options{Level: level, Format: logging.FormatText})
	app.logger = logger.WithFields(logging.Fields{"invocation": uuid.New().String()})
}

func (app *App) run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if app.initConfig {
		path, err := config.CreateDefaultConfigFile()
		if err != nil {
			return app.fail(err)
		}
		display.ShowInfo(fmt.Sprintf("Created config file: %s", path))
		return nil
	}

	if err := app.cfg.Validate(); err != nil {
		return app.fail(err)
	}
	app.setupLogging()

	if app.clearCache || app.cacheInfo {
		return app.runCacheCommand()
	}

	if len(args) == 0 {
		display.ShowError(usageMessage)
		fmt.Fprintln(display.Stderr, usageExample)
		return errReported
	}

	task := strings.Join(args, " ")
	app.logger.Debug("Asking model", logging.Fields{
		"model":     app.cfg.Model,
		"base_url":  app.cfg.BaseURL,
		"cacheable": app.cfg.IsCanonicalEndpoint(),
		"debug":     app.cfg.Debug,
	})

	sp := display.NewSpinner("Thinking...")
	sp.Start()
	resp, err := app.newClient(app.cfg).Ask(ctx, api.NewPrompt(app.cfg.SystemPrompt, task))
	sp.Stop()

	if err != nil {
		return app.fail(err)
	}
	if len(resp.Choices) == 0 {
		return app.fail(errNoChoice)
	}

	answer := resp.GetContent()
	app.logger.Debug("Received answer", logging.Fields{
		"id":     resp.ID,
		"tokens": resp.Usage.TotalTokens,
	})

	if err := app.postprocess(ctx, answer); err != nil {
		return app.fail(err)
	}
	return nil
}

// fail shows err (and the credential hint when relevant) and marks it reported
func (app *App) fail(err error) error {
	display.ShowError(fmt.Sprintf("Error: %v", err))
	if errors.Is(err, api.ErrMissingCredential) {
		display.ShowHint(credentialHint)
	}
	if app.logger != nil {
		app.logger.Debug("Invocation failed", logging.Fields{"error": err.Error()})
	}
	return errReported
}

func (app *App) runCacheCommand() error {
	rc, err := cache.Open(app.cfg.CachePath)
	if app.clearCache {
		// A malformed file can still be removed
		if err != nil && !errors.Is(err, cache.ErrMalformed) {
			return app.fail(err)
		}
		if rc == nil {
			rc = cache.New(app.cfg.CachePath)
		}
		if err := rc.Clear(); err != nil {
			return app.fail(err)
		}
		display.ShowInfo(fmt.Sprintf("Cleared response cache: %s", rc.Path()))
		return nil
	}

	if err != nil {
		return app.fail(err)
	}
	display.ShowInfo(fmt.Sprintf("Cache file: %s", rc.Path()))
	display.ShowInfo(fmt.Sprintf("Cached responses: %d", rc.Len()))
	if !app.cfg.IsCanonicalEndpoint() {
		display.ShowHint(fmt.Sprintf("Base URL %s is not https://api.openai.com, so answers are not cached", app.cfg.BaseURL))
	}
	return nil
}
