// Package commands implements the remind CLI: Japanese time conversion,
// recurrence and business-day helpers, /remind generation, AI conversion
// and API key management.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/staticWagomU/slack-remind-generator/internal/config"
	"github.com/staticWagomU/slack-remind-generator/internal/keystore"
	"github.com/staticWagomU/slack-remind-generator/internal/logger"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
	"github.com/staticWagomU/slack-remind-generator/internal/tui"
	"go.uber.org/zap"
)

// Generator converts free text into reminder commands
type Generator interface {
	Generate(ctx context.Context, input string) (*models.AIResponse, error)
}

// App carries the dependencies shared by every subcommand. Tests replace
// the function fields.
type App struct {
	Version string

	Now          func() time.Time
	Clipboard    func(text string) error
	ReadSecret   SecretReader
	LoadConfig   func() (*config.Config, error)
	OpenKeys     func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*keystore.Backend, error)
	NewGenerator func(s ai.Settings, keys ai.KeySource, logger *zap.Logger, debugMode bool) (Generator, error)
	RunForm      func(form *tui.Form) (string, error)

	jsonOut bool
	copyOut bool
	debug   bool
	logger  *zap.Logger
}

// DefaultApp wires the real clock, clipboard, terminal and backends
func DefaultApp() *App {
	return &App{
		Version:    "dev",
		Now:        time.Now,
		Clipboard:  clipboard.WriteAll,
		ReadSecret: terminalSecret,
		LoadConfig: config.Load,
		OpenKeys:   keystore.Open,
		NewGenerator: func(s ai.Settings, keys ai.KeySource, logger *zap.Logger, debugMode bool) (Generator, error) {
			return ai.NewServiceFromSettings(s, keys, logger, debugMode)
		},
		RunForm: func(form *tui.Form) (string, error) {
			return tui.Run(form)
		},
	}
}

// NewRootCmd builds the command tree over app
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "remind",
		Short: "Build Slack /remind commands from Japanese input",
		Long: `remind turns Japanese time expressions, recurrence settings and free text
into Slack /remind commands.

AI conversion needs an OpenAI API key: store one with 'remind key set'.
The key store backend follows KEY_STORE (default: sqlite under ~/.config/slack-remind).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zapLogger, err := logger.NewCLILogger(app.debug)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.logger = zapLogger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync(app.logger)
		},
	}

	root.PersistentFlags().BoolVar(&app.jsonOut, "json", false, "Print results as JSON")
	root.PersistentFlags().BoolVar(&app.copyOut, "copy", false, "Copy the result to the clipboard")
	root.PersistentFlags().BoolVar(&app.debug, "debug", false, "Enable debug logging (includes LLM request details)")

	root.AddCommand(
		newConvertCmd(app),
		newRecurrenceCmd(app),
		newBusinessDayCmd(app),
		newGenerateCmd(app),
		newAICmd(app),
		newKeyCmd(app),
		newFormCmd(app),
		newVersionCmd(app),
	)
	return root
}

func (a *App) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *App) config() (*config.Config, error) {
	cfg, err := a.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openKeys loads config and opens the configured key store
func (a *App) openKeys(ctx context.Context) (*config.Config, *keystore.Backend, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, nil, err
	}
	keys, err := a.OpenKeys(ctx, cfg, a.log())
	if err != nil {
		return nil, nil, err
	}
	return cfg, keys, nil
}

func closeKeys(keys *keystore.Backend, zapLogger *zap.Logger) {
	if err := keys.Close(); err != nil {
		zapLogger.Warn("failed_to_close_key_store", zap.Error(err))
	}
}

// emit prints data as JSON with --json and text otherwise. With --copy,
// clip goes to the clipboard.
func (a *App) emit(cmd *cobra.Command, data any, text, clip string) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
	} else if _, err := fmt.Fprintln(out, text); err != nil {
		return err
	}

	if a.copyOut && clip != "" {
		if err := a.Clipboard(clip); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		if !a.jsonOut {
			fmt.Fprintln(cmd.ErrOrStderr(), "✓ クリップボードにコピーしました")
		}
	}
	return nil
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.emit(cmd, map[string]string{"version": app.Version}, app.Version, "")
		},
	}
}
