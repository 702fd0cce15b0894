package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/staticWagomU/slack-remind-generator/internal/command"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/timeconv"
	"github.com/staticWagomU/slack-remind-generator/internal/tui"
)

// parseWho reads "me", "@name", "#channel", "user:name" or "channel:name"
func parseWho(raw string) (models.Who, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "" || raw == models.WhoTypeMe:
		return models.WhoMe{}, nil
	case strings.HasPrefix(raw, "@"):
		return whoNamed(models.WhoTypeUser, raw[1:])
	case strings.HasPrefix(raw, "#"):
		return whoNamed(models.WhoTypeChannel, raw[1:])
	}
	if kind, name, ok := strings.Cut(raw, ":"); ok && (kind == models.WhoTypeUser || kind == models.WhoTypeChannel) {
		return whoNamed(kind, name)
	}
	return whoNamed(models.WhoTypeUser, raw)
}

func whoNamed(kind, name string) (models.Who, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return nil, fmt.Errorf("invalid %s name %q", kind, name)
	}
	return models.NewWho(kind, name), nil
}

func newGenerateCmd(app *App) *cobra.Command {
	var who, what, when string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a /remind command",
		Long: `Generate a /remind command from who, what and when.
--when accepts Japanese (明日の9時, 毎週月曜) or Slack syntax (at 9am tomorrow).`,
		Example: `  remind generate --what 日報を書く --when 毎日18時
  remind generate --who #dev --what "standup" --when "at 10am every weekday" --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := parseWho(who)
			if err != nil {
				return err
			}
			converted := timeconv.NewWithClock(app.Now).Convert(when)
			cfg := models.ReminderConfig{
				Who:  recipient,
				What: strings.TrimSpace(what),
				When: converted.Value,
			}
			remind := command.Generate(cfg)
			if remind == "" {
				return fmt.Errorf("--what and --when are required")
			}

			out := struct {
				Command string           `json:"command"`
				When    models.TimeInput `json:"when"`
			}{remind, converted}
			return app.emit(cmd, out, remind, remind)
		},
	}
	cmd.Flags().StringVar(&who, "who", models.WhoTypeMe, "Recipient: me, @user or #channel")
	cmd.Flags().StringVar(&what, "what", "", "Reminder message")
	cmd.Flags().StringVar(&when, "when", "", "When to remind")
	return cmd
}

func newFormCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill in a reminder interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := tui.NewForm(timeconv.NewWithClock(app.Now), app.Clipboard)
			copied, err := app.RunForm(form)
			if err != nil {
				return fmt.Errorf("run form: %w", err)
			}
			if copied != "" {
				fmt.Fprintln(cmd.OutOrStdout(), copied)
			}
			return nil
		},
	}
}
