package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/staticWagomU/slack-remind-generator/internal/command"
	"github.com/staticWagomU/slack-remind-generator/internal/logger"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"go.uber.org/zap"
)

// conversionResult is the JSON shape of ai output
type conversionResult struct {
	Commands        []models.RemindCommand `json:"commands"`
	CommandStrings  []string               `json:"command_strings"`
	Confidence      float64                `json:"confidence"`
	ConfidenceLevel models.ConfidenceLevel `json:"confidence_level"`
	LowConfidence   bool                   `json:"low_confidence"`
}

func newAICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ai <text>",
		Short: "Convert free text into /remind commands with OpenAI",
		Example: `  remind ai 毎週月曜の朝10時にチームに週報を出すようリマインド
  remind ai --copy 明日の15時に会議`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, keys, err := app.openKeys(ctx)
			if err != nil {
				return err
			}
			defer closeKeys(keys, app.log())

			generator, err := app.NewGenerator(cfg.AISettings(), keys.Keys(), app.log(), app.debug)
			if err != nil {
				return fmt.Errorf("create AI service: %w", err)
			}

			input := strings.Join(args, " ")
			app.log().Debug("ai_conversion_requested",
				zap.String("input", logger.SanitizeDebugContent(input)),
				zap.String("key_store", keys.Kind),
			)
			resp, err := generator.Generate(ctx, input)
			if err != nil {
				return err
			}

			commands := resp.Commands
			if commands == nil {
				commands = []models.RemindCommand{}
			}
			out := conversionResult{
				Commands:        commands,
				CommandStrings:  command.FromAIResponse(resp),
				Confidence:      resp.Confidence,
				ConfidenceLevel: resp.Level(),
				LowConfidence:   resp.IsLowConfidence(),
			}
			if out.LowConfidence && !app.jsonOut {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ 確信度が低い結果です (%.0f%%)。内容を確認してください\n", resp.Confidence*100)
			}
			joined := strings.Join(out.CommandStrings, "\n")
			return app.emit(cmd, out, joined, joined)
		},
	}
}
