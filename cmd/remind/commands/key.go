package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/staticWagomU/slack-remind-generator/internal/keystore"
	"golang.org/x/term"
)

// SecretReader prompts for a secret. in and out are the command's streams.
type SecretReader func(prompt string, in io.Reader, out io.Writer) (string, error)

// terminalSecret hides input when stdin is a terminal and otherwise reads
// one line, so keys can be piped in.
func terminalSecret(prompt string, in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newKeyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored OpenAI API key",
	}
	cmd.AddCommand(newKeySetCmd(app), newKeyShowCmd(app), newKeyClearCmd(app))
	return cmd
}

func newKeySetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set [key]",
		Short: "Store the API key (prompts when omitted)",
		Long: `Store the OpenAI API key in the configured key store.
Without an argument the key is read from a hidden prompt, or from stdin when piped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				key, err = app.ReadSecret("OpenAI API key: ", cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			_, keys, err := app.openKeys(ctx)
			if err != nil {
				return err
			}
			defer closeKeys(keys, app.log())

			if err := keys.Store.Save(ctx, key); err != nil {
				return err
			}
			status, err := keystore.GetStatus(ctx, keys.Store)
			if err != nil {
				return err
			}
			return app.emit(cmd, status, fmt.Sprintf("✓ APIキーを保存しました (%s, %s)", status.Preview, keys.Kind), "")
		},
	}
}

func newKeyShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show whether a key is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, keys, err := app.openKeys(ctx)
			if err != nil {
				return err
			}
			defer closeKeys(keys, app.log())

			status, err := keystore.GetStatus(ctx, keys.Store)
			if err != nil {
				return err
			}
			text := "APIキーは未設定です"
			if status.Configured {
				text = fmt.Sprintf("APIキー: %s (%s)", status.Preview, keys.Kind)
			}
			return app.emit(cmd, status, text, "")
		},
	}
}

func newKeyClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, keys, err := app.openKeys(ctx)
			if err != nil {
				return err
			}
			defer closeKeys(keys, app.log())

			if err := keys.Store.Clear(ctx); err != nil {
				return err
			}
			return app.emit(cmd, keystore.Status{}, "✓ APIキーを削除しました", "")
		},
	}
}
