package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/staticWagomU/slack-remind-generator/internal/timeconv"
)

var (
	errNotReady    = errors.New("誰に・何を・いつを入力してください")
	errNoClipboard = errors.New("clipboard unavailable")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A154B")).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("#888888"))
	focusStyle   = lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("#36C5F0")).Bold(true)
	chipStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#888888"))
	chipOnStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2EB67D"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ECB22E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E01E5A"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2EB67D"))
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#36C5F0")).
			Padding(0, 1)
)

// View renders the form
func (f *Form) View() string {
	if f.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("/remind generator"))
	b.WriteString("\n\n")

	b.WriteString(f.label("誰に", fieldWhoType))
	for i, t := range whoTypes {
		style := chipStyle
		if i == f.whoIdx {
			style = chipOnStyle
		}
		b.WriteString(style.Render(t))
	}
	b.WriteString("\n")

	if f.WhoType() != whoTypes[0] {
		b.WriteString(f.label("宛先", fieldWhoName))
		b.WriteString(whoPrefix(f.WhoType()) + f.name.View())
		b.WriteString("\n")
	}

	b.WriteString(f.label("何を", fieldWhat))
	b.WriteString(f.what.View())
	b.WriteString("\n")

	b.WriteString(f.label("いつ", fieldWhen))
	b.WriteString(f.when.View())
	b.WriteString("\n")

	conv := f.Conversion()
	if conv.Value != "" {
		b.WriteString(hintStyle.Render(fmt.Sprintf("%8s→ %s (%s)", "", conv.Value, conv.Type)))
		b.WriteString("\n")
	}
	_, warnings := timeconv.Validate(conv)
	for _, w := range warnings {
		if w == timeconv.WarningEmpty {
			continue
		}
		b.WriteString(warnStyle.Render(fmt.Sprintf("%8s! %s", "", w)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	preview := f.Command()
	if preview == "" {
		preview = hintStyle.Render("(入力するとコマンドが表示されます)")
	}
	box := previewStyle
	if f.width > 4 {
		box = box.Width(f.width - 4)
	}
	b.WriteString(box.Render(preview))
	b.WriteString("\n")

	switch {
	case f.err != nil:
		b.WriteString(errorStyle.Render(f.err.Error()))
		b.WriteString("\n")
	case f.status != "":
		b.WriteString(okStyle.Render(f.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.help.View(f.keys))
	return b.String()
}

func (f *Form) label(text string, row field) string {
	if f.focus == row {
		return focusStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}
