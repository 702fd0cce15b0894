// Package tui is the terminal reminder form: pick who, type what and when,
// watch the /remind command update, copy it to the clipboard.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/staticWagomU/slack-remind-generator/internal/command"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/recurrence"
	"github.com/staticWagomU/slack-remind-generator/internal/timeconv"
)

// field is the focused form row
type field int

const (
	fieldWhoType field = iota
	fieldWhoName
	fieldWhat
	fieldWhen
	fieldCount
)

var whoTypes = []string{models.WhoTypeMe, models.WhoTypeUser, models.WhoTypeChannel}

// ClipboardWriter puts text on the system clipboard
type ClipboardWriter func(text string) error

// copiedMsg reports the outcome of a clipboard write
type copiedMsg struct {
	command string
	quit    bool
	err     error
}

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Cycle     key.Binding
	QuickNext key.Binding
	QuickPrev key.Binding
	Copy      key.Binding
	Submit    key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Cycle, k.QuickNext, k.Copy, k.Submit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Cycle},
		{k.QuickNext, k.QuickPrev},
		{k.Copy, k.Submit, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		Cycle:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "who")),
		QuickNext: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "preset")),
		QuickPrev: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev preset")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy & quit")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// Form is the bubbletea model of the reminder form
type Form struct {
	converter *timeconv.Converter
	clipboard ClipboardWriter

	whoIdx int
	name   textinput.Model
	what   textinput.Model
	when   textinput.Model
	focus  field

	// quickIdx is the preset last placed in the when field, -1 for none
	quickIdx int

	copied   string
	status   string
	err      error
	quitting bool

	keys  keyMap
	help  help.Model
	width int
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	return in
}

// NewForm creates an empty form. clipboard may be nil, in which case copy
// reports an error in the status line.
func NewForm(converter *timeconv.Converter, clipboard ClipboardWriter) *Form {
	if converter == nil {
		converter = timeconv.New()
	}
	return &Form{
		converter: converter,
		clipboard: clipboard,
		name:      newInput("username / channel", 80),
		what:      newInput("日報を書く", 4000),
		when:      newInput("明日の9時 / 毎週月曜 / in 10 minutes", 200),
		focus:     fieldWhoType,
		quickIdx:  -1,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

// Init starts the cursor blinking
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// WhoType is the selected recipient kind
func (f *Form) WhoType() string {
	return whoTypes[f.whoIdx]
}

// Conversion is the when field run through the Japanese time converter
func (f *Form) Conversion() models.TimeInput {
	return f.converter.Convert(f.when.Value())
}

// Config is the reminder described by the form
func (f *Form) Config() models.ReminderConfig {
	return models.ReminderConfig{
		Who:  models.NewWho(f.WhoType(), strings.TrimPrefix(strings.TrimSpace(f.name.Value()), whoPrefix(f.WhoType()))),
		What: strings.TrimSpace(f.what.Value()),
		When: f.Conversion().Value,
	}
}

// Ready reports whether a command can be generated
func (f *Form) Ready() bool {
	cfg := f.Config()
	if !cfg.Ready() {
		return false
	}
	switch w := cfg.Who.(type) {
	case models.WhoUser:
		return w.Username != ""
	case models.WhoChannel:
		return w.ChannelName != ""
	}
	return true
}

// Command is the live preview, empty until the form is ready
func (f *Form) Command() string {
	if !f.Ready() {
		return ""
	}
	return command.Generate(f.Config())
}

// Copied is the last command written to the clipboard
func (f *Form) Copied() string {
	return f.copied
}

func whoPrefix(whoType string) string {
	switch whoType {
	case models.WhoTypeUser:
		return "@"
	case models.WhoTypeChannel:
		return "#"
	}
	return ""
}

// Update handles key presses and clipboard results
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.help.Width = msg.Width
		return f, nil

	case copiedMsg:
		if msg.err != nil {
			f.err = msg.err
			f.status = ""
			return f, nil
		}
		f.err = nil
		f.copied = msg.command
		f.status = "コピーしました"
		if msg.quit {
			f.quitting = true
			return f, tea.Quit
		}
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.keys.Quit):
			f.quitting = true
			return f, tea.Quit
		case key.Matches(msg, f.keys.Next):
			return f, f.move(1)
		case key.Matches(msg, f.keys.Prev):
			return f, f.move(-1)
		case key.Matches(msg, f.keys.Copy):
			return f, f.copyCommand(false)
		case key.Matches(msg, f.keys.Submit):
			if f.Ready() {
				return f, f.copyCommand(true)
			}
			return f, f.move(1)
		case f.focus == fieldWhoType && key.Matches(msg, f.keys.Cycle):
			step := 1
			if msg.String() == "left" {
				step = len(whoTypes) - 1
			}
			f.whoIdx = (f.whoIdx + step) % len(whoTypes)
			return f, nil
		case f.focus == fieldWhen && key.Matches(msg, f.keys.QuickNext):
			f.applyQuick(1)
			return f, nil
		case f.focus == fieldWhen && key.Matches(msg, f.keys.QuickPrev):
			f.applyQuick(-1)
			return f, nil
		}
	}

	return f, f.updateFocused(msg)
}

func (f *Form) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldWhoName:
		f.name, cmd = f.name.Update(msg)
	case fieldWhat:
		f.what, cmd = f.what.Update(msg)
	case fieldWhen:
		f.when, cmd = f.when.Update(msg)
	}
	return cmd
}

// move shifts focus by step, skipping the name row when sending to me
func (f *Form) move(step int) tea.Cmd {
	next := f.focus
	for {
		next = (next + field(step) + fieldCount) % fieldCount
		if next != fieldWhoName || f.WhoType() != models.WhoTypeMe {
			break
		}
	}
	return f.setFocus(next)
}

func (f *Form) setFocus(target field) tea.Cmd {
	f.focus = target
	f.name.Blur()
	f.what.Blur()
	f.when.Blur()
	switch target {
	case fieldWhoName:
		return f.name.Focus()
	case fieldWhat:
		return f.what.Focus()
	case fieldWhen:
		return f.when.Focus()
	}
	return nil
}

// applyQuick fills the when field with the next or previous preset
func (f *Form) applyQuick(step int) {
	n := len(recurrence.QuickOptions)
	if f.quickIdx < 0 && step < 0 {
		f.quickIdx = 0
	}
	f.quickIdx = (f.quickIdx + step + n) % n
	f.when.SetValue(recurrence.QuickOptions[f.quickIdx].Value)
	f.when.CursorEnd()
}

func (f *Form) copyCommand(quit bool) tea.Cmd {
	cmd := f.Command()
	if cmd == "" {
		f.status = ""
		f.err = errNotReady
		return nil
	}
	write := f.clipboard
	return func() tea.Msg {
		if write == nil {
			return copiedMsg{command: cmd, err: errNoClipboard}
		}
		if err := write(cmd); err != nil {
			return copiedMsg{command: cmd, err: err}
		}
		return copiedMsg{command: cmd, quit: quit}
	}
}

// Run shows form until the user quits and returns the copied command, if any
func Run(form *Form, opts ...tea.ProgramOption) (string, error) {
	final, err := tea.NewProgram(form, opts...).Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(*Form); ok {
		return m.Copied(), nil
	}
	return form.Copied(), nil
}
