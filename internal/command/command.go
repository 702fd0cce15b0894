// Package command assembles and parses Slack /remind command strings.
package command

import (
	"regexp"
	"strings"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

// japanese matches CJK punctuation, kana, fullwidth forms and kanji
var japanese = regexp.MustCompile(`[\x{3000}-\x{303f}\x{3040}-\x{309f}\x{30a0}-\x{30ff}\x{ff00}-\x{ff9f}\x{4e00}-\x{9faf}\x{3400}-\x{4dbf}]`)

var commandPattern = regexp.MustCompile(
	`^/remind\s+(\S+)\s+(.+?)\s+((?:at|in|on|every|tomorrow|today|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday).*)$`)

// FormatWho renders the recipient as "me", "@user" or "#channel"
func FormatWho(who models.Who) string {
	switch w := who.(type) {
	case models.WhoUser:
		return "@" + w.Username
	case models.WhoChannel:
		return "#" + w.ChannelName
	default:
		return "me"
	}
}

// EscapeMessage quotes message when it contains whitespace, a double quote
// or any Japanese character, escaping inner double quotes. An empty message
// becomes "".
func EscapeMessage(message string) string {
	if message == "" {
		return `""`
	}

	needsQuote := strings.ContainsAny(message, " \n\"") || japanese.MatchString(message)
	if !needsQuote {
		return message
	}
	return `"` + strings.ReplaceAll(message, `"`, `\"`) + `"`
}

func assemble(who, what, when string) string {
	return "/remind " + who + " " + EscapeMessage(what) + " " + when
}

// Generate returns the /remind command for cfg, or "" when cfg is not ready.
func Generate(cfg models.ReminderConfig) string {
	if !cfg.Ready() {
		return ""
	}
	return assemble(FormatWho(cfg.Who), cfg.What, cfg.When)
}

// FromAIResponse renders each proposed command in order. Who is used verbatim.
func FromAIResponse(resp *models.AIResponse) []string {
	if resp == nil {
		return []string{}
	}
	commands := make([]string, 0, len(resp.Commands))
	for _, c := range resp.Commands {
		commands = append(commands, assemble(c.Who, c.What, c.When))
	}
	return commands
}

// Parts is a /remind command split into its segments
type Parts struct {
	Who  string `json:"who"`
	What string `json:"what"`
	When string `json:"when"`
}

// Parse splits a generated command back into who/what/when. The "when"
// segment must start with a recognised keyword. Surrounding quotes are
// removed from what.
func Parse(cmd string) (Parts, bool) {
	m := commandPattern.FindStringSubmatch(cmd)
	if m == nil {
		return Parts{}, false
	}

	what := strings.TrimPrefix(m[2], `"`)
	what = strings.TrimSuffix(what, `"`)
	return Parts{Who: m[1], What: what, When: m[3]}, true
}
