package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/staticWagomU/slack-remind-generator/internal/command"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/validation"
)

// MsgUnparseableCommand is returned when a command cannot be split
const MsgUnparseableCommand = "/remind コマンドとして解析できませんでした"

// CommandHandler assembles and parses /remind commands
type CommandHandler struct{}

// NewCommandHandler creates a new command handler
func NewCommandHandler() *CommandHandler {
	return &CommandHandler{}
}

// RegisterRoutes registers command routes. The router should already have
// the /commands prefix.
func (h *CommandHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.Generate).Methods(http.MethodPost)
	r.HandleFunc("/parse", h.Parse).Methods(http.MethodPost)
}

// WhoRequest is the wire form of models.Who. An empty type or a user or
// channel without a name is an unfinished form, not an invalid one.
type WhoRequest struct {
	Type        string `json:"type" validate:"omitempty,who_type"`
	Username    string `json:"username,omitempty" validate:"max=80"`
	ChannelName string `json:"channel_name,omitempty" validate:"max=80"`
}

// toWho converts the request into the sum type. It returns nil while the
// recipient is incomplete.
func (w WhoRequest) toWho() models.Who {
	switch w.Type {
	case models.WhoTypeMe:
		return models.WhoMe{}
	case models.WhoTypeUser:
		if name := validation.SanitizeText(w.Username); name != "" {
			return models.NewWho(w.Type, name)
		}
	case models.WhoTypeChannel:
		if name := validation.SanitizeText(w.ChannelName); name != "" {
			return models.NewWho(w.Type, name)
		}
	}
	return nil
}

// GenerateCommandRequest represents a reminder form submission. What and
// When may be empty while the form is being filled in.
type GenerateCommandRequest struct {
	Who  WhoRequest `json:"who"`
	What string     `json:"what" validate:"max=4000"`
	When string     `json:"when" validate:"max=200"`
}

// GenerateCommandResponse carries the command, empty until the form is ready
type GenerateCommandResponse struct {
	Command string `json:"command"`
	Ready   bool   `json:"ready"`
}

// Generate handles POST /commands
func (h *CommandHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateCommandRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cfg := models.ReminderConfig{
		Who:  req.Who.toWho(),
		What: validation.SanitizeText(req.What),
		When: validation.SanitizeText(req.When),
	}
	respondJSON(w, http.StatusOK, GenerateCommandResponse{
		Command: command.Generate(cfg),
		Ready:   cfg.Ready(),
	})
}

// ParseCommandRequest carries a command to split
type ParseCommandRequest struct {
	Command string `json:"command" validate:"required,max=4500"`
}

// Parse handles POST /commands/parse
func (h *CommandHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseCommandRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	parts, ok := command.Parse(req.Command)
	if !ok {
		respondAIError(w, models.NewAIError(models.CodeInvalidInput, MsgUnparseableCommand))
		return
	}
	respondJSON(w, http.StatusOK, parts)
}
