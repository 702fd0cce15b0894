package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/staticWagomU/slack-remind-generator/internal/command"
)

func newCommandRouter() *mux.Router {
	r := mux.NewRouter()
	NewCommandHandler().RegisterRoutes(r.PathPrefix("/api/v1/commands").Subrouter())
	return r
}

func TestCommandHandler_Generate(t *testing.T) {
	t.Parallel()
	r := newCommandRouter()

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantCommand string
		wantReady   bool
	}{
		{
			name:        "me with japanese message",
			body:        `{"who":{"type":"me"},"what":"会議の準備","when":"at 9am tomorrow"}`,
			wantStatus:  http.StatusOK,
			wantCommand: `/remind me "会議の準備" at 9am tomorrow`,
			wantReady:   true,
		},
		{
			name:        "user",
			body:        `{"who":{"type":"user","username":"john"},"what":"review","when":"in 10 minutes"}`,
			wantStatus:  http.StatusOK,
			wantCommand: `/remind @john review in 10 minutes`,
			wantReady:   true,
		},
		{
			name:        "channel with quotes",
			body:        `{"who":{"type":"channel","channel_name":"general"},"what":"say \"hi\"","when":"every Monday"}`,
			wantStatus:  http.StatusOK,
			wantCommand: `/remind #general "say \"hi\"" every Monday`,
			wantReady:   true,
		},
		{
			name:       "incomplete form",
			body:       `{"who":{"type":"me"},"what":"","when":"tomorrow"}`,
			wantStatus: http.StatusOK,
		},
		{name: "user without name", body: `{"who":{"type":"user"},"what":"x","when":"today"}`, wantStatus: http.StatusOK},
		{name: "channel with blank name", body: `{"who":{"type":"channel","channel_name":"  "},"what":"x","when":"today"}`, wantStatus: http.StatusOK},
		{name: "missing who", body: `{"what":"x","when":"today"}`, wantStatus: http.StatusOK},
		{name: "empty who type", body: `{"who":{"type":""},"what":"x","when":"today"}`, wantStatus: http.StatusOK},
		{name: "unknown who type", body: `{"who":{"type":"team"},"what":"x","when":"today"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/commands", tt.body))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got GenerateCommandResponse
			decodeData(t, w, &got)
			if got.Command != tt.wantCommand || got.Ready != tt.wantReady {
				t.Errorf("got %+v, want command %q ready %v", got, tt.wantCommand, tt.wantReady)
			}
		})
	}
}

func TestCommandHandler_Parse(t *testing.T) {
	t.Parallel()
	r := newCommandRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/commands/parse", `{"command":"/remind #general \"週次MTG\" every Monday at 10am"}`))
	var got command.Parts
	decodeData(t, w, &got)
	want := command.Parts{Who: "#general", What: "週次MTG", When: "every Monday at 10am"}
	if got != want {
		t.Errorf("parts = %+v, want %+v", got, want)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/commands/parse", `{"command":"hello world"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Message != MsgUnparseableCommand || env.Code != "INVALID_INPUT" {
		t.Errorf("envelope = %+v", env)
	}
}
