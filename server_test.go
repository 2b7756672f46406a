package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServerCommand(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantOutput  string
		wantGrammar string
		wantResult  string
		wantError   bool
	}{
		{
			name:        "AT command",
			body:        `{"line": "AT+VER?"}`,
			wantStatus:  http.StatusOK,
			wantOutput:  "\r\n+VER: " + Version + "\r\n\r\nOK\r\n",
			wantGrammar: "at",
			wantResult:  "ok",
		},
		{
			name:        "failed AT command",
			body:        `{"line": "AT+NOPE"}`,
			wantStatus:  http.StatusOK,
			wantOutput:  "\r\nERROR\r\n",
			wantGrammar: "at",
			wantResult:  "unsupported command",
			wantError:   true,
		},
		{
			name:        "shell command",
			body:        `{"line": "echo \"a b\" c"}`,
			wantStatus:  http.StatusOK,
			wantOutput:  "a b c\r\n",
			wantGrammar: "shell",
			wantResult:  "ok",
		},
		{
			name:       "invalid body",
			body:       `{"line":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, p := newTestApp(t)
			s := &Server{Logger: slog.New(slog.DiscardHandler), Processor: p}

			req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				Output  string `json:"output"`
				Grammar string `json:"grammar"`
				Result  string `json:"result"`
				Error   string `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Output != tt.wantOutput {
				t.Errorf("output = %q, want %q", resp.Output, tt.wantOutput)
			}
			if resp.Grammar != tt.wantGrammar {
				t.Errorf("grammar = %q, want %q", resp.Grammar, tt.wantGrammar)
			}
			if resp.Result != tt.wantResult {
				t.Errorf("result = %q, want %q", resp.Result, tt.wantResult)
			}
			if (resp.Error != "") != tt.wantError {
				t.Errorf("error = %q, want error: %v", resp.Error, tt.wantError)
			}
		})
	}
}

func TestServerMethodNotAllowed(t *testing.T) {
	_, p := newTestApp(t)
	s := &Server{Logger: slog.New(slog.DiscardHandler), Processor: p}

	req := httptest.NewRequest(http.MethodGet, "/command", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestServerStats(t *testing.T) {
	_, p := newTestApp(t)
	s := &Server{Logger: slog.New(slog.DiscardHandler), Processor: p}

	for _, body := range []string{`{"line":"AT+VER?"}`, `{"line":"version"}`, `{"line":"\"bad"}`} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(body)))
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Lines        int            `json:"lines"`
		ATLines      int            `json:"at_lines"`
		ShellLines   int            `json:"shell_lines"`
		ATResults    map[string]int `json:"at_results"`
		ShellResults map[string]int `json:"shell_results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Lines != 3 || resp.ATLines != 1 || resp.ShellLines != 2 {
		t.Errorf("unexpected counts: %+v", resp)
	}
	if resp.ShellResults["ill-formed string"] != 1 || resp.ATResults["ok"] != 1 {
		t.Errorf("unexpected results: %+v", resp)
	}
}
