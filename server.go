package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/afpineda/NuS-NimBLE-Serial/commands"
)

// Server bridges HTTP requests to the command processor
type Server struct {
	Logger    *slog.Logger
	Processor *commands.Processor
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /command", s.handleCommand)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// handleCommand executes one command line and returns everything it replied
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	type CommandRequest struct {
		Line string `json:"line"`
	}
	type CommandResponse struct {
		Output  string `json:"output"`
		Grammar string `json:"grammar"`
		Result  string `json:"result"`
		Error   string `json:"error,omitempty"`
	}

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var out bytes.Buffer
	o := s.Processor.Execute(&out, []byte(req.Line))

	resp := CommandResponse{
		Output:  out.String(),
		Grammar: "at",
		Result:  o.AT.String(),
	}
	if o.ViaShell {
		resp.Grammar = "shell"
		resp.Result = o.Shell.String()
	}
	if err := o.Err(); err != nil {
		resp.Error = err.Error()
		s.Logger.Debug("Command rejected", "line", req.Line, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleStats reports the processor counters
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.Processor.Stats()

	type StatsResponse struct {
		Lines        int            `json:"lines"`
		ATLines      int            `json:"at_lines"`
		ShellLines   int            `json:"shell_lines"`
		ATResults    map[string]int `json:"at_results"`
		ShellResults map[string]int `json:"shell_results"`
	}
	resp := StatsResponse{
		Lines:        stats.Lines,
		ATLines:      stats.ATLines,
		ShellLines:   stats.ShellLines,
		ATResults:    map[string]int{},
		ShellResults: map[string]int{},
	}
	for result, n := range stats.ATResults {
		resp.ATResults[result.String()] = n
	}
	for result, n := range stats.ShellResults {
		resp.ShellResults[result.String()] = n
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
