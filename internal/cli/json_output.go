// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for scripting.
package cli

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// JSONResponse is the response format for every command run with --json.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
func (r *JSONResponse) Print() error {
	return r.Write(os.Stdout)
}

// Write outputs the JSON response to w.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// RESPONSE DATA TYPES
// =============================================================================

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// CipherData is returned by encrypt and decrypt.
type CipherData struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Key    int    `json:"key"`
	Tagged bool   `json:"tagged"`
	Copied bool   `json:"copied,omitempty"`
}

// CrackData is returned by crack.
type CrackData struct {
	RunID       string `json:"run_id"`
	Outcome     string `json:"outcome"`
	Key         int    `json:"key,omitempty"`
	SourceToken string `json:"source_token,omitempty"`
	MatchedWord string `json:"matched_word,omitempty"`
	Plaintext   string `json:"plaintext,omitempty"`
	Tokens      int    `json:"tokens"`
	Attempts    int    `json:"attempts"`
	PINVerified bool   `json:"pin_verified"`
	LogPath     string `json:"log_path,omitempty"`
	Copied      bool   `json:"copied,omitempty"`
}

// LinkData is returned by link.
type LinkData struct {
	URL    string `json:"url"`
	Key    int    `json:"key"`
	QRFile string `json:"qr_file,omitempty"`
	Copied bool   `json:"copied,omitempty"`
}

// OpenData is returned by open.
type OpenData struct {
	Message string `json:"message"`
	Copied  bool   `json:"copied,omitempty"`
}

// LogData is returned by log.
type LogData struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
	Cleared bool   `json:"cleared,omitempty"`
}

// ThemeData is returned by theme.
type ThemeData struct {
	Theme   string `json:"theme"`
	Changed bool   `json:"changed"`
}

// DictCheckData is returned by dict check.
type DictCheckData struct {
	Word  string `json:"word"`
	Known bool   `json:"known"`
}

// DictImportData is returned by dict import.
type DictImportData struct {
	File  string `json:"file"`
	Added int    `json:"added"`
	Words int    `json:"words"`
}

// ConfigValueData is returned by config get and set.
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// ConfigPathData is returned by config path.
type ConfigPathData struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}
