// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, display and exit codes for caesar commands.
//
// Handlers always return errors; the caller displays them once and picks
// the exit code.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/caesar-tui/internal/attemptlog"
	"github.com/jeranaias/caesar-tui/internal/cipher"
	"github.com/jeranaias/caesar-tui/internal/config"
	"github.com/jeranaias/caesar-tui/internal/recovery"
	"github.com/jeranaias/caesar-tui/internal/service"
	"github.com/jeranaias/caesar-tui/internal/share"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates a wrong or throttled PIN
	ExitAuthError = 4
	// ExitNotFoundError indicates no key was found or a resource is missing
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "crack", "dict")
	Action  string // Action being performed (e.g., "import")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "key", "log")
	ID       string // Identifier that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// ErrInvalidFormat creates an error for invalid format.
func ErrInvalidFormat(field, value, expected string) error {
	return NewValidationErrorWithExample(field, value, "invalid format", expected)
}

// ErrUnknownSubcommand creates an error for an unknown subcommand.
func ErrUnknownSubcommand(command, sub string, valid ...string) error {
	return NewValidationErrorWithExample(command+" subcommand", sub, "unknown subcommand",
		fmt.Sprintf("one of: %v", valid))
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError displays an error in a consistent format. In JSON mode the
// error is written to stdout as a JSON object.
func DisplayError(err error, jsonMode bool) {
	fdisplayError(os.Stdout, os.Stderr, err, jsonMode)
}

func fdisplayError(stdout, stderr io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		writeErrorJSON(stdout, err)
		return
	}
	fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// writeErrorJSON outputs an error as JSON.
func writeErrorJSON(w io.Writer, err error) {
	output := map[string]interface{}{
		"error":     err.Error(),
		"success":   false,
		"exit_code": GetExitCode(err),
	}

	var (
		cmdErr      *CommandError
		validErr    *ValidationError
		notFoundErr *NotFoundError
		keyErr      *cipher.KeyError
		throttleErr *service.ThrottleError
	)
	switch {
	case errors.As(err, &validErr):
		output["error_type"] = "validation_error"
		output["field"] = validErr.Field
		output["value"] = validErr.Value
		output["reason"] = validErr.Reason
		if validErr.Example != "" {
			output["example"] = validErr.Example
		}
	case errors.As(err, &keyErr):
		output["error_type"] = "validation_error"
		output["field"] = "key"
		output["value"] = keyErr.Key
	case errors.As(err, &notFoundErr):
		output["error_type"] = "not_found_error"
		output["resource"] = notFoundErr.Resource
		output["id"] = notFoundErr.ID
	case errors.As(err, &throttleErr):
		output["error_type"] = "throttled"
		output["retry_after_secs"] = int(throttleErr.RetryAfter.Seconds() + 0.5)
	case errors.Is(err, recovery.ErrPINMismatch), errors.Is(err, share.ErrPINMismatch):
		output["error_type"] = "pin_mismatch"
	case errors.As(err, &cmdErr):
		output["error_type"] = "command_error"
		output["command"] = cmdErr.Command
		output["action"] = cmdErr.Action
		output["reason"] = cmdErr.Reason
		if cmdErr.Err != nil {
			output["underlying_error"] = cmdErr.Err.Error()
		}
	default:
		output["error_type"] = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		validErr    *ValidationError
		keyErr      *cipher.KeyError
		notFoundErr *NotFoundError
		cfgErr      config.ValidationError
		cfgErrs     config.ValidateErrors
	)

	switch {
	case errors.As(err, &validErr), errors.As(err, &keyErr):
		return ExitUsageError
	case errors.Is(err, recovery.ErrMissingCiphertext),
		errors.Is(err, recovery.ErrPINRequired),
		errors.Is(err, service.ErrEmptyText),
		errors.Is(err, share.ErrMissingText),
		errors.Is(err, share.ErrMissingPIN),
		errors.Is(err, share.ErrInvalidLink):
		return ExitUsageError
	case errors.As(err, &cfgErr), errors.As(err, &cfgErrs):
		return ExitConfigError
	case errors.Is(err, recovery.ErrPINMismatch),
		errors.Is(err, share.ErrPINMismatch),
		errors.Is(err, service.ErrThrottled):
		return ExitAuthError
	case errors.As(err, &notFoundErr), errors.Is(err, attemptlog.ErrNoLog):
		return ExitNotFoundError
	}

	return ExitGeneralError
}
