package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/scout/internal/exchange"
	"github.com/roach88/scout/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Command did what was asked
	ExitFailure      = 1 // Operation refused (record missing, roster full, bad import file, etc.)
	ExitCommandError = 2 // Command error (bad config, database cannot be opened, etc.)
)

// ExitError is a command failure carrying the process exit code.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // What the command was doing
	Err     error  // Cause, if any
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with no underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code and context to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err, or ExitFailure for an
// error that carries none.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errorCode renders an exit code as a response code such as "E001".
func errorCode(exitCode int) string {
	return fmt.Sprintf("E%03d", exitCode)
}

// errorDetails extracts structured context from the scout error types that
// have any.
func errorDetails(err error) interface{} {
	var pe *exchange.ParseError
	if errors.As(err, &pe) {
		return map[string]interface{}{"line": pe.Line, "field": pe.Field}
	}
	var ue *store.UIDExhaustedError
	if errors.As(err, &ue) {
		return map[string]interface{}{"attempts": ue.Attempts, "min": ue.Min, "max": ue.Max}
	}
	return nil
}

// OutputFormatter writes command results and errors as text or as a JSON
// envelope.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostics and statement history (defaults to Writer)
	Verbose   bool
	Session   string // Audit session id echoed in JSON responses
}

// CLIResponse is the JSON envelope every command writes in json format.
type CLIResponse struct {
	Status  string      `json:"status"`            // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`    // command result
	Error   *CLIError   `json:"error,omitempty"`   // set when status is "error"
	Session string      `json:"session,omitempty"` // audit session that produced the result
}

// CLIError is the error part of a CLIResponse.
type CLIError struct {
	Code    string      `json:"code"` // errorCode of the exit code
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"` // e.g. import line and field
}

func (f *OutputFormatter) json() bool {
	return f.Format == "json"
}

// Success writes data in an ok envelope, or prints it as is in text format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.json() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			Session: f.Session,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Result writes data in an ok envelope, or the pre-rendered text in text
// format.
func (f *OutputFormatter) Result(data interface{}, text string) error {
	if f.json() {
		return f.Success(data)
	}

	fmt.Fprint(f.Writer, text)
	if text != "" && text[len(text)-1] != '\n' {
		fmt.Fprintln(f.Writer)
	}
	return nil
}

// Error writes err with the code of its exit status. Import line numbers
// and uid exhaustion figures are attached as details; text format only
// prints them when verbose.
func (f *OutputFormatter) Error(err error) error {
	code := errorCode(GetExitCode(err))
	details := errorDetails(err)

	if f.json() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: err.Error(),
				Details: details,
			},
			Session: f.Session,
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, err)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog writes a diagnostic line when verbose output is on. It goes to
// ErrWriter so JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter, or Writer when none is set.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
