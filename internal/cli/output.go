package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/eigerco/ledgerpay/internal/payment"
)

// Exit codes.
const (
	ExitSuccess  = 0
	ExitFailure  = 1 // usage, config, storage or host errors
	ExitRejected = 2 // the payment program rejected the transaction
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if _, ok := payment.CodeOf(err); ok {
		return ExitRejected
	}
	return ExitFailure
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON}

// outputFormatter writes command results either as text lines or as one JSON object.
type outputFormatter struct {
	format string
	w      io.Writer
}

// Result writes v as JSON, or the text rendering when the format is text.
func (f outputFormatter) Result(v interface{}, text string, args ...interface{}) error {
	if f.format == FormatJSON {
		return json.NewEncoder(f.w).Encode(v)
	}
	_, err := fmt.Fprintf(f.w, text+"\n", args...)
	return err
}
