package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, verified / positive
	SeverityWarn                     // yellow, fallback value
	SeverityError                    // red, failed
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity annotation. It marshals
// to JSON as the plain string so machine readers never see colour codes.
//
//	u.Info("Balance: %s", u.Style(d.Balance))
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is everything a repscan command writes to the user.
//
// Production code uses TerminalUI. Tests use RecordingUI, which captures
// every call so output can be asserted on without parsing ANSI.
type UI interface {
	// Style returns t coloured according to its Severity, or the plain
	// text when colours are off.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)
	Critical(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders an aligned 2-column block.
	KeyValue(rows [][2]string)

	// Table renders a bordered table with a header row.
	Table(headers []string, rows [][]string)

	// Spinner starts an animated spinner and returns the function that
	// stops it.
	//
	//	stop := u.Spinner("Fetching profile...")
	//	defer stop()
	Spinner(msg string) func()

	// Indent returns a child UI one level deeper sharing the same output.
	Indent() UI

	// Writer returns an io.Writer that prepends the current indentation to
	// every line, for raw output such as JSON documents.
	Writer() io.Writer
}
