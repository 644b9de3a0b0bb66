package db

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nickyhof/PrimitiveDB/core"
	"github.com/nickyhof/PrimitiveDB/sql"
)

// LineReader yields input lines. io.EOF ends the session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

const DefaultPrompt = ">>> "

// REPL reads commands, runs them on the engine and prints results or
// diagnostics. A failing command never ends the loop.
type REPL struct {
	Engine *Engine
	Reader LineReader
	Out    io.Writer
	Prompt string
}

// NewREPL wires reader into the engine as its confirmation source unless
// the engine already has one.
func NewREPL(engine *Engine, reader LineReader, out io.Writer) *REPL {
	if engine.Confirmer == nil {
		engine.WithConfirmer(ReaderConfirmer(reader))
	}
	return &REPL{
		Engine: engine,
		Reader: reader,
		Out:    out,
		Prompt: DefaultPrompt,
	}
}

// ReaderConfirmer asks on reader and accepts y or yes in any case.
func ReaderConfirmer(reader LineReader) Confirmer {
	return ConfirmFunc(func(question string) (bool, error) {
		answer, err := reader.ReadLine(question + " (yes/no): ")
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return IsYes(answer), nil
	})
}

func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Run loops until exit or end of input.
func (r *REPL) Run() error {
	for {
		if err := r.Engine.Reload(); err != nil {
			r.report(err)
		}

		line, err := r.Reader.ReadLine(r.Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}

		result, err := r.Engine.Execute(line)
		if err != nil {
			r.report(err)
			continue
		}
		if result == nil {
			continue
		}

		result.Display(r.Out)
		if result.Type() == ExitResultType {
			return nil
		}
	}
}

func (r *REPL) report(err error) {
	fmt.Fprintln(r.Out, Diagnostic(err))
}

// Diagnostic turns a command error into the message shown to the user.
func Diagnostic(err error) string {
	switch {
	case errors.Is(err, sql.ErrUnknownCommand):
		return fmt.Sprintf("Error: %v. Type help for the list of commands.", err)
	case errors.Is(err, sql.ErrSyntax):
		return fmt.Sprintf("Syntax error: %v", err)
	case errors.Is(err, sql.ErrUsage):
		return fmt.Sprintf("Invalid format, %v", err)
	case errors.Is(err, core.ErrIO):
		return fmt.Sprintf("Storage error: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
