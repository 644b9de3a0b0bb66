package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nickyhof/PrimitiveDB/db"
)

// readlineReader is the interactive reader. Only commands typed at the main
// prompt go into the history file, never confirmation answers.
type readlineReader struct {
	rl *readline.Instance
}

func newReadlineReader(historyFile string) (*readlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 colorPrompt(db.DefaultPrompt),
		HistoryFile:            historyFile,
		HistoryLimit:           1000,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	return &readlineReader{rl: rl}, nil
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(colorPrompt(prompt))

	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		// Ctrl+C abandons the current line
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if prompt == db.DefaultPrompt && strings.TrimSpace(line) != "" {
		_ = r.rl.SaveHistory(line)
	}
	return line, nil
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

func colorPrompt(prompt string) string {
	return PromptColor + prompt + ResetColor
}

// scannerReader reads piped input line by line. Prompts are written to out
// when it is set.
type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newScannerReader(in io.Reader, out io.Writer) *scannerReader {
	return &scannerReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *scannerReader) ReadLine(prompt string) (string, error) {
	if r.out != nil {
		fmt.Fprint(r.out, prompt)
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
}
