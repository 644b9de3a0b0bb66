package db

import (
	"fmt"
	"io"
	"strings"
)

type ResultType int

const (
	QueryResultType ResultType = iota
	CommitResultType
	MessageResultType
	ExitResultType
)

type Result interface {
	Type() ResultType
	Display(w io.Writer)
}

type QueryResult struct {
	Title            string
	Columns          []string
	Data             [][]string
	RecordsRead      int
	Cached           bool
	ExecutionTimeSec float64
}

type CommitResult struct {
	TablesCreated    int
	TablesDeleted    int
	RecordsWritten   int
	RecordsMatched   int
	RecordsUpdated   int
	RecordsDeleted   int
	RecordsExported  int
	InsertedID       int64
	Location         string
	ExecutionTimeSec float64
}

// MessageResult is plain text output such as help or a cancelled
// confirmation.
type MessageResult struct {
	Text string
}

// ExitResult ends the interactive session.
type ExitResult struct{}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result CommitResult) Type() ResultType {
	return CommitResultType
}

func (result MessageResult) Type() ResultType {
	return MessageResultType
}

func (result ExitResult) Type() ResultType {
	return ExitResultType
}

// formatDuration formats a duration in human-readable form
func formatDuration(secs float64) string {
	if secs < 0.001 {
		return "<1ms"
	} else if secs < 1 {
		ms := secs * 1000
		if ms < 10 {
			return fmt.Sprintf("%.1fms", ms)
		}
		return fmt.Sprintf("%dms", int(ms))
	} else if secs < 60 {
		if secs < 10 {
			return fmt.Sprintf("%.1fs", secs)
		}
		return fmt.Sprintf("%ds", int(secs))
	} else {
		mins := int(secs / 60)
		remainSecs := int(secs) % 60
		if remainSecs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm%ds", mins, remainSecs)
	}
}

func (result QueryResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result CommitResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result QueryResult) Display(w io.Writer) {
	if result.Title != "" {
		fmt.Fprintln(w, result.Title)
	}

	if len(result.Data) == 0 {
		fmt.Fprintln(w, "No rows to display.")
		return
	}

	data := NewTable(w)
	data.Header(result.Columns)
	data.Bulk(result.Data)
	data.Render()

	var cached string
	if result.Cached {
		cached = ", cached"
	}
	fmt.Fprintf(w, "%d rows (%s%s)\n", result.RecordsRead, result.ExecutionTime(), cached)
}

func (result CommitResult) Display(w io.Writer) {
	var parts []string

	if result.TablesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) created", result.TablesCreated))
	}
	if result.TablesDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) deleted", result.TablesDeleted))
	}
	if result.RecordsWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) written", result.RecordsWritten))
	}
	if result.InsertedID > 0 {
		parts = append(parts, fmt.Sprintf("ID %d", result.InsertedID))
	}
	if result.RecordsMatched > 0 || result.RecordsUpdated > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) matched, %d updated", result.RecordsMatched, result.RecordsUpdated))
	}
	if result.RecordsDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) deleted", result.RecordsDeleted))
	}
	if result.Location != "" {
		parts = append(parts, fmt.Sprintf("%d record(s) exported to %s", result.RecordsExported, result.Location))
	}

	if len(parts) == 0 {
		fmt.Fprintf(w, "OK, no changes (%s)\n", result.ExecutionTime())
	} else {
		fmt.Fprintf(w, "%s (%s)\n", strings.Join(parts, ", "), result.ExecutionTime())
	}
}

func (result MessageResult) Display(w io.Writer) {
	fmt.Fprintln(w, result.Text)
}

func (result ExitResult) Display(w io.Writer) {
	fmt.Fprintln(w, "Bye.")
}
