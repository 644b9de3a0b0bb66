package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nickyhof/PrimitiveDB"
	"github.com/nickyhof/PrimitiveDB/core"
	"github.com/nickyhof/PrimitiveDB/db"
	"github.com/nickyhof/PrimitiveDB/ps"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

// CLI sits between the REPL and the line reader and handles dot commands
// typed at the main prompt.
type CLI struct {
	engine  *db.Engine
	reader  db.LineReader
	out     io.Writer
	history []string
}

func main() {
	os.Exit(Execute())
}

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", ErrorColor, err, ResetColor)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		cfg        *Config
		scriptFile string
		assumeYes  bool
	)

	rootCmd := &cobra.Command{
		Use:           "primitivedb",
		Short:         "PrimitiveDB interactive shell",
		Long:          "Line-oriented shell for a small table store kept in git, bbolt or memory.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = LoadConfig(cmd.Flags())
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cfg, scriptFile, assumeYes, os.Stdin, cmd.OutOrStdout())
		},
	}

	flags := rootCmd.Flags()
	flags.String("config", "", "YAML config file")
	flags.String("data-dir", ".primitivedb", "Directory holding the database")
	flags.String("backend", "git", "Storage backend (git, bolt, memory)")
	flags.String("codec", "", "Document encoding (json, msgpack); defaults to msgpack for bolt, json otherwise")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("history-file", getHistoryPath(), "Command history file")
	flags.String("name", "PrimitiveDB", "Author name for commits")
	flags.String("email", "cli@primitivedb.local", "Author email for commits")
	flags.String("s3-region", "", "S3 region for export")
	flags.String("s3-endpoint", "", "S3-compatible endpoint for export")
	flags.String("s3-access-key", "", "S3 access key for export")
	flags.String("s3-secret-key", "", "S3 secret key for export")
	flags.StringVarP(&scriptFile, "file", "f", "", "Run commands from a file and exit")
	flags.BoolVarP(&assumeYes, "yes", "y", false, "Confirm destructive commands without asking")

	return rootCmd
}

func run(cfg *Config, scriptFile string, assumeYes bool, in *os.File, out io.Writer) error {
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}

	store, err := PrimitiveDB.OpenBackend(cfg.Backend, cfg.DataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}

	codec := PrimitiveDB.DefaultCodec(cfg.Backend)
	if cfg.Codec != "" {
		if codec, err = ps.ParseCodec(cfg.Codec); err != nil {
			store.Close()
			return err
		}
	}

	instance := PrimitiveDB.Open(store, codec)
	defer instance.Close()

	engine := instance.Engine(core.Identity{
		Name:  cfg.Identity.Name,
		Email: cfg.Identity.Email,
	}, logger)
	engine.WithRemote(cfg.Remote())
	if assumeYes {
		engine.WithConfirmer(db.ConfirmFunc(func(string) (bool, error) { return true, nil }))
	}

	if scriptFile != "" {
		cli := newCLI(engine, nil, out)
		return cli.importFile(scriptFile)
	}

	if !term.IsTerminal(int(in.Fd())) {
		cli := newCLI(engine, newScannerReader(in, nil), out)
		return db.NewREPL(engine, cli, out).Run()
	}

	printBanner(out)
	if cfg.Backend == PrimitiveDB.BackendMemory {
		fmt.Fprintf(out, "%sUsing memory persistence%s\n\n", SuccessColor, ResetColor)
	} else {
		fmt.Fprintf(out, "%sUsing %s persistence: %s%s\n\n", SuccessColor, cfg.Backend, cfg.DataDir, ResetColor)
	}

	reader, err := newReadlineReader(cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer reader.Close()

	cli := newCLI(engine, reader, out)
	return db.NewREPL(engine, cli, out).Run()
}

func newCLI(engine *db.Engine, reader db.LineReader, out io.Writer) *CLI {
	return &CLI{
		engine:  engine,
		reader:  reader,
		out:     out,
		history: make([]string, 0),
	}
}

func printBanner(out io.Writer) {
	fmt.Fprintln(out)
	bannerWidth := 39 // inner width of the banner box
	versionLine := fmt.Sprintf("PrimitiveDB v%s", Version)
	padding := bannerWidth - len(versionLine) - 2 // -2 for "  " margins
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	fmt.Fprintf(out, "%s%s╔═══════════════════════════════════════╗%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintf(out, "%s%s║ %*s%s%*s ║%s\n", BoldColor, PromptColor, leftPad, "", versionLine, rightPad, "", ResetColor)
	fmt.Fprintf(out, "%s%s║      Minimal Command-Line Table Store ║%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintf(out, "%s%s╚═══════════════════════════════════════╝%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Type help for commands, .help for shell commands, exit to quit")
}

// ReadLine passes dot commands at the main prompt to handleCommand and
// everything else, including confirmation answers, to the REPL.
func (cli *CLI) ReadLine(prompt string) (string, error) {
	for {
		line, err := cli.reader.ReadLine(prompt)
		if err != nil || prompt != db.DefaultPrompt {
			return line, err
		}

		input := strings.TrimSpace(line)
		if !strings.HasPrefix(input, ".") {
			if input != "" {
				cli.addToHistory(input)
			}
			return line, nil
		}

		if quit := cli.handleCommand(input); quit {
			return "exit", nil
		}
	}
}

// handleCommand runs a dot command and reports whether the shell should quit.
func (cli *CLI) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit", ".q":
		return true

	case ".help", ".h", ".?":
		cli.printHelp()

	case ".tables":
		cli.execute("list_tables")

	case ".schema":
		if len(parts) > 1 {
			cli.execute("info " + parts[1])
		} else {
			fmt.Fprintf(cli.out, "%s✗ Usage: .schema <table>%s\n", ErrorColor, ResetColor)
		}

	case ".clear", ".cls":
		fmt.Fprint(cli.out, "\033[H\033[2J")

	case ".history":
		cli.printHistory()

	case ".version":
		fmt.Fprintf(cli.out, "PrimitiveDB version %s\n", Version)

	case ".import":
		if len(parts) > 1 {
			if err := cli.importFile(parts[1]); err != nil {
				fmt.Fprintf(cli.out, "%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			}
		} else {
			fmt.Fprintf(cli.out, "%s✗ Usage: .import <file>%s\n", ErrorColor, ResetColor)
		}

	default:
		fmt.Fprintf(cli.out, "%s✗ Unknown command: %s (type .help for commands)%s\n", ErrorColor, parts[0], ResetColor)
	}

	return false
}

func (cli *CLI) printHelp() {
	fmt.Fprintln(cli.out)
	fmt.Fprintf(cli.out, "%s%sShell Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintln(cli.out, "  .help, .h        Show this help message")
	fmt.Fprintln(cli.out, "  .quit, .exit     Exit the shell")
	fmt.Fprintln(cli.out, "  .tables          List all tables")
	fmt.Fprintln(cli.out, "  .schema <table>  Show the columns of a table")
	fmt.Fprintln(cli.out, "  .import <file>   Run commands from a file, one per line")
	fmt.Fprintln(cli.out, "  .history         Show command history")
	fmt.Fprintln(cli.out, "  .clear           Clear the screen")
	fmt.Fprintln(cli.out, "  .version         Show version info")
	fmt.Fprintln(cli.out)
	fmt.Fprintf(cli.out, "%s%sCommands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintln(cli.out, db.HelpText())
	fmt.Fprintln(cli.out)
}

func (cli *CLI) execute(line string) {
	result, err := cli.engine.Execute(line)
	if err != nil {
		fmt.Fprintf(cli.out, "%s✗ %s%s\n", ErrorColor, db.Diagnostic(err), ResetColor)
		return
	}
	if result != nil {
		result.Display(cli.out)
	}
}

func (cli *CLI) addToHistory(cmd string) {
	// Don't add duplicates of the last command
	if len(cli.history) > 0 && cli.history[len(cli.history)-1] == cmd {
		return
	}
	cli.history = append(cli.history, cmd)

	if len(cli.history) > 1000 {
		cli.history = cli.history[len(cli.history)-1000:]
	}
}

func (cli *CLI) printHistory() {
	if len(cli.history) == 0 {
		fmt.Fprintln(cli.out, "No command history")
		return
	}

	start := 0
	if len(cli.history) > 20 {
		start = len(cli.history) - 20
	}

	for i := start; i < len(cli.history); i++ {
		fmt.Fprintf(cli.out, "  %3d  %s\n", i+1, cli.history[i])
	}
}

// importFile runs the commands in filename, one per line. Blank lines and
// lines starting with -- or # are skipped. A failing line is reported and
// the import continues; exit stops it.
func (cli *CLI) importFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	successCount := 0
	errorCount := 0

	for i, line := range scriptLines(string(data)) {
		if line == "" {
			continue
		}

		result, err := cli.engine.Execute(line)
		if err != nil {
			fmt.Fprintf(cli.out, "%s[%d] ✗ %s%s\n", ErrorColor, i+1, truncate(line, 50), ResetColor)
			fmt.Fprintf(cli.out, "      %s\n", db.Diagnostic(err))
			errorCount++
			continue
		}

		successCount++
		switch r := result.(type) {
		case db.CommitResult:
			fmt.Fprintf(cli.out, "%s[%d] ✓ %s%s%s\n", SuccessColor, i+1, truncate(line, 50), commitDetails(r), ResetColor)
		case db.QueryResult:
			fmt.Fprintf(cli.out, "%s[%d] ✓ %s (%d rows)%s\n", SuccessColor, i+1, truncate(line, 50), r.RecordsRead, ResetColor)
		case db.MessageResult:
			fmt.Fprintf(cli.out, "%s[%d] ✓ %s (%s)%s\n", SuccessColor, i+1, truncate(line, 50), firstLine(r.Text), ResetColor)
		default:
			fmt.Fprintf(cli.out, "%s[%d] ✓ %s%s\n", SuccessColor, i+1, truncate(line, 50), ResetColor)
		}

		if result != nil && result.Type() == db.ExitResultType {
			break
		}
	}

	fmt.Fprintf(cli.out, "\n%s✓ Import complete: %d succeeded, %d failed%s\n",
		SuccessColor, successCount, errorCount, ResetColor)

	return nil
}

func commitDetails(r db.CommitResult) string {
	var details []string
	if r.TablesCreated > 0 {
		details = append(details, fmt.Sprintf("%d table created", r.TablesCreated))
	}
	if r.TablesDeleted > 0 {
		details = append(details, fmt.Sprintf("%d table deleted", r.TablesDeleted))
	}
	if r.RecordsWritten > 0 {
		details = append(details, fmt.Sprintf("%d written", r.RecordsWritten))
	}
	if r.RecordsUpdated > 0 {
		details = append(details, fmt.Sprintf("%d updated", r.RecordsUpdated))
	}
	if r.RecordsDeleted > 0 {
		details = append(details, fmt.Sprintf("%d deleted", r.RecordsDeleted))
	}
	if r.RecordsExported > 0 {
		details = append(details, fmt.Sprintf("%d exported", r.RecordsExported))
	}
	if len(details) == 0 {
		return ""
	}
	return " (" + strings.Join(details, ", ") + ")"
}

// scriptLines splits a script into trimmed lines, blanking comments so that
// line numbers still match the file.
func scriptLines(content string) []string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "--") || strings.HasPrefix(line, "#") {
			line = ""
		}
		lines[i] = line
	}
	return lines
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
