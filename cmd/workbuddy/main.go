package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/ElishaSamPeterPrabhu/workbuddy/fs"
	"github.com/ElishaSamPeterPrabhu/workbuddy/gemini"
	"github.com/ElishaSamPeterPrabhu/workbuddy/locate"
	"github.com/ElishaSamPeterPrabhu/workbuddy/search"
	wbslog "github.com/ElishaSamPeterPrabhu/workbuddy/slog"
	"github.com/ElishaSamPeterPrabhu/workbuddy/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the session history store.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SessionService workbuddy.SessionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("workbuddy"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'workbuddy --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr)

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WORKBUDDY_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.SessionService = sqlite.NewSessionService(m.DB)
	deps.DB = m.DB
	deps.Sessions = m.SessionService

	// Wire the search stack
	home := os.Getenv("WORKBUDDY_HOME")
	if home == "" {
		home, err = os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
	}
	roots := fs.LoadSearchRoots(filepath.Join(home, ".workbuddy", "search_roots.txt"))

	index := fs.NewLocationIndex(fs.LocationConfig{
		Home:        home,
		GOOS:        runtime.GOOS,
		SearchRoots: roots,
		Logger:      logger,
	})
	deps.Index = index
	deps.FS = fs.NewFileSystem(logger)

	var fast workbuddy.Searcher
	if backend := locate.New(logger); backend.Available() {
		fast = backend
	}

	engine := &search.Engine{
		Index:  index,
		Walker: fs.NewWalker(logger),
		Fast:   fast,
		Logger: logger,
	}
	executor := &search.Executor{
		Searcher: wbslog.NewLoggingSearcher(engine, logger),
		Logger:   logger,
	}
	deps.Handler = &search.Handler{
		FS:       deps.FS,
		Index:    index,
		Executor: executor,
		Logger:   logger,
	}

	if cmd == "find" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Session = &search.Session{
			Advisor:  wbslog.NewLoggingAdvisor(gemini.NewAdvisor(client), logger),
			Executor: executor,
			Index:    index,
			FS:       deps.FS,
			History:  m.SessionService,
			Logger:   logger,
		}
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("WORKBUDDY_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("WORKBUDDY_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "workbuddy.db"
	}
	dir := filepath.Join(home, ".workbuddy")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "workbuddy.db")
}
