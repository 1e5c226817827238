package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/jacoelho/langtable"
	"github.com/jacoelho/langtable/internal/config"
	"github.com/jacoelho/langtable/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runWithArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// command is one subcommand. It returns the process exit code.
type command func(ctx context.Context, env *environment, args []string) int

type environment struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	cfg    *config.Config
	opts   langtable.LoadOptions
}

var commands = map[string]command{
	"stats":  runStats,
	"show":   runShow,
	"dump":   runDump,
	"check":  runCheck,
	"export": runExport,
}

func runWithArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("langtable", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to YAML config file (default $CONFIG_PATH)")
	dataDirs := fs.String("datadir", "", "colon-separated data directories searched for documents")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "log format: text, json")
	dsn := fs.String("dsn", "", "PostgreSQL DSN for export")
	sequential := fs.Bool("sequential", false, "load documents one after another")
	requireDocs := fs.Bool("require", false, "fail when a document is missing")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] <command> [arguments]\n\n", fs.Name()),
			writeln(stderr, "Loads the keyboards, territories and languages documents."),
			writeln(stderr),
			writeln(stderr, "Commands:"),
			writeln(stderr, "  stats                                  table sizes and load states"),
			writeln(stderr, "  show <keyboard|territory|language> <id> print one entity"),
			writeln(stderr, "  dump <keyboards|territories|languages> write a document to stdout"),
			writeln(stderr, "  check                                  report dangling references and invalid tags"),
			writeln(stderr, "  export                                 copy the tables into PostgreSQL"),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		if err := writeln(stderr, "error: a command is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	cmd, ok := commands[remaining[0]]
	if !ok {
		if err := writef(stderr, "error: unknown command %q\n", remaining[0]); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}
	if *dataDirs != "" {
		cfg.Data.Dirs = strings.Split(*dataDirs, ":")
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}
	cfg.Data.Sequential = cfg.Data.Sequential || *sequential
	cfg.Data.RequireDocuments = cfg.Data.RequireDocuments || *requireDocs
	if err := cfg.Validate(); err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}

	if *cpuProfilePath != "" {
		stopCPUProfile, err := startCPUProfile(*cpuProfilePath)
		if err != nil {
			_ = writef(stderr, "error starting CPU profile: %v\n", err)
			return 1
		}
		defer func() {
			if err := stopCPUProfile(); err != nil {
				_ = writef(stderr, "error stopping CPU profile: %v\n", err)
			}
		}()
	}
	if *memProfilePath != "" {
		defer func() {
			if err := writeMemProfile(*memProfilePath); err != nil {
				_ = writef(stderr, "error writing memory profile: %v\n", err)
			}
		}()
	}

	logger := logging.NewLogger(cfg.Log, stderr)
	env := &environment{
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		cfg:    cfg,
		opts:   loadOptions(cfg.Data, logger),
	}
	return cmd(ctx, env, remaining[1:])
}

func loadOptions(cfg config.DataConfig, logger *slog.Logger) langtable.LoadOptions {
	return langtable.NewLoadOptions().
		WithDataDirs(cfg.Dirs...).
		WithSequential(cfg.Sequential).
		WithRequireDocuments(cfg.RequireDocuments).
		WithMaxDepth(cfg.MaxDepth).
		WithMaxTokenSize(cfg.MaxTokenSize).
		WithLogger(logger)
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
