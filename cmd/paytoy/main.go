package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/ab2049/paytoy/internal/config"
	"github.com/ab2049/paytoy/internal/csvio"
	"github.com/ab2049/paytoy/internal/engine"
	"github.com/ab2049/paytoy/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to optional config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return 0
	}

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}
	inputPath := flag.Arg(0)

	// Load configuration first: the log level comes from it. Logs go to
	// stderr so stdout carries nothing but the balance snapshot.
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	logger = logger.With("run_id", uuid.NewString())
	logger.Info("starting paytoy",
		"version", version.Version,
		"commit", version.Commit,
		"input", inputPath,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	in, err := os.Open(inputPath)
	if err != nil {
		logger.Error("failed to open input", "error", err)
		return 1
	}
	defer in.Close()

	reader, err := csvio.NewReader(in)
	if err != nil {
		logger.Error("failed to read input header", "error", err)
		return 1
	}

	eng := engine.New(engine.Config{
		Shards:    cfg.Engine.Shards,
		QueueSize: cfg.Engine.QueueSize,
	}, logger)

	snaps, err := eng.Run(ctx, reader)
	if err != nil {
		// Fatal condition: no balances are emitted, not even partial ones.
		logger.Error("run aborted", "error", err)
		return 1
	}

	if err := csvio.WriteSnapshots(os.Stdout, snaps); err != nil {
		logger.Error("failed to write snapshot", "error", err)
		return 1
	}
	return 0
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
