// Command processor ingests scanned fleet PDFs from an input folder,
// extracts document type, date, driver name and infraction reason, and
// renames each file accordingly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/FACorreiaa/frota-docs/internal/domain/process"
	"github.com/FACorreiaa/frota-docs/pkg/config"
)

func main() {
	var (
		inputFlag    = flag.String("input", "", "input folder with PDFs (overrides INPUT_FOLDER)")
		registryFlag = flag.String("registry", "", "driver roster file, .csv or .xlsx (overrides REGISTRY_PATH)")
		watchFlag    = flag.String("watch", "", "cron schedule for continuous rescans (overrides WATCH_SPEC)")
		searchFlag   = flag.String("search", "", "query the audit index instead of processing")
		dryRunFlag   = flag.Bool("dry-run", false, "compute new names without renaming")
		verboseFlag  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", slog.Any("err", err))
		os.Exit(1)
	}
	if *inputFlag != "" {
		cfg.Input.Folder = *inputFlag
	}
	if *registryFlag != "" {
		cfg.Input.RegistryPath = *registryFlag
	}
	if *watchFlag != "" {
		cfg.Batch.WatchSpec = *watchFlag
	}
	if *dryRunFlag {
		cfg.Input.DryRun = true
	}

	deps, err := InitDependencies(cfg, logger)
	if err != nil {
		logger.Error("initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer deps.Close()

	if *searchFlag != "" {
		if err := runSearch(deps, *searchFlag); err != nil {
			logger.Error("search failed", slog.Any("err", err))
			os.Exit(1)
		}
		return
	}

	if deps.Metrics != nil {
		deps.Metrics.Serve(cfg.Observability.MetricsPort, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := deps.Processor.ProcessDir(ctx, cfg.Input.Folder, cfg.Batch.Workers)
	if err != nil {
		logger.Error("batch failed", slog.Any("err", err))
		os.Exit(1)
	}

	if cfg.Batch.WatchSpec != "" {
		watcher := process.NewWatcher(deps.Processor, cfg.Input.Folder, cfg.Batch.Workers, logger)
		if err := watcher.Start(cfg.Batch.WatchSpec); err != nil {
			logger.Error("watch mode failed", slog.Any("err", err))
			os.Exit(1)
		}
		<-ctx.Done()
		<-watcher.Stop().Done()
		return
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func runSearch(deps *Dependencies, query string) error {
	if deps.AuditIdx == nil {
		return fmt.Errorf("audit index not configured (set AUDIT_INDEX_PATH)")
	}
	results, err := deps.AuditIdx.Search(query, 20)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%-40s %-12s %-12s %s\n",
			r.Document.NewName, r.Document.DocType, r.Document.Date, r.Document.Driver)
	}
	return nil
}
