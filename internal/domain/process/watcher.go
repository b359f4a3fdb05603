package process

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Watcher periodically rescans the input folder on a cron schedule, so
// the processor can run as a long-lived service next to the scanner
// that drops PDFs into the folder.
type Watcher struct {
	cron      *cron.Cron
	processor *Processor
	dir       string
	workers   int
	logger    *slog.Logger
}

// NewWatcher builds a watcher over the given directory.
func NewWatcher(processor *Processor, dir string, workers int, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))
	return &Watcher{
		cron:      c,
		processor: processor,
		dir:       dir,
		workers:   workers,
		logger:    logger,
	}
}

// Start schedules the rescan job. The spec is a standard 5-field cron
// expression, e.g. "*/5 * * * *" for every five minutes.
func (w *Watcher) Start(spec string) error {
	_, err := w.cron.AddFunc(spec, func() {
		if _, err := w.processor.ProcessDir(context.Background(), w.dir, w.workers); err != nil {
			w.logger.Error("scheduled rescan failed", slog.Any("err", err))
		}
	})
	if err != nil {
		return err
	}
	w.cron.Start()
	w.logger.Info("watch mode started",
		slog.String("dir", w.dir),
		slog.String("schedule", spec),
	)
	return nil
}

// Stop halts scheduling and returns a context that is done once any
// in-flight rescan finishes.
func (w *Watcher) Stop() context.Context {
	w.logger.Info("watch mode stopping")
	return w.cron.Stop()
}
