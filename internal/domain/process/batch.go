package process

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Summary aggregates one batch run.
type Summary struct {
	Total      int
	Renamed    int
	Unresolved int
	Failed     int
	Elapsed    time.Duration
}

// DefaultWorkers is the pool size used when none is configured:
// one worker per core, minus one for the rest of the system.
func DefaultWorkers() int {
	if n := runtime.NumCPU() - 1; n > 1 {
		return n
	}
	return 1
}

// ProcessDir runs the pipeline over every PDF in dir using a fixed
// pool of workers. Individual document failures are logged and counted
// but never abort the batch.
func (p *Processor) ProcessDir(ctx context.Context, dir string, workers int) (Summary, error) {
	started := time.Now()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		p.logger.Info("no pdf files found", slog.String("dir", dir))
		return Summary{Elapsed: time.Since(started)}, nil
	}

	if workers <= 0 {
		workers = DefaultWorkers()
	}
	p.logger.Info("batch started",
		slog.String("dir", dir),
		slog.Int("files", len(files)),
		slog.Int("workers", workers),
	)

	var (
		mu      sync.Mutex
		summary = Summary{Total: len(files)}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, file := range files {
		g.Go(func() error {
			res, err := p.ProcessFile(ctx, file)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				summary.Failed++
				p.logger.Error("document failed",
					slog.String("file", filepath.Base(file)),
					slog.Any("err", err),
				)
			case !res.Resolved:
				summary.Unresolved++
				summary.Renamed++
			default:
				summary.Renamed++
			}
			// Never propagate: one bad scan must not kill the batch.
			return nil
		})
	}

	_ = g.Wait()
	summary.Elapsed = time.Since(started)

	p.logger.Info("batch finished",
		slog.Int("total", summary.Total),
		slog.Int("renamed", summary.Renamed),
		slog.Int("unresolved", summary.Unresolved),
		slog.Int("failed", summary.Failed),
		slog.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}
