// Package process orchestrates the per-document pipeline (extract ->
// classify -> resolve -> rename) and the batch driver that runs it
// over an input folder with a fixed-size worker pool.
package process

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/FACorreiaa/frota-docs/internal/domain/audit"
	"github.com/FACorreiaa/frota-docs/internal/domain/classify"
	"github.com/FACorreiaa/frota-docs/internal/domain/extract"
	"github.com/FACorreiaa/frota-docs/internal/domain/rename"
	"github.com/FACorreiaa/frota-docs/internal/domain/resolve"
	"github.com/FACorreiaa/frota-docs/internal/observability"
)

// Result describes one processed document.
type Result struct {
	OriginalPath string
	NewPath      string
	DocType      classify.DocType
	Driver       string
	Date         string
	Reason       string
	Resolved     bool
}

// Processor wires the pipeline stages together. All fields are
// read-only after construction; the processor is shared by every
// worker in the batch pool.
type Processor struct {
	source   extract.Source
	resolver *resolve.Resolver
	auditIdx *audit.Index           // optional
	metrics  *observability.Metrics // optional
	logger   *slog.Logger
	now      func() time.Time
	dryRun   bool
}

// ProcessorOptions configures optional collaborators.
type ProcessorOptions struct {
	Audit   *audit.Index
	Metrics *observability.Metrics
	Logger  *slog.Logger
	Now     func() time.Time
	// DryRun computes metadata and logs the target name without
	// touching the file.
	DryRun bool
}

// NewProcessor builds a document processor.
func NewProcessor(source extract.Source, resolver *resolve.Resolver, opts ProcessorOptions) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Processor{
		source:   source,
		resolver: resolver,
		auditIdx: opts.Audit,
		metrics:  opts.Metrics,
		logger:   logger,
		now:      now,
		dryRun:   opts.DryRun,
	}
}

// ProcessFile runs the full pipeline on a single PDF.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	started := p.now()

	res := Result{OriginalPath: path}

	extracted, err := p.source.Extract(ctx, path)
	if err != nil {
		return res, fmt.Errorf("process %s: %w", filepath.Base(path), err)
	}

	res.DocType = classify.DetectType(extracted.Text, extracted.Orientation, extracted.PageCount)
	res.Date = classify.FormatDate(classify.ExtractDate(extracted.Text, res.DocType, p.now()))
	res.Driver = p.resolver.Resolve(ctx, extracted.Text)
	res.Resolved = res.Driver != resolve.Sentinel
	if res.DocType == classify.TypeAdvertencia {
		res.Reason = classify.DetectReason(extracted.Text)
	}

	meta := rename.Metadata{
		Type:   res.DocType,
		Driver: res.Driver,
		Date:   res.Date,
		Reason: res.Reason,
	}

	if p.dryRun {
		res.NewPath = filepath.Join(filepath.Dir(path), rename.BuildName(meta))
	} else {
		res.NewPath, err = rename.Rename(path, meta)
		if err != nil {
			return res, err
		}
	}

	p.logger.Info("document processed",
		slog.String("file", filepath.Base(path)),
		slog.String("type", string(res.DocType)),
		slog.String("driver", res.Driver),
		slog.String("date", res.Date),
		slog.String("renamed_to", filepath.Base(res.NewPath)),
	)

	if p.metrics != nil {
		p.metrics.ObserveDocument(string(res.DocType), res.Resolved, time.Since(started))
	}
	if p.auditIdx != nil && !p.dryRun {
		entry := audit.Document{
			OriginalName: filepath.Base(path),
			NewName:      filepath.Base(res.NewPath),
			Driver:       res.Driver,
			DocType:      string(res.DocType),
			Date:         res.Date,
			Reason:       res.Reason,
			ProcessedAt:  p.now(),
		}
		if err := p.auditIdx.Add(entry); err != nil {
			p.logger.Warn("audit index write failed", slog.Any("err", err))
		}
	}

	return res, nil
}
