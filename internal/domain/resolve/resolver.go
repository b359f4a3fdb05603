package resolve

import (
	"context"
	"log/slog"

	"github.com/FACorreiaa/frota-docs/internal/domain/registry"
)

// Sentinel is returned when no stage resolves a driver.
const Sentinel = "DESCONHECIDO"

// StageOutcome distinguishes why a stage did not terminate the
// cascade, so tests and metrics can tell "no candidate" from "stage
// not available" from "stage broke".
type StageOutcome int

const (
	OutcomeMatched StageOutcome = iota
	OutcomeNoMatch
	OutcomeUnavailable
	OutcomeFailed
)

func (o StageOutcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "failed"
	}
}

// Stage names in cascade order.
const (
	StageCodeLookup     = "code_lookup"
	StagePhraseExact    = "phrase_exact"
	StageNerFuzzy       = "ner_fuzzy"
	StageGlobalFuzzy    = "global_fuzzy"
	StageEmbeddingFuzzy = "embedding_fuzzy"
	StageFinalFuzzy     = "final_fuzzy"
)

// Config carries the acceptance thresholds. The values are empirically
// tuned and deliberately preserved as constants of the system: the
// narrowed stages (NER, embedding) accept at 97 / 0.93 while the cruder
// whole-text passes demand 97 and 98, stricter for the last resort.
type Config struct {
	NERThreshold       int
	GlobalThreshold    int
	FinalThreshold     int
	EmbeddingThreshold float64
}

// DefaultConfig returns the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		NERThreshold:       97,
		GlobalThreshold:    97,
		FinalThreshold:     98,
		EmbeddingThreshold: 0.93,
	}
}

// Options carries the optional collaborators of a Resolver. A nil NER
// or Embedder simply disables that stage for the process lifetime.
type Options struct {
	NER      NEROracle
	Embedder EmbeddingOracle
	Matrix   EmbeddingMatrix
	Logger   *slog.Logger
	// Observer, when set, is invoked once per attempted stage.
	Observer func(stage string, outcome StageOutcome)
}

// Resolver owns the registry-derived matching state: normalized names,
// the phrase index, and whichever oracles were available at startup.
// It is read-only after construction and safe for concurrent use.
type Resolver struct {
	reg      *registry.Registry
	names    []string // normalized, parallel to reg
	phrase   *PhraseIndex
	ner      NEROracle
	embedder EmbeddingOracle
	matrix   EmbeddingMatrix
	cfg      Config
	logger   *slog.Logger
	observe  func(stage string, outcome StageOutcome)
}

// New builds a Resolver from the registry. Derived indices are
// computed here, once, and shared by every worker afterwards.
func New(reg *registry.Registry, cfg Config, opts Options) *Resolver {
	names := make([]string, reg.Len())
	for i, rec := range reg.Records() {
		names[i] = Normalize(rec.Name)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observe := opts.Observer
	if observe == nil {
		observe = func(string, StageOutcome) {}
	}

	return &Resolver{
		reg:      reg,
		names:    names,
		phrase:   NewPhraseIndex(reg.Names()),
		ner:      opts.NER,
		embedder: opts.Embedder,
		matrix:   opts.Matrix,
		cfg:      cfg,
		logger:   logger,
		observe:  observe,
	}
}

// NormalizedNames exposes the derived normalized name list.
func (r *Resolver) NormalizedNames() []string {
	return r.names
}

// HasEmbeddings reports whether the embedding stage is enabled.
func (r *Resolver) HasEmbeddings() bool {
	return r.embedder != nil && len(r.matrix) > 0
}

// Resolve maps raw OCR text to a registry name exactly as stored, or
// to the sentinel. It never fails: stage errors are absorbed and the
// cascade moves on.
func (r *Resolver) Resolve(ctx context.Context, rawText string) string {
	if rec, ok := r.ResolveRecord(ctx, rawText); ok {
		return rec.Name
	}
	return Sentinel
}

// ResolveRecord runs the cascade and returns the matched record, or
// ok=false when every stage falls through.
func (r *Resolver) ResolveRecord(ctx context.Context, rawText string) (registry.DriverRecord, bool) {
	type stage struct {
		name string
		run  func(ctx context.Context, raw, clean string) (int, StageOutcome)
	}

	clean := StripNoise(rawText)

	stages := []stage{
		{StageCodeLookup, r.codeStage},
		{StagePhraseExact, r.phraseStage},
		{StageNerFuzzy, r.nerStage},
		{StageGlobalFuzzy, r.globalFuzzyStage},
		{StageEmbeddingFuzzy, r.embeddingStage},
		{StageFinalFuzzy, r.finalFuzzyStage},
	}

	for _, s := range stages {
		idx, outcome := s.run(ctx, rawText, clean)
		r.observe(s.name, outcome)
		switch outcome {
		case OutcomeMatched:
			rec := r.reg.At(idx)
			r.logger.Debug("driver resolved",
				slog.String("stage", s.name),
				slog.String("driver", rec.Name),
			)
			return rec, true
		case OutcomeFailed:
			r.logger.Warn("resolution stage failed, continuing cascade",
				slog.String("stage", s.name),
			)
		}
	}
	return registry.DriverRecord{}, false
}

// codeStage terminates on an exact employee-code hit. Codes are
// operator-transcribed and beat any fuzzy signal in the same text.
func (r *Resolver) codeStage(_ context.Context, raw, _ string) (int, StageOutcome) {
	code, ok := DetectCode(raw)
	if !ok {
		return 0, OutcomeNoMatch
	}
	idx, ok := r.reg.ByCode(code)
	if !ok {
		return 0, OutcomeNoMatch
	}
	return idx, OutcomeMatched
}

// phraseStage accepts only spans that normalize to an exact registry
// name; the phrase index already guarantees that by construction.
func (r *Resolver) phraseStage(_ context.Context, _, clean string) (int, StageOutcome) {
	idx, ok := r.phrase.Match(Normalize(clean))
	if !ok {
		return 0, OutcomeNoMatch
	}
	return idx, OutcomeMatched
}

// nerStage runs the oracle over the raw text (noise stripping can eat
// the very line the name sits on) and fuzzy-scores each person span
// against the registry. Only the single best span is considered.
func (r *Resolver) nerStage(ctx context.Context, raw, _ string) (int, StageOutcome) {
	if r.ner == nil {
		return 0, OutcomeUnavailable
	}
	spans, err := r.ner.Infer(ctx, raw)
	if err != nil {
		r.logger.Warn("ner oracle error", slog.Any("err", err))
		return 0, OutcomeFailed
	}

	best := Match{Index: -1, Score: -1}
	for _, span := range spans {
		if !IsPersonLabel(span.Label) {
			continue
		}
		cand := Candidate{Text: Normalize(span.Text), Source: SourceNER}
		if m, ok := BestMatch(cand.Text, r.names, r.cfg.NERThreshold); ok && m.Score > best.Score {
			best = m
		}
	}
	if best.Index < 0 {
		return 0, OutcomeNoMatch
	}
	return best.Index, OutcomeMatched
}

func (r *Resolver) globalFuzzyStage(_ context.Context, _, clean string) (int, StageOutcome) {
	m, ok := BestMatch(Normalize(clean), r.names, r.cfg.GlobalThreshold)
	if !ok {
		return 0, OutcomeNoMatch
	}
	return m.Index, OutcomeMatched
}

func (r *Resolver) embeddingStage(ctx context.Context, _, clean string) (int, StageOutcome) {
	if !r.HasEmbeddings() {
		return 0, OutcomeUnavailable
	}
	idx, ok, err := MatchEmbedding(ctx, r.embedder, r.matrix, Normalize(clean), r.cfg.EmbeddingThreshold)
	if err != nil {
		r.logger.Warn("embedding oracle error", slog.Any("err", err))
		return 0, OutcomeFailed
	}
	if !ok {
		return 0, OutcomeNoMatch
	}
	return idx, OutcomeMatched
}

// finalFuzzyStage is the last resort: the whole raw text, normalized
// but not noise-stripped, at the strictest threshold.
func (r *Resolver) finalFuzzyStage(_ context.Context, raw, _ string) (int, StageOutcome) {
	m, ok := BestMatch(Normalize(raw), r.names, r.cfg.FinalThreshold)
	if !ok {
		return 0, OutcomeNoMatch
	}
	return m.Index, OutcomeMatched
}
