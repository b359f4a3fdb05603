package resolve

import (
	"context"
	"strings"
)

// EntitySpan is one labeled span returned by the NER oracle.
type EntitySpan struct {
	Text  string
	Label string
	Start int
	End   int
	Score float64
}

// NEROracle is the external named-entity model. Implementations wrap
// an inference backend; a nil oracle disables the NER stage entirely.
type NEROracle interface {
	Infer(ctx context.Context, text string) ([]EntitySpan, error)
}

// personLabels are the entity labels treated as a person name across
// the models we run (enamex-style PER, Portuguese taggers' PESSOA, and
// roster-ruler NOME).
var personLabels = map[string]struct{}{
	"PER": {}, "PERSON": {}, "PESSOA": {}, "NOME": {},
}

// IsPersonLabel reports whether a NER label denotes a person name.
// Labels arrive in BIO form from some backends ("B-PER", "I-PESSOA"),
// so any prefix before a dash is ignored.
func IsPersonLabel(label string) bool {
	label = strings.ToUpper(strings.TrimSpace(label))
	if i := strings.LastIndexByte(label, '-'); i >= 0 {
		label = label[i+1:]
	}
	_, ok := personLabels[label]
	return ok
}

// Source identifies which cascade stage produced a candidate.
type Source string

const (
	SourceCode      Source = "code"
	SourcePhrase    Source = "phrase"
	SourceNER       Source = "ner"
	SourceFuzzy     Source = "fuzzy"
	SourceEmbedding Source = "embedding"
)

// Candidate is an ephemeral name span proposed during resolution.
// Candidates are never persisted; they exist only to carry a span from
// its signal source to the registry scorer.
type Candidate struct {
	Text   string
	Source Source
}
