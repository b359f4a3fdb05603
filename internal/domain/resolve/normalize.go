// Package resolve implements name resolution for scanned fleet
// documents: matching noisy OCR text against the driver registry
// through a cascade of code lookup, phrase matching, NER, fuzzy
// token-set scoring and embedding similarity.
package resolve

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, turning
// "JOÃO" into "JOAO" before the ASCII filter below.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stopwords that mark a line as structural boilerplate (letterheads,
// form labels) rather than document body. Matching is done on
// normalized whole tokens.
var noiseStopwords = map[string]struct{}{
	"estado": {}, "prefeitura": {}, "municipio": {}, "secretaria": {},
	"departamento": {}, "cpf": {}, "rg": {}, "data": {}, "assinatura": {},
	"endereco": {}, "telefone": {}, "brasil": {}, "sistema": {},
	"modelo": {}, "empresa": {}, "documento": {}, "requerimento": {},
	"orgao": {}, "funcionario": {},
}

var (
	symbolRuns = regexp.MustCompile("[_~^°§#@*+=<>|\\\\{}\\[\\]`´]+")
	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// Normalize canonicalizes text for matching: diacritics stripped,
// lowercased, every non-alphanumeric run replaced by a single space,
// trimmed. Total: empty in, empty out.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	stripped, _, err := transform.String(stripMarks, raw)
	if err != nil {
		stripped = raw
	}
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	pendingSpace := false
	for _, r := range stripped {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fold strips diacritics and lowercases without touching punctuation.
// Classifiers use it when separators still carry signal (clock
// patterns, date slashes) that Normalize would erase.
func Fold(raw string) string {
	if raw == "" {
		return ""
	}
	stripped, _, err := transform.String(stripMarks, raw)
	if err != nil {
		stripped = raw
	}
	return strings.ToLower(stripped)
}

// StripNoise removes symbol runs and whole lines that are likely
// headers or bureaucratic boilerplate: all-caps lines longer than six
// characters, and lines containing a structural stopword. It operates
// on the raw text (case preserved) so all-caps headers are still
// detectable; callers normalize afterwards.
func StripNoise(raw string) string {
	if raw == "" {
		return ""
	}

	t := strings.NewReplacer("’", "'", "“", `"`, "”", `"`).Replace(raw)
	t = symbolRuns.ReplaceAllString(t, " ")

	var kept []string
	for _, line := range strings.Split(t, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		// A line fully in caps and longer than 6 chars is almost
		// always a title or letterhead, never a handwritten name.
		if trimmed == strings.ToUpper(trimmed) && len(trimmed) > 6 {
			continue
		}
		if containsStopword(Normalize(line)) {
			continue
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	out = multiSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func containsStopword(normalizedLine string) bool {
	for _, tok := range strings.Fields(normalizedLine) {
		if _, hit := noiseStopwords[tok]; hit {
			return true
		}
	}
	return false
}
