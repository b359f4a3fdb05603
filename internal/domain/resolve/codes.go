package resolve

import "regexp"

// codePatterns is an ordered cascade: the structured forms first
// (name/code pairs and labeled fields transcribed by an operator),
// an isolated digit run only as last resort. The first pattern that
// matches wins.
var codePatterns = []*regexp.Regexp{
	// NOME DO MOTORISTA – 12345
	regexp.MustCompile(`(?i)[A-ZÀ-Ý][A-Za-zÀ-ÿ\s]{3,60}[-–—: ]+(\d{4,10})\b`),
	// 12345 – NOME DO MOTORISTA
	regexp.MustCompile(`(?i)\b(\d{4,10})[-–—: ]+[A-ZÀ-Ý][A-Za-zÀ-ÿ\s]{3,60}`),
	// matricula: 12345
	regexp.MustCompile(`(?i)(?:matr[ií]cula|registro|id)[\s:]*?(\d{4,10})\b`),
	// isolated 4-10 digit run
	regexp.MustCompile(`\b(\d{4,10})\b`),
}

// DetectCode extracts an employee code from the text, if one is
// present. Codes are the highest-precision signal: when the returned
// code matches a registry record exactly, no fuzzy stage needs to run.
func DetectCode(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, p := range codePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}
