// Package classify derives document-level metadata from OCR text: the
// document type, the infraction reason, and the reference date used in
// the output filename.
package classify

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/frota-docs/internal/domain/resolve"
)

// DocType is the coarse class of a scanned fleet document.
type DocType string

const (
	TypePonto        DocType = "ponto"       // driver time-sheet
	TypeAdvertencia  DocType = "advertencia" // written warning
	TypeAtestado     DocType = "atestado"    // medical certificate
	TypeCarta        DocType = "carta"       // letter
	TypeDesconhecido DocType = "desconhecido"
)

// Orientation of the scanned first page. Time-sheets are usually
// landscape tables; letters and warnings are portrait.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

var clockPattern = regexp.MustCompile(`\d{1,2}[:h]\d{2}`)

// DetectType scores the text against keyword groups for each document
// class and returns the winner, or "desconhecido" when no class earns
// at least 20 points. Strong lexical evidence weighs 40, structural
// hints (page count, clock-pattern density) 20-40, weak hints 5-15.
func DetectType(text string, orientation Orientation, numPages int) DocType {
	t := resolve.Fold(text)

	score := map[DocType]int{
		TypePonto:       0,
		TypeAdvertencia: 0,
		TypeAtestado:    0,
		TypeCarta:       0,
	}

	if containsAny(t, "atestado", "cid", "consultorio") || hasToken(t, "dr") {
		score[TypeAtestado] += 40
	}
	if containsAny(t, "advertencia", "intrajornada", "descumprimento", "advertido") {
		score[TypeAdvertencia] += 40
	}
	if containsAny(t, "prezado", "venho por meio desta", "ao senhor") {
		score[TypeCarta] += 40
	}
	if containsAny(t, "registro de ponto", "diario de bordo", "horas", "controle de jornada") {
		score[TypePonto] += 40
	}

	if numPages > 1 {
		score[TypePonto] += 30
	}
	if len(clockPattern.FindAllString(t, -1)) >= 5 {
		score[TypePonto] += 40
	}
	if strings.Count(t, "00:00:00")+strings.Count(t, "00:00") >= 3 {
		score[TypePonto] += 20
	}

	// Dense single-block text reads like correspondence.
	if len(strings.Split(text, "\n")) < 10 && len(text) > 400 {
		score[TypeAdvertencia] += 10
		score[TypeCarta] += 10
	}
	if containsAny(t, "colaborador", "conduta", "motivo", "notificado", "empresa") {
		score[TypeAdvertencia] += 20
	}
	if containsAny(t, "compareceu", "afastamento", "atend", "clinica", "medico", "cid") {
		score[TypeAtestado] += 15
	}

	if orientation == OrientationHorizontal {
		score[TypePonto] += 5
	} else {
		score[TypeAdvertencia] += 5
	}

	best := TypeDesconhecido
	bestScore := -1
	// Fixed iteration order keeps ties deterministic.
	for _, dt := range []DocType{TypePonto, TypeAdvertencia, TypeAtestado, TypeCarta} {
		if score[dt] > bestScore {
			best, bestScore = dt, score[dt]
		}
	}
	if bestScore < 20 {
		return TypeDesconhecido
	}
	return best
}

func containsAny(t string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(t, n) {
			return true
		}
	}
	return false
}

func hasToken(t, tok string) bool {
	fields := strings.FieldsFunc(t, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
	for _, f := range fields {
		if f == tok {
			return true
		}
	}
	return false
}
