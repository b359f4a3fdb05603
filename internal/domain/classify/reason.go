package classify

import (
	"strings"

	"github.com/FACorreiaa/frota-docs/internal/domain/resolve"
)

// Infraction reasons stamped into warning filenames.
const (
	ReasonCelular      = "CELULAR"
	ReasonDistracao    = "DISTRACAO"
	ReasonCinto        = "CINTO"
	ReasonVelocidade   = "VELOCIDADE"
	ReasonDrogas       = "DROGAS"
	ReasonJornada      = "JORNADA"
	ReasonIntrajornada = "INTRAJORNADA"
)

// DetectReason classifies the infraction described in a warning.
// First keyword hit wins, in fixed priority order; INTRAJORNADA is the
// catch-all because it is the most common warning in the fleet.
func DetectReason(text string) string {
	t := resolve.Normalize(text)

	switch {
	case strings.Contains(t, "celular"):
		return ReasonCelular
	case strings.Contains(t, "distra"):
		return ReasonDistracao
	case strings.Contains(t, "cinto"):
		return ReasonCinto
	case strings.Contains(t, "velocidade"):
		return ReasonVelocidade
	case strings.Contains(t, "drogas"), strings.Contains(t, "fumando"), strings.Contains(t, "bebendo"):
		return ReasonDrogas
	case strings.Contains(t, "jornada"):
		return ReasonJornada
	default:
		return ReasonIntrajornada
	}
}
