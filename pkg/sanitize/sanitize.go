// Package sanitize limpia texto libre (descripciones, notas, comentarios) antes de guardarlo.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxDecodePasses limita la decodificación de entidades anidadas (&amp;lt; ...).
const maxDecodePasses = 4

// Sanitizer elimina cualquier marcado HTML y deja solo texto plano.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New construye el sanitizador con la política estricta de bluemonday (ningún elemento permitido).
func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text devuelve in sin etiquetas ni espacios sobrantes en los extremos.
// Las entidades se decodifican antes de pasar por bluemonday para que el marcado codificado
// también se elimine. La salida queda escapada tal como la devuelve bluemonday.
func (s *Sanitizer) Text(in string) string {
	if in == "" {
		return ""
	}
	decoded := in
	for i := 0; i < maxDecodePasses; i++ {
		next := html.UnescapeString(decoded)
		if next == decoded {
			break
		}
		decoded = next
	}
	return strings.TrimSpace(s.policy.Sanitize(decoded))
}
