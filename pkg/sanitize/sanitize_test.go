package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/solarsync-api/pkg/sanitize"
)

func TestSanitizer_Text(t *testing.T) {
	s := sanitize.New()

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  Instalación de 12 paneles  ", "Instalación de 12 paneles"},
		{"<b>Proyecto</b> solar", "Proyecto solar"},
		{"<script>alert(1)</script>Techo", "Techo"},
		{"Presupuesto < 10k & entrega rápida", "Presupuesto &lt; 10k &amp; entrega rápida"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, s.Text(tc.in), "entrada %q", tc.in)
	}
}

// El marcado enviado como entidades no debe volver a convertirse en etiquetas.
func TestSanitizer_Text_EntidadesCodificadasNoGeneranMarcado(t *testing.T) {
	s := sanitize.New()

	cases := []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&lt;img src=x onerror=alert(1)&gt;",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"Techo &#60;b&#62;plano&#60;/b&#62;",
	}
	for _, in := range cases {
		out := s.Text(in)
		assert.NotContains(t, out, "<", "entrada %q", in)
		assert.NotContains(t, out, ">", "entrada %q", in)
		assert.NotContains(t, out, "onerror=alert", "entrada %q", in)
	}
	assert.Equal(t, "Techo plano", s.Text("Techo &#60;b&#62;plano&#60;/b&#62;"))
}
