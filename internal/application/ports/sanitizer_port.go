package ports

// TextSanitizer limpia el texto libre que envían los usuarios antes de persistirlo.
type TextSanitizer interface {
	Text(s string) string
}
