package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTML converts a markdown report into a standalone HTML document. The tables
// extension is required: every report in this package is table-heavy and
// CommonMark alone would render them as paragraphs.
func HTML(w io.Writer, title, markdown string) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n", htmlEscape(title))
	fmt.Fprint(w, "<style>body{font-family:sans-serif;max-width:60em;margin:2em auto}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:0.3em 0.8em}</style>\n")
	fmt.Fprint(w, "</head>\n<body>\n")
	if err := md.Convert([]byte(markdown), w); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	fmt.Fprint(w, "</body>\n</html>\n")
	return nil
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
