package view

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"/", "&#x2F;",
	"`", "&#x60;",
	"=", "&#x3D;",
)

// EscapeHTML escapes the characters & < > " ' / ` = so user text can be
// placed in element content or a quoted attribute.
func EscapeHTML(s string) string {
	return markupEscaper.Replace(s)
}

// filterEscapeAll backs the escapeall template filter. The result is marked
// safe so pongo2's autoescape does not escape it a second time.
func filterEscapeAll(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(EscapeHTML(in.String())), nil
}

func init() {
	if err := pongo2.RegisterFilter("escapeall", filterEscapeAll); err != nil {
		panic(err)
	}
}
