package classjson

import "strings"

// htmlEscape applies the fixed five-entity escape set the package design
// requires for every string payload pulled out of the class file: the
// output is consumed by a browser-side tree viewer that renders strings
// as HTML, so this must run before the value reaches encoding/json, not
// after. html.EscapeString in the standard library is close but spells
// the quote entity "&#34;" instead of the "&quot;" this format commits
// to, so a direct replacer is used instead of importing html for this one
// mapping.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
