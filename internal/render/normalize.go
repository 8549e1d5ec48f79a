// ABOUTME: Display normalization for post subject and body text
// ABOUTME: Resolves the server's whitelisted HTML into plain terminal text

package render

import (
	"strings"

	"golang.org/x/net/html"
)

// The server allows a small tag whitelist in post bodies. Anything outside
// it is dropped wholesale; entities are resolved to their characters.
var allowedTags = map[string]bool{
	"b": true, "i": true, "u": true,
	"em": true, "strong": true,
	"a": true, "br": true,
}

// Normalize converts a post's subject or text to display form: entities
// unescaped, <br> turned into newlines, links flattened to "text (href)",
// all other whitelisted tags reduced to their content, and non-whitelisted
// markup discarded.
func Normalize(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	var href string
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.WriteString(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if !allowedTags[tok.Data] {
				continue
			}
			switch tok.Data {
			case "br":
				b.WriteByte('\n')
			case "a":
				href = ""
				for _, attr := range tok.Attr {
					if attr.Key == "href" {
						href = attr.Val
					}
				}
			}
		case html.EndTagToken:
			tok := z.Token()
			if tok.Data == "a" && href != "" {
				b.WriteString(" (" + href + ")")
				href = ""
			}
		}
	}
}
