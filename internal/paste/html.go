package paste

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// linkAttrs are the attributes whose values may hold a hosted-file link
var linkAttrs = []string{"href", "src", "data-src"}

// FlattenHTML returns the document text followed by every link attribute
// value, one per line, so anchors whose text differs from their target are
// still found by extraction.
func FlattenHTML(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	doc.Find("script, style").Remove()

	var b strings.Builder
	b.WriteString(doc.Text())

	doc.Find("[href], [src], [data-src]").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range linkAttrs {
			if v, ok := s.Attr(attr); ok && v != "" {
				b.WriteString("\n")
				b.WriteString(v)
			}
		}
	})

	return b.String(), nil
}
