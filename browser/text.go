package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VisibleText returns the lower-cased rendered text of the document body,
// leaving out script, style, noscript and template contents.
func VisibleText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript, template").Remove()
	return strings.ToLower(body.Text())
}
