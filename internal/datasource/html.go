package datasource

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readHTML pulls values out of exported admin pages: every <option> (its
// value attribute, or its text), falling back to <li> items when the page
// has no options at all.
func readHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out []string
	doc.Find("option").Each(func(_ int, opt *goquery.Selection) {
		v, ok := opt.Attr("value")
		if !ok || strings.TrimSpace(v) == "" {
			v = opt.Text()
		}
		out = append(out, strings.TrimSpace(v))
	})
	if len(out) > 0 {
		return out, nil
	}

	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		out = append(out, strings.TrimSpace(li.Text()))
	})
	return out, nil
}
