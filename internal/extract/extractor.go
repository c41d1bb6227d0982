package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yokomichi/chintaiscan/internal/model"
	"golang.org/x/net/html"
)

// Extractor turns one listing page into raw records. Both site
// extractors populate the identical RawRecord field set; a field whose
// element is absent stays empty, because absence is data here, not an
// error.
type Extractor interface {
	Source() model.Source
	Extract(pageHTML string) ([]model.RawRecord, []model.Issue, error)
}

// ForSource returns the extractor for a configured source name.
func ForSource(src model.Source) (Extractor, bool) {
	switch src {
	case model.SourceHomes:
		return Homes{}, true
	case model.SourceSuumo:
		return Suumo{}, true
	default:
		return nil, false
	}
}

func parseDoc(pageHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
}

func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// textAfterBr returns the first non-empty text node following the
// selection's first <br>, the sites' convention for second-line values
// like area and deposit/key money.
func textAfterBr(sel *goquery.Selection) string {
	br := sel.Find("br").First()
	if br.Length() == 0 {
		return ""
	}
	for n := br.Get(0).NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.TextNode {
			continue
		}
		if t := strings.TrimSpace(n.Data); t != "" {
			return t
		}
	}
	return ""
}

// siblingText returns the first non-empty text node directly after the
// selection's first node.
func siblingText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	for n := sel.Get(0).NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.TextNode {
			continue
		}
		if t := strings.TrimSpace(n.Data); t != "" {
			return t
		}
	}
	return ""
}

// firstOwnText returns the selection's leading text content, skipping
// whitespace-only nodes but stopping at the first child element.
func firstOwnText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	for n := sel.Get(0).FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				return t
			}
			continue
		}
		if n.Type == html.ElementNode {
			return ""
		}
	}
	return ""
}

func missing(src model.Source, field string) model.Issue {
	return model.Issue{
		Kind:   model.IssueMissingField,
		Source: src,
		Field:  field,
		Detail: "expected element absent",
	}
}
