package parsers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"countygraph/internal/config"
	"countygraph/internal/models"
	"countygraph/pkg/utils"
)

// HTMLParser reads appraiser pages with CSS selectors.
type HTMLParser struct {
	selectors config.FieldSelectors
}

// NewHTMLParser creates a parser for the given selectors.
func NewHTMLParser(selectors config.FieldSelectors) *HTMLParser {
	return &HTMLParser{selectors: selectors}
}

// Parse extracts the configured fields from an HTML page.
func (p *HTMLParser) Parse(content []byte) (*models.PropertyDocument, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyDocument
	}

	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	doc := &models.PropertyDocument{}

	for _, f := range fieldTargets(p.selectors, doc) {
		if f.selector == "" {
			continue
		}

		*f.target = text(dom.Find(f.selector).First())
	}

	if t := p.selectors.Sales; t.Rows != "" {
		dom.Find(t.Rows).Each(func(_ int, row *goquery.Selection) {
			if sale, ok := saleRow(cells(row, t.Columns)); ok {
				doc.Sales = append(doc.Sales, sale)
			}
		})
	}

	if t := p.selectors.Valuations; t.Rows != "" {
		dom.Find(t.Rows).Each(func(_ int, row *goquery.Selection) {
			if v, ok := valuationRow(cells(row, t.Columns)); ok {
				doc.Valuations = append(doc.Valuations, v)
			}
		})
	}

	return doc, nil
}

// cells reads each column selector inside row. The link column yields the
// href of the first matching element.
func cells(row *goquery.Selection, columns map[string]string) map[string]string {
	out := make(map[string]string, len(columns))

	for name, sel := range columns {
		found := row.Find(sel).First()

		if name == ColLink {
			href, _ := found.Attr("href")
			out[name] = strings.TrimSpace(href)

			continue
		}

		out[name] = text(found)
	}

	return out
}

// text returns the element text with <br> rendered as a space and whitespace collapsed.
func text(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}

	s = s.Clone()
	s.Find("br").ReplaceWithHtml(" ")

	return utils.NormalizeWhitespace(s.Text())
}
