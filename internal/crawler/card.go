package crawler

import (
	"strings"

	"sjsage522/contactscraper/helpers"

	"github.com/PuerkitoBio/goquery"
)

// CardExtractor pulls contact fields out of a single listing tile
type CardExtractor struct {
	Selectors Selectors
	logger    helpers.LoggerInterface
}

// NewCardExtractor creates an extractor for the directory markup
func NewCardExtractor(logger helpers.LoggerInterface) *CardExtractor {
	return &CardExtractor{
		Selectors: DirectorySelectors,
		logger:    logger,
	}
}

// ExtractContact reads the four contact fields from a tile. Missing fields are empty.
func (e *CardExtractor) ExtractContact(s *goquery.Selection) Contact {
	contact := Contact{
		Name:    e.text(s, e.Selectors.Name),
		Company: e.text(s, e.Selectors.Company),
		Address: e.text(s, e.Selectors.Address),
		Phone:   e.text(s, e.Selectors.Phone),
	}

	e.logger.LogDebug("Extracted -> Name: %s, Company: %s, Address: %s, Phone: %s",
		contact.Name, contact.Company, contact.Address, contact.Phone)

	return contact
}

// text returns the trimmed text of the first element matching selector
func (e *CardExtractor) text(s *goquery.Selection, selector string) string {
	sel := s.Find(selector).First()
	if sel.Length() == 0 {
		e.logger.LogDebug("Missing field for selector: %s", selector)
		return ""
	}

	return strings.TrimSpace(sel.Text())
}
