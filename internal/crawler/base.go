package crawler

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"

	scrapererrors "sjsage522/contactscraper/pkg/errors"
)

// createDocument creates a goquery document from raw page content
func createDocument(source string, content []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, scrapererrors.NewParsing(source, "HTML parsing failed", err)
	}
	return doc, nil
}

// processCards maps processor over selections sequentially, keeping document order
func processCards(selections *goquery.Selection, processor func(int, *goquery.Selection) Contact) []Contact {
	contacts := make([]Contact, 0, selections.Length())

	selections.Each(func(i int, s *goquery.Selection) {
		contacts = append(contacts, processor(i, s))
	})

	return contacts
}
