package publisher

import "sjsage522/contactscraper/internal/crawler"

// Publisher exports scraped contacts to a message stream
type Publisher interface {
	// PublishContact appends a contact; successive calls keep their order within a stream
	PublishContact(contact crawler.Contact) error

	// TrimStreams caps every contact stream at the configured length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
