package crawler

import (
	"context"
	"time"
)

// Contact represents one listing tile from the directory
type Contact struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ContactHeader is the column order used for every tabular export
var ContactHeader = []string{"Name", "Company", "Address", "Phone"}

// Record returns the contact as a row matching ContactHeader
func (c Contact) Record() []string {
	return []string{c.Name, c.Company, c.Address, c.Phone}
}

// PageScraper retrieves the contacts listed on one directory page
type PageScraper interface {
	// Scrape returns the contacts of a page, or an empty slice when the page could not be loaded
	Scrape(ctx context.Context, page int) ([]Contact, error)
}

// DelayRange bounds a uniformly random pause
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

// RetryPolicy controls how a page is fetched
type RetryPolicy struct {
	MaxAttempts  int
	AttemptDelay DelayRange
	Timeout      time.Duration
}

// DefaultRetryPolicy returns the 5-attempt, 1-3s jitter, 10s timeout policy
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  5,
		AttemptDelay: DelayRange{Min: 1 * time.Second, Max: 3 * time.Second},
		Timeout:      10 * time.Second,
	}
}

// Selectors contains CSS selectors for the directory listing markup
type Selectors struct {
	Card    string
	Name    string
	Company string
	Address string
	Phone   string
}

// DirectorySelectors matches the institutpf.org repertoire markup
var DirectorySelectors = Selectors{
	Card:    "li.find-pl-fin-tile",
	Name:    "h4 a",
	Company: "h5",
	Address: "p span",
	Phone:   "p a",
}
