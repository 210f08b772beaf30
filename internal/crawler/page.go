package crawler

import (
	"context"
	"net/url"
	"strconv"

	"sjsage522/contactscraper/helpers"
	scrapererrors "sjsage522/contactscraper/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// DefaultDirectoryURL is the unfiltered institutpf.org member directory
const DefaultDirectoryURL = "https://institutpf.org/repertoire"

// DirectoryScraper scrapes one page of the directory at a time
type DirectoryScraper struct {
	base      *url.URL
	fetcher   *Fetcher
	extractor *CardExtractor
	logger    helpers.LoggerInterface
}

// Ensure DirectoryScraper implements PageScraper
var _ PageScraper = (*DirectoryScraper)(nil)

// NewDirectoryScraper creates a scraper for the directory at baseURL.
// Query parameters already present on baseURL are kept on every page URL.
func NewDirectoryScraper(baseURL string, fetcher *Fetcher, logger helpers.LoggerInterface) (*DirectoryScraper, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, scrapererrors.NewConfiguration("invalid directory URL "+baseURL, err)
	}

	return &DirectoryScraper{
		base:      base,
		fetcher:   fetcher,
		extractor: NewCardExtractor(logger),
		logger:    logger,
	}, nil
}

// PageURL builds the URL of a directory page with every search filter left empty
func (d *DirectoryScraper) PageURL(page int) string {
	u := *d.base
	query := u.Query()
	for _, filter := range []string{"postalCode", "radius", "name", "domain"} {
		query.Set(filter, "")
	}
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()

	return u.String()
}

// Scrape fetches a page and extracts every listing tile in document order.
// A page that cannot be loaded yields no contacts and no error.
func (d *DirectoryScraper) Scrape(ctx context.Context, page int) ([]Contact, error) {
	pageURL := d.PageURL(page)

	content, err := d.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		d.logger.LogDebug("Skipping page %d due to load failure.", page)
		return []Contact{}, nil
	}

	doc, err := createDocument(pageURL, content)
	if err != nil {
		return nil, err
	}

	cards := doc.Find(d.extractor.Selectors.Card)
	d.logger.LogDebug("Found %d cards on page %d", cards.Length(), page)

	return processCards(cards, func(i int, s *goquery.Selection) Contact {
		d.logger.LogDebug("Parsing card #%d on page %d", i+1, page)
		return d.extractor.ExtractContact(s)
	}), nil
}
