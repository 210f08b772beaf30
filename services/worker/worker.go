package worker

import (
	"context"
	"time"

	"sjsage522/contactscraper/helpers"
	"sjsage522/contactscraper/internal/crawler"
	"sjsage522/contactscraper/services/export"
	"sjsage522/contactscraper/services/publisher"
)

// Options configures a scraping run
type Options struct {
	TotalPages int
	PageDelay  crawler.DelayRange
	CSVPath    string
}

// Worker drives one export job: every directory page in order, then the output files
type Worker struct {
	scraper   crawler.PageScraper
	converter export.Converter
	publisher publisher.Publisher
	logger    helpers.LoggerInterface
	opts      Options
	sleep     helpers.SleepFunc
}

// NewWorker creates a new worker. pub may be nil when no stream export is configured.
func NewWorker(
	scraper crawler.PageScraper,
	converter export.Converter,
	pub publisher.Publisher,
	logger helpers.LoggerInterface,
	opts Options,
) *Worker {
	return &Worker{
		scraper:   scraper,
		converter: converter,
		publisher: pub,
		logger:    logger,
		opts:      opts,
		sleep:     helpers.Sleep,
	}
}

// WithSleep replaces the pause used between pages
func (w *Worker) WithSleep(sleep helpers.SleepFunc) *Worker {
	w.sleep = sleep
	return w
}

// Run scrapes pages 1..TotalPages sequentially, then writes the CSV file and
// converts it to a spreadsheet. Nothing is written unless every page was attempted,
// and cancellation is honoured before each output step.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.LogDebug("Starting scraping job...")

	contacts, err := w.scrapeAll(ctx)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	w.logger.LogDebug("Saving data to CSV...")
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, c.Record())
	}
	if err := export.WriteCSV(w.opts.CSVPath, crawler.ContactHeader, rows); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	xlsxPath, err := w.converter.Convert(w.opts.CSVPath)
	if err != nil {
		return err
	}
	w.logger.LogDebug("Excel file saved as: %s", xlsxPath)

	if w.publisher != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.publish(ctx, contacts)
	}

	w.logger.LogDebug("FINISHED! Total records saved: %d", len(contacts))
	return nil
}

// scrapeAll accumulates contacts in page order, pausing after every page
func (w *Worker) scrapeAll(ctx context.Context) ([]crawler.Contact, error) {
	var contacts []crawler.Contact

	for page := 1; page <= w.opts.TotalPages; page++ {
		w.logger.LogDebug("========================")
		w.logger.LogDebug("SCRAPING PAGE %d/%d", page, w.opts.TotalPages)
		w.logger.LogDebug("========================")

		pageContacts, err := w.scraper.Scrape(ctx, page)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, pageContacts...)

		delay := helpers.RandomDuration(w.opts.PageDelay.Min, w.opts.PageDelay.Max)
		w.logger.LogDebug("Sleeping %.2fs before next page...", delay.Seconds())
		if err := w.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return contacts, nil
}

// publish sends every contact to the stream publisher in export order; failures are logged only
func (w *Worker) publish(ctx context.Context, contacts []crawler.Contact) {
	start := time.Now()
	published := 0

	for _, c := range contacts {
		if ctx.Err() != nil {
			w.logger.LogDebug("Publishing interrupted: %v", ctx.Err())
			break
		}

		if err := w.publisher.PublishContact(c); err != nil {
			w.logger.LogDebug("Failed to publish contact %q: %v", c.Name, err)
			continue
		}
		published++
	}

	if err := w.publisher.TrimStreams(); err != nil {
		w.logger.LogDebug("Failed to trim streams: %v", err)
	}

	w.logger.LogDebug("Published %d/%d contacts in %s", published, len(contacts), time.Since(start))
}
