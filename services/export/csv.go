package export

import (
	"bufio"
	"encoding/csv"
	"os"

	scrapererrors "sjsage522/contactscraper/pkg/errors"
)

// WriteCSV writes header and rows to path as UTF-8 comma-separated values with
// RFC 4180 quoting and CRLF line endings, replacing any existing file
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return scrapererrors.NewOutput(path, "failed to create CSV file", err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	w := csv.NewWriter(buf)
	w.UseCRLF = true

	if err := w.Write(header); err != nil {
		return scrapererrors.NewOutput(path, "failed to write CSV header", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return scrapererrors.NewOutput(path, "failed to write CSV rows", err)
	}
	if err := buf.Flush(); err != nil {
		return scrapererrors.NewOutput(path, "failed to flush CSV file", err)
	}

	if err := f.Close(); err != nil {
		return scrapererrors.NewOutput(path, "failed to close CSV file", err)
	}
	return nil
}

// ReadCSV loads every record of a CSV file, header included
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, scrapererrors.NewOutput(path, "failed to open CSV file", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, scrapererrors.NewParsing(path, "failed to read CSV file", err)
	}
	return records, nil
}
