package export

import (
	"path/filepath"

	scrapererrors "sjsage522/contactscraper/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// Converter turns a CSV file into a spreadsheet and returns the spreadsheet path
type Converter interface {
	Convert(csvPath string) (string, error)
}

// SheetName is the only sheet of every converted workbook
const SheetName = "Sheet1"

// ExcelConverter writes .xlsx workbooks with a single sheet
type ExcelConverter struct {
	OutputPath string
}

// Ensure ExcelConverter implements Converter
var _ Converter = (*ExcelConverter)(nil)

// NewExcelConverter creates a converter writing to outputPath
func NewExcelConverter(outputPath string) *ExcelConverter {
	return &ExcelConverter{
		OutputPath: outputPath,
	}
}

// Convert re-reads csvPath and writes its rows verbatim, header first, as string cells
func (c *ExcelConverter) Convert(csvPath string) (string, error) {
	records, err := ReadCSV(csvPath)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return "", scrapererrors.NewOutput(c.OutputPath, "failed to create stream writer", err)
	}

	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, value := range record {
			row[j] = value
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", scrapererrors.NewOutput(c.OutputPath, "invalid cell coordinates", err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return "", scrapererrors.NewOutput(c.OutputPath, "failed to write row", err)
		}
	}

	if err := sw.Flush(); err != nil {
		return "", scrapererrors.NewOutput(c.OutputPath, "failed to flush rows", err)
	}
	if err := f.SaveAs(c.OutputPath); err != nil {
		return "", scrapererrors.NewOutput(c.OutputPath, "failed to save workbook", err)
	}

	return filepath.Clean(c.OutputPath), nil
}
