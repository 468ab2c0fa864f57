package testkit

import (
	"bytes"
	"encoding/csv"
	"os"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"

	"github.com/xuri/excelize/v2"
)

// WriteCSV saves a survey table as a CSV fixture.
func WriteCSV(path string, table *survey.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := writeCSVRecords(w, table); err != nil {
		return err
	}
	return w.Error()
}

// CSVBytes renders the table as CSV in memory, handy for upload tests.
func CSVBytes(table *survey.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := writeCSVRecords(w, table); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSVRecords(w *csv.Writer, table *survey.Table) error {
	if err := w.Write(table.Headers); err != nil {
		return err
	}
	record := make([]string, len(table.Headers))
	for _, row := range table.Rows {
		for i, h := range table.Headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteXLSX saves a survey table as an Excel workbook fixture.
func WriteXLSX(path string, table *survey.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	// Ensure Sheet1 exists and is active.
	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	for i, h := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, row := range table.Rows {
		rowIdx := r + 2
		for c, h := range table.Headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, row[h]); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
