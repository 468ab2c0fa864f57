package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/pkg/logger"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading survey exports from Excel and CSV files
type DataReader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	sheetName string // empty means first sheet in the workbook
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithSheet(filePath, "")
}

// NewDataReaderWithSheet creates a reader pinned to a named worksheet
func NewDataReaderWithSheet(filePath, sheetName string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := strings.TrimPrefix(ext, ".")
	return &DataReader{filePath: filePath, fileType: fileType, sheetName: sheetName}
}

// ReadData reads the file into a survey table
func (r *DataReader) ReadData() (*survey.Table, error) {
	logger.Logger.Debugf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, survey.NewLoadError(r.filePath, err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("%w: .%s", survey.ErrUnsupportedFormat, r.fileType)
	}
}

// ReadFrom parses an in-memory upload. The filename is only used to pick
// the format; the contents come from the reader.
func ReadFrom(src io.Reader, filename string) (*survey.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return parseCSV(src, "csv")
	case ".xlsx":
		f, err := excelize.OpenReader(src)
		if err != nil {
			return nil, survey.NewLoadError(filename, err)
		}
		defer f.Close()
		return readWorkbook(f, "")
	default:
		return nil, fmt.Errorf("%w: %s", survey.ErrUnsupportedFormat, ext)
	}
}

// readExcelData reads the workbook's first sheet (or the configured one)
func (r *DataReader) readExcelData() (*survey.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, survey.NewLoadError(r.filePath, err)
	}
	defer f.Close()

	return readWorkbook(f, r.sheetName)
}

func readWorkbook(f *excelize.File, sheetName string) (*survey.Table, error) {
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", survey.ErrEmptyTable)
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	logger.Logger.Debugf("[DataReader] Sheet %q read (%d rows)", sheetName, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", survey.ErrEmptyTable)
	}

	return processRows(rows, "xlsx")
}

// readCSVData reads CSV data into a survey table
func (r *DataReader) readCSVData() (*survey.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, survey.NewLoadError(r.filePath, err)
	}
	defer file.Close()

	return parseCSV(file, "csv")
}

func parseCSV(src io.Reader, fileType string) (*survey.Table, error) {
	reader := csv.NewReader(src)
	// Survey exports are often ragged; rows are padded against the header
	// during processing.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	logger.Logger.Debugf("[DataReader] CSV read (%d rows)", len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", survey.ErrEmptyTable)
	}

	return processRows(rows, fileType)
}

// processRows converts raw string rows into a survey table. Headers and
// cells are trimmed; duplicate headers get a positional suffix so the
// one-value-per-column invariant holds.
func processRows(rows [][]string, fileType string) (*survey.Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	seen := make(map[string]int, len(headerRow))
	for i, header := range headerRow {
		h := strings.TrimSpace(header)
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s (%d)", h, n)
		}
		headers[i] = h
	}

	table := survey.NewTable(headers)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(survey.Row, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		table.AppendRow(rowData)
	}

	logger.Logger.Infof("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(fileType), table.ColumnCount(), table.RowCount())

	return table, nil
}
