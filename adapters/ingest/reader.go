package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"carelens/domain/core"
	"carelens/domain/dataset"
	"carelens/internal"
	"carelens/ports"
)

// DataReader loads CSV and XLSX files into uniform in-memory datasets.
// The first row is always treated as the header.
type DataReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
	coercer  *Coercer
	logger   *internal.Logger
}

var _ ports.DatasetReader = (*DataReader)(nil)

// NewDataReader creates a reader for the given file path
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		coercer:  NewCoercer(true),
		logger:   internal.DefaultLogger.WithComponent("DataReader"),
	}
}

// Read materializes the file into a Dataset. Any structural problem (missing
// file, empty header, ragged rows) is a data load error; the engine never
// sees a partially built dataset.
func (r *DataReader) Read() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewDataLoadError("file not found: " + r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSV()
	default:
		rows, err = r.readXLSX()
	}
	if err != nil {
		return nil, err
	}

	ds, err := r.buildDataset(rows)
	if err != nil {
		return nil, err
	}

	r.logger.Info("loaded %s: %d records, %d columns", r.filePath, ds.Len(), len(ds.Columns()))
	return ds, nil
}

func (r *DataReader) readCSV() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, core.NewDataLoadError(err.Error())
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewDataLoadError(err.Error())
	}
	return rows, nil
}

func (r *DataReader) readXLSX() ([][]string, error) {
	file, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, core.NewDataLoadError(err.Error())
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewDataLoadError("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, core.NewDataLoadError(err.Error())
	}
	return rows, nil
}

func (r *DataReader) buildDataset(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) == 0 {
		return nil, core.NewDataLoadError("file has no header row")
	}

	header := rows[0]
	columns := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.ToLower(h))
		if name == "" {
			return nil, core.NewDataLoadError("header has an empty column name")
		}
		columns[i] = name
	}

	records := make([]dataset.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(dataset.Record, len(columns))
		for i, column := range columns {
			// Excel drops trailing empty cells; short rows pad with nulls
			if i < len(row) {
				record[column] = r.coercer.Coerce(row[i])
			} else {
				record[column] = dataset.NewMissingValue()
			}
		}
		records = append(records, record)
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	return dataset.NewDataset(name, columns, records)
}
